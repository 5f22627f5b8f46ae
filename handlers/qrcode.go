package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/mschmiedel/impostor-game/game"
	"github.com/mschmiedel/impostor-game/models"
)

// JoinQR renders the join link for a lobby as a PNG QR code so the host
// can put it on a shared screen. Only members see it, and only while the
// game is joinable.
func JoinQR(c *gin.Context, engine *game.Engine, baseURL string, logger *zap.Logger) {
	view, err := engine.GetGameView(c.Request.Context(), c.Param("gameId"), playerSecret(c))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	if view.Status != models.StatusJoining {
		c.JSON(http.StatusConflict, gin.H{"error": "game is not joinable"})
		return
	}

	joinURL := fmt.Sprintf("%s/join/%s", baseURL, view.GameID)
	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		logger.Error("failed to encode join QR code", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
