package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mschmiedel/impostor-game/game"
)

// RenamePlayerRequest is the body for PATCH /api/players/:gameId/:playerId.
type RenamePlayerRequest struct {
	PlayerSecret string `json:"playerSecret"`
	NewName      string `json:"newName"`
}

// RenamePlayer changes a player's display name. Players may only rename
// themselves, and only while the lobby is forming.
func RenamePlayer(c *gin.Context, engine *game.Engine, logger *zap.Logger) {
	var req RenamePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("rename player request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := engine.RenamePlayer(c.Request.Context(),
		c.Param("gameId"), c.Param("playerId"), req.PlayerSecret, req.NewName)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"playerId": c.Param("playerId")})
}

// RemovePlayer ejects a player from the roster. Host-only; the host
// cannot be removed. The secret comes from the header since DELETE
// requests commonly travel without a body.
func RemovePlayer(c *gin.Context, engine *game.Engine, logger *zap.Logger) {
	secret := playerSecret(c)

	err := engine.RemovePlayer(c.Request.Context(),
		c.Param("gameId"), c.Param("playerId"), secret)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removedPlayerId": c.Param("playerId")})
}
