package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mschmiedel/impostor-game/game"
)

// TurnDetails returns the caller-specific projection of the game: the
// roster, the join code while joinable, revealed history, and whatever
// the current turn entitles the caller to see. Clients poll this
// endpoint for freshness.
func TurnDetails(c *gin.Context, engine *game.Engine, logger *zap.Logger) {
	view, err := engine.GetGameView(c.Request.Context(), c.Param("gameId"), playerSecret(c))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
