package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mschmiedel/impostor-game/game"
)

// JoinGameRequest is the body for both join routes. The join code form
// (POST /api/joinGame) is what players type from the lobby screen; the
// game ID form (POST /api/joinGame/:gameId) backs shared links and QR
// codes.
type JoinGameRequest struct {
	JoinCode   string `json:"joinCode"`
	PlayerName string `json:"playerName"`
}

// JoinGame adds a player to a joinable lobby and returns their
// credentials.
func JoinGame(c *gin.Context, engine *game.Engine, logger *zap.Logger) {
	var req JoinGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("join game request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	out, err := engine.JoinGame(c.Request.Context(), game.JoinGameInput{
		GameID:     c.Param("gameId"),
		JoinCode:   req.JoinCode,
		PlayerName: req.PlayerName,
	})
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"gameId":       out.GameID,
		"playerId":     out.PlayerID,
		"playerSecret": out.PlayerSecret,
	})
}
