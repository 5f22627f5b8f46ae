package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mschmiedel/impostor-game/game"
)

// CreateGameRequest is the body for POST /api/createGame.
type CreateGameRequest struct {
	CreatorName         string `json:"creatorName"`
	AgeOfYoungestPlayer int    `json:"ageOfYoungestPlayer"`
	Language            string `json:"language"`
}

// CreateGame opens a new lobby and returns the host's credentials along
// with the join code.
func CreateGame(c *gin.Context, engine *game.Engine, logger *zap.Logger) {
	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("create game request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	out, err := engine.CreateGame(c.Request.Context(), game.CreateGameInput{
		CreatorName:         req.CreatorName,
		AgeOfYoungestPlayer: req.AgeOfYoungestPlayer,
		Language:            req.Language,
	})
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"gameId":       out.GameID,
		"joinCode":     out.JoinCode,
		"status":       out.Status,
		"playerId":     out.PlayerID,
		"playerSecret": out.PlayerSecret,
		"language":     out.Language,
	})
}
