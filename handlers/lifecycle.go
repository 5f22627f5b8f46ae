package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mschmiedel/impostor-game/game"
	"github.com/mschmiedel/impostor-game/models"
)

// CredentialRequest is the body shared by the host/player lifecycle
// actions that need nothing beyond the caller's secret.
type CredentialRequest struct {
	PlayerSecret string `json:"playerSecret"`
}

// ResetGameRequest is the body for POST /api/game/:gameId/reset.
type ResetGameRequest struct {
	PlayerSecret        string `json:"playerSecret"`
	Language            string `json:"language"`
	AgeOfYoungestPlayer int    `json:"ageOfYoungestPlayer"`
}

func bindCredential(c *gin.Context, logger *zap.Logger) (CredentialRequest, bool) {
	var req CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("request bind error",
			zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return req, false
	}
	return req, true
}

// SetReady marks the calling player ready. Idempotent.
func SetReady(c *gin.Context, engine *game.Engine, logger *zap.Logger) {
	req, ok := bindCredential(c, logger)
	if !ok {
		return
	}
	playerID, err := engine.SetReady(c.Request.Context(), c.Param("gameId"), req.PlayerSecret)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"playerId": playerID, "isReady": true})
}

// StartGame moves the lobby into play. Host-only.
func StartGame(c *gin.Context, engine *game.Engine, logger *zap.Logger) {
	req, ok := bindCredential(c, logger)
	if !ok {
		return
	}
	if err := engine.StartGame(c.Request.Context(), c.Param("gameId"), req.PlayerSecret); err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.StatusStarted})
}

// NextTurn generates the next round. Host-only. The response is just an
// acknowledgment; each player reads their own role via the turn details
// endpoint.
func NextTurn(c *gin.Context, engine *game.Engine, logger *zap.Logger) {
	req, ok := bindCredential(c, logger)
	if !ok {
		return
	}
	turn, err := engine.AdvanceTurn(c.Request.Context(), c.Param("gameId"), req.PlayerSecret)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"turn": turn})
}

// FinishGame ends play and flips every turn to reveal-all. Host-only.
func FinishGame(c *gin.Context, engine *game.Engine, logger *zap.Logger) {
	req, ok := bindCredential(c, logger)
	if !ok {
		return
	}
	if err := engine.FinishGame(c.Request.Context(), c.Param("gameId"), req.PlayerSecret); err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.StatusFinished})
}

// ResetGame starts a rematch of the same lobby with fresh config.
// Host-only, FINISHED-only.
func ResetGame(c *gin.Context, engine *game.Engine, logger *zap.Logger) {
	var req ResetGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("reset game request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	err := engine.ResetGame(c.Request.Context(), game.ResetGameInput{
		GameID:              c.Param("gameId"),
		PlayerSecret:        req.PlayerSecret,
		Language:            req.Language,
		AgeOfYoungestPlayer: req.AgeOfYoungestPlayer,
	})
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.StatusJoining})
}
