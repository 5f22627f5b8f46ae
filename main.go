package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mschmiedel/impostor-game/database"
	"github.com/mschmiedel/impostor-game/game"
	"github.com/mschmiedel/impostor-game/handlers"
	"github.com/mschmiedel/impostor-game/utils"
	"github.com/mschmiedel/impostor-game/words"
)

func main() {
	logger, err := utils.InitLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// A missing .env is fine in production; the environment is already set.
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file loaded")
	}
	cfg := database.LoadConfig()

	rdb, err := database.InitRedis(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}

	store := database.NewGameStore(rdb, logger)
	generator := words.NewGenerator(cfg.GoogleAPIKey, logger)
	engine := game.NewEngine(store, generator, logger)

	cronjobs := utils.CronCleaner(generator, logger)
	defer cronjobs.Stop()

	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestLogger(logger))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Player-Secret"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	api.POST("/createGame", func(c *gin.Context) {
		handlers.CreateGame(c, engine, logger)
	})
	api.POST("/joinGame", func(c *gin.Context) {
		handlers.JoinGame(c, engine, logger)
	})
	api.POST("/joinGame/:gameId", func(c *gin.Context) {
		handlers.JoinGame(c, engine, logger)
	})
	api.POST("/game/:gameId/ready", func(c *gin.Context) {
		handlers.SetReady(c, engine, logger)
	})
	api.POST("/startGame/:gameId", func(c *gin.Context) {
		handlers.StartGame(c, engine, logger)
	})
	api.POST("/nextTurn/:gameId", func(c *gin.Context) {
		handlers.NextTurn(c, engine, logger)
	})
	api.POST("/finishGame/:gameId", func(c *gin.Context) {
		handlers.FinishGame(c, engine, logger)
	})
	api.POST("/game/:gameId/reset", func(c *gin.Context) {
		handlers.ResetGame(c, engine, logger)
	})
	api.GET("/getTurnDetails/:gameId", func(c *gin.Context) {
		handlers.TurnDetails(c, engine, logger)
	})
	api.PATCH("/players/:gameId/:playerId", func(c *gin.Context) {
		handlers.RenamePlayer(c, engine, logger)
	})
	api.DELETE("/players/:gameId/:playerId", func(c *gin.Context) {
		handlers.RemovePlayer(c, engine, logger)
	})
	api.GET("/game/:gameId/qr", func(c *gin.Context) {
		handlers.JoinQR(c, engine, cfg.PublicBaseURL, logger)
	})

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
