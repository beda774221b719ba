package main

import (
	"careers"
	"careers/internal/api/handler/endpoints"
	"careers/internal/api/handler/websocket"
	"careers/internal/api/models"
	"careers/internal/api/service"
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
)

func main() {
	careers.InitConfig(".env")
	gin.SetMode(gin.ReleaseMode)

	if careers.GetConfig().Mode == "dev" {
		if err := careers.DB.AutoMigrate(
			&models.User{},
			&models.Job{},
			&models.Candidate{},
			&models.CandidateRound{},
			&models.AIInsight{},
		); err != nil {
			careers.Logger.Fatal().Err(err).Msg("Failed to migrate database")
		}
		careers.Logger.Info().Msg("Database migrated successfully")
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	router, err := graceful.Default(graceful.WithAddr(careers.GetConfig().ApiPort))
	if err != nil {
		panic(err)
	}
	defer stop()
	defer router.Close()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Initialize the live board components
	pipelineService := service.NewPipelineService()
	processor := websocket.NewMessageProcessor(pipelineService, careers.Logger)
	hub := websocket.NewHub(careers.Logger)
	go hub.Run()
	careers.Logger.Info().Msg("Board hub started")

	initAPI(router, hub, processor)

	careers.Logger.Debug().Msgf("Starting careers API on port %s", careers.GetConfig().ApiPort)
	if err = router.RunWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		careers.Logger.Fatal().Msg(err.Error())
		panic(err)
	}

}

func initAPI(router *graceful.Graceful, hub *websocket.Hub, processor *websocket.MessageProcessor) {
	endpoints.AuthHandler(router)
	endpoints.JobHandler(router)
	endpoints.ApplicationHandler(router)
	endpoints.CandidateHandler(router)
	endpoints.WebSocketHandler(router, hub, processor)
}
