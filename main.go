package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"feedback-portal-backend/config"
	"feedback-portal-backend/handler"
	"feedback-portal-backend/router"
	"feedback-portal-backend/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found")
	}

	var cfg config.AppConfig
	cfg.LoadConfig()

	ctx := context.Background()
	st, err := config.ConnectStore(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("store initialization failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			log.WithError(err).Warn("store close failed")
		}
	}()

	if err := config.SeedAdmin(ctx, st, cfg); err != nil {
		log.WithError(err).Fatal("admin seeding failed")
	}

	feedbackService := service.NewFeedbackService(st)
	analyticsService := service.NewAnalyticsService(st)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOriginList(),
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.SetupRoutes(r, router.Handlers{
		Feedback: handler.NewFeedbackHandler(feedbackService),
		Admin:    handler.NewAdminHandler(feedbackService, analyticsService),
		Auth:     handler.NewAuthHandler(st, cfg.JWTSecret),
		Health:   handler.NewHealthHandler(st),
	}, cfg.JWTSecret)

	log.WithField("port", cfg.Port).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
