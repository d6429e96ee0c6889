package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-backend/config"
	_ "portfolio-backend/docs" // Important for Swagger
	v1 "portfolio-backend/internal/delivery/http/v1"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// @title           Portfolio Contact API
// @version         1.0
// @description     Contact form endpoint of the portfolio site: validates a submission and forwards it by email.
// @host            localhost:8080
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting portfolio backend", "port", cfg.Port, "env", cfg.AppEnv)

	events := security.NewEventLogger("portfolio-backend", cfg.AppEnv)
	defer func() { _ = events.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Setup Email
	if !cfg.IsEmailConfigured() {
		logger.Log.Warn("Email service not fully configured - contact form will answer 500")
	}
	logger.Log.Info("SMTP settings", "host", cfg.SMTPHost, "port", cfg.SMTPPort, "recipient", security.MaskEmail(cfg.Recipient()))

	// 4. Setup UseCases
	validate := validator.New()
	contactUC := usecase.NewContactUsecase(cfg, email.NewSMTPFactory(), validate)

	// 5. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		Events:    events,
		Config:    cfg,
	})

	// 6. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
