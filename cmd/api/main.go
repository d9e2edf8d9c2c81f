package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"findash/internal/config"
	"findash/internal/database"
	"findash/internal/handlers"
	"findash/internal/logger"
	"findash/internal/router"
	"findash/internal/services"
	"findash/internal/validator"

	"github.com/gin-gonic/gin"
)

// @title           Financial Dashboard API
// @version         1.0
// @description     Upload monthly financial spreadsheets per user and year, and read the stored records back.

// @host      localhost:8080
// @BasePath  /api

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	// Run migrations
	policy := appConfig.Policy()
	if err := dbManager.RunMigrations(policy); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	uploadLogService := services.NewUploadLogService(db, userService)
	financeService := services.NewFinanceService(db, userService, policy)
	ingestService := services.NewIngestService(
		services.NewRecordStore(db, policy),
		uploadLogService,
		services.IngestConfig{
			AllowedExtensions: appConfig.AllowedExtensions,
			MaxReportedErrors: appConfig.MaxReportedErrors,
		},
	)

	// Initialize handlers and router
	engine := router.New(router.Options{
		CORSAllowedOrigin: appConfig.CORSAllowedOrigin,
		Finance:           handlers.NewFinanceHandler(ingestService, financeService, appConfig.MaxUploadBytes),
		User:              handlers.NewUserHandler(userService, uploadLogService),
		Ping:              dbManager.Ping,
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infow("Starting financial dashboard server", "port", appConfig.Port, "policy", policy)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
