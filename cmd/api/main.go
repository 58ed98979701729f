package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/radwerk/intake-api/docs"
	"github.com/radwerk/intake-api/internal/auth"
	"github.com/radwerk/intake-api/internal/cache"
	"github.com/radwerk/intake-api/internal/config"
	"github.com/radwerk/intake-api/internal/database"
	"github.com/radwerk/intake-api/internal/http/handler"
	"github.com/radwerk/intake-api/internal/http/middleware"
	"github.com/radwerk/intake-api/internal/http/router"
	"github.com/radwerk/intake-api/internal/jobs"
	"github.com/radwerk/intake-api/internal/legacy"
	"github.com/radwerk/intake-api/internal/logger"
	"github.com/radwerk/intake-api/internal/repository"
	"github.com/radwerk/intake-api/internal/service"
	"github.com/radwerk/intake-api/internal/settings"
	"github.com/radwerk/intake-api/internal/storage"
)

// @title Radwerk Intake API
// @version 1.0
// @description Back-office API for customer intake, service orders and file handling

// @contact.name API Support
// @contact.email support@radwerk.de

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v2

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT session token

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "intake-staging.radwerk.de"
	case "production":
		docs.SwaggerInfo.Host = "intake.radwerk.de"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize storage
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Connect to the legacy workshop software (optional, read-only).
	// The app continues without it when not configured.
	var legacyClient *legacy.Client
	if cfg.Legacy.Enabled {
		legacyClient, err = legacy.NewClient(&cfg.Legacy, log)
		if err != nil {
			log.Warn("Legacy system connection failed, continuing without it",
				zap.Error(err),
			)
		} else if legacyClient != nil {
			log.Info("Legacy system connected",
				zap.Int("max_open_conns", cfg.Legacy.MaxOpenConns),
				zap.Int("query_timeout_seconds", cfg.Legacy.QueryTimeout),
			)
		}
	} else {
		log.Info("Legacy system not configured, skipping")
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewServiceOrderRepository(db)
	fileRepo := repository.NewFileRepository(db)
	counterRepo := repository.NewCounterRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Snapshot cache shared by the read paths
	snapshots := cache.NewSnapshots(30 * time.Second)

	// Runtime settings store; a load failure here is a startup error
	settingsStore := settings.NewStore(settingsRepo, log)
	if err := settingsStore.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize settings: %w", err)
	}

	// Initialize services
	numberingService := service.NewNumberingService(counterRepo, log)
	fileService := service.NewFileService(fileRepo, customerRepo, fileStorage, cfg.App.PublicBaseURL, log)
	customerService := service.NewCustomerService(customerRepo, orderRepo, fileService, snapshots, log)
	intakeService := service.NewIntakeService(customerRepo, orderRepo, numberingService, fileService, snapshots, log)
	dashboardService := service.NewDashboardService(customerRepo, orderRepo, snapshots, log)
	legacyImportService := service.NewLegacyImportService(legacyClient, customerRepo, numberingService, snapshots, log)

	// Initialize middleware
	sessionManager := auth.NewSessionManager(&cfg.Auth)
	authMiddleware := auth.NewMiddleware(sessionManager, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	secureCookie := cfg.App.Environment == "staging" || cfg.App.Environment == "production"
	authHandler := handler.NewAuthHandler(sessionManager, secureCookie, log)
	intakeHandler := handler.NewIntakeHandler(intakeService, settingsStore, cfg.Uploads.MaxPhotoSizeBytes(), cfg.Uploads.MaxPhotosPerSubmission, log)
	customerHandler := handler.NewCustomerHandler(customerService, dashboardService, numberingService, log)
	fileHandler := handler.NewFileHandler(fileService, settingsStore, cfg.Storage.MaxUploadSizeMB, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)
	settingsHandler := handler.NewSettingsHandler(settingsStore, log)
	printoutHandler := handler.NewPrintoutHandler(customerService, fileService, log)
	legacyHandler := handler.NewLegacyHandler(legacyImportService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		legacyClient,
		authMiddleware,
		rateLimiter,
		authHandler,
		intakeHandler,
		customerHandler,
		fileHandler,
		dashboardHandler,
		settingsHandler,
		printoutHandler,
		legacyHandler,
	)

	// Background jobs: keep the dashboard stats snapshot warm
	scheduler := jobs.NewScheduler(log)
	statsJob := jobs.NewStatsRefreshJob(dashboardService, log)
	if err := scheduler.AddJob(statsJob.Name(), statsJob.Schedule(), statsJob.Run); err != nil {
		log.Error("Failed to register stats refresh job", zap.Error(err))
	}
	scheduler.Start()

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		stopCtx := scheduler.Stop()
		<-stopCtx.Done()
		log.Info("Scheduler stopped")

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if err := legacyClient.Close(); err != nil {
			log.Warn("Error closing legacy system connection", zap.Error(err))
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
