package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/radwerk/intake-api/internal/auth"
	"github.com/radwerk/intake-api/internal/config"
	"github.com/radwerk/intake-api/internal/database"
	"github.com/radwerk/intake-api/internal/http/handler"
	"github.com/radwerk/intake-api/internal/http/middleware"
	"github.com/radwerk/intake-api/internal/legacy"

	_ "github.com/radwerk/intake-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg              *config.Config
	logger           *zap.Logger
	db               *gorm.DB
	legacyClient     *legacy.Client
	authMiddleware   *auth.Middleware
	rateLimiter      *middleware.RateLimiter
	authHandler      *handler.AuthHandler
	intakeHandler    *handler.IntakeHandler
	customerHandler  *handler.CustomerHandler
	fileHandler      *handler.FileHandler
	dashboardHandler *handler.DashboardHandler
	settingsHandler  *handler.SettingsHandler
	printoutHandler  *handler.PrintoutHandler
	legacyHandler    *handler.LegacyHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	legacyClient *legacy.Client,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	intakeHandler *handler.IntakeHandler,
	customerHandler *handler.CustomerHandler,
	fileHandler *handler.FileHandler,
	dashboardHandler *handler.DashboardHandler,
	settingsHandler *handler.SettingsHandler,
	printoutHandler *handler.PrintoutHandler,
	legacyHandler *handler.LegacyHandler,
) *Router {
	return &Router{
		cfg:              cfg,
		logger:           logger,
		db:               db,
		legacyClient:     legacyClient,
		authMiddleware:   authMiddleware,
		rateLimiter:      rateLimiter,
		authHandler:      authHandler,
		intakeHandler:    intakeHandler,
		customerHandler:  customerHandler,
		fileHandler:      fileHandler,
		dashboardHandler: dashboardHandler,
		settingsHandler:  settingsHandler,
		printoutHandler:  printoutHandler,
		legacyHandler:    legacyHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := database.HealthCheck(ctx, rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(ctx, rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		// The legacy connection is optional; an unhealthy legacy system
		// does not make the service unready.
		if rt.legacyClient.IsEnabled() {
			checks["legacy"] = rt.legacyClient.HealthCheck(ctx)
		}

		w.Header().Set("Content-Type", "application/json")
		status := "healthy"
		if !allHealthy {
			status = "unhealthy"
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": status,
			"checks": checks,
		})
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// Legacy routes kept for clients of the first deployment. Same
	// handlers, old paths.
	r.Route("/api/customers", func(r chi.Router) {
		r.Use(rt.authMiddleware.Authenticate)
		r.Use(rt.rateLimiter.Limit)

		r.Get("/", rt.customerHandler.List)
		r.Post("/", rt.customerHandler.Create)
		r.Get("/{id}", rt.customerHandler.GetByID)
		r.Patch("/{id}", rt.customerHandler.Update)
		r.Delete("/{id}", rt.customerHandler.Delete)
	})

	// API v2 routes
	r.Route("/api/v2", func(r chi.Router) {
		// Public routes: the intake form and the session login
		r.Post("/customers", rt.intakeHandler.Submit)
		r.Get("/intake/steps", rt.intakeHandler.Steps)
		r.Post("/auth/session", rt.authHandler.Login)

		// File content routes resolve access themselves (public read is a
		// runtime setting); staff tokens are attached when present.
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.OptionalAuthenticate)
			r.Get("/files/{id}/view", rt.fileHandler.View)
			r.Get("/files/{id}/preview", rt.fileHandler.Preview)
			r.Get("/files/{id}/download", rt.fileHandler.Download)
		})

		// Protected staff routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(rt.rateLimiter.Limit)

			// Auth
			r.Get("/auth/session", rt.authHandler.Me)
			r.Delete("/auth/session", rt.authHandler.Logout)

			// Customers. POST /customers is the public intake submission
			// above; everything else is staff-only.
			r.Get("/customers", rt.customerHandler.List)
			r.Get("/customers/{id}", rt.customerHandler.GetByID)
			r.Patch("/customers/{id}", rt.customerHandler.Update)
			r.Delete("/customers/{id}", rt.customerHandler.Delete)
			r.Get("/customers/{id}/services", rt.customerHandler.ListServices)
			r.Post("/customers/{id}/services", rt.customerHandler.AddService)
			r.Get("/customers/{id}/files", rt.fileHandler.ListByCustomer)
			r.Post("/customers/{id}/files", rt.fileHandler.Upload)
			r.Get("/customers/{id}/print", rt.printoutHandler.Print)

			// Service orders
			r.Patch("/services/{serviceId}/status", rt.customerHandler.UpdateServiceStatus)

			// Files
			r.Delete("/files/{id}", rt.fileHandler.Delete)

			// Dashboard
			r.Get("/dashboard/stats", rt.dashboardHandler.Stats)

			// Settings
			r.Get("/settings", rt.settingsHandler.Get)
			r.Patch("/settings", rt.settingsHandler.Update)

			// Legacy import
			r.Post("/legacy/import", rt.legacyHandler.Import)
		})
	})

	return r
}
