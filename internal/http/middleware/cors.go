package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/radwerk/intake-api/internal/config"
	"go.uber.org/zap"
)

// CORS builds the cross-origin policy. The public intake form and the
// back-office UI are served from their own origins, so deployed
// environments list those explicitly; development allows any origin.
func CORS(cfg *config.CORSConfig, environment string, logger *zap.Logger) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	allowAny := func(r *http.Request, origin string) bool { return origin != "" }
	isDev := environment == "development" || environment == "local" || environment == ""

	switch {
	case containsWildcard(cfg.AllowedOrigins):
		if !isDev {
			logger.Warn("CORS configured with wildcard origin outside development",
				zap.String("environment", environment))
		}
		options.AllowOriginFunc = allowAny

	case len(cfg.AllowedOrigins) > 0:
		options.AllowedOrigins = cfg.AllowedOrigins
		logger.Info("CORS configured with explicit origins",
			zap.Strings("origins", cfg.AllowedOrigins))

	case isDev:
		options.AllowOriginFunc = allowAny
		logger.Info("CORS allowing all origins in development")

	default:
		// Without configured origins the chi cors default would be "*",
		// so deny cross-origin requests outright instead.
		options.AllowOriginFunc = func(r *http.Request, origin string) bool { return false }
		logger.Warn("CORS has no allowed origins, denying all cross-origin requests",
			zap.String("environment", environment))
	}

	return cors.Handler(options)
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
