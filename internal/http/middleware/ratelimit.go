package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/radwerk/intake-api/internal/auth"
	"github.com/radwerk/intake-api/internal/config"
	"go.uber.org/zap"
)

// RateLimiter throttles the public surface. Anonymous traffic (the intake
// form, file views) is limited per client IP; authenticated staff get a
// higher per-user budget so back-office work is not slowed down by a busy
// intake form behind the same NAT.
type RateLimiter struct {
	cfg         *config.RateLimitConfig
	logger      *zap.Logger
	ipLimiter   func(http.Handler) http.Handler
	userLimiter func(http.Handler) http.Handler
	exemptIPs   map[string]bool
	exemptPaths map[string]bool
}

func NewRateLimiter(cfg *config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		cfg:         cfg,
		logger:      logger,
		exemptIPs:   make(map[string]bool),
		exemptPaths: make(map[string]bool),
	}
	for _, ip := range cfg.ExemptIPs {
		rl.exemptIPs[ip] = true
	}
	for _, path := range cfg.ExemptPaths {
		rl.exemptPaths[path] = true
	}

	rl.ipLimiter = httprate.Limit(
		cfg.RequestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rl.limitExceeded),
	)
	rl.userLimiter = httprate.Limit(
		cfg.RequestsPerMinuteAuth,
		time.Minute,
		httprate.WithKeyFuncs(rl.keyByUserOrIP),
		httprate.WithLimitHandler(rl.limitExceeded),
	)

	logger.Info("Rate limiter initialized",
		zap.Int("requests_per_minute", cfg.RequestsPerMinute),
		zap.Int("requests_per_minute_auth", cfg.RequestsPerMinuteAuth),
		zap.Strings("exempt_ips", cfg.ExemptIPs),
		zap.Strings("exempt_paths", cfg.ExemptPaths),
	)

	return rl
}

// Limit applies the per-user limit when a staff session is present,
// otherwise the per-IP limit. Must run after authentication.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.exempt(r) {
			next.ServeHTTP(w, r)
			return
		}
		if session, ok := auth.FromContext(r.Context()); ok && session != nil {
			rl.userLimiter(next).ServeHTTP(w, r)
			return
		}
		rl.ipLimiter(next).ServeHTTP(w, r)
	})
}

// LimitByIP applies the per-IP limit regardless of session. Runs in the
// outer middleware chain, before authentication.
func (rl *RateLimiter) LimitByIP(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.exempt(r) {
			next.ServeHTTP(w, r)
			return
		}
		rl.ipLimiter(next).ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) exempt(r *http.Request) bool {
	return rl.pathExempt(r.URL.Path) || rl.exemptIPs[clientIP(r)]
}

func (rl *RateLimiter) pathExempt(path string) bool {
	if rl.exemptPaths[path] {
		return true
	}
	for ep := range rl.exemptPaths {
		if strings.HasSuffix(ep, "/*") && strings.HasPrefix(path, strings.TrimSuffix(ep, "/*")) {
			return true
		}
	}
	return false
}

func (rl *RateLimiter) keyByUserOrIP(r *http.Request) (string, error) {
	if session, ok := auth.FromContext(r.Context()); ok && session != nil {
		return "user:" + session.Username, nil
	}
	return "ip:" + clientIP(r), nil
}

// clientIP resolves the originating address, honoring the proxy headers
// set by the ingress in front of the app service.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (rl *RateLimiter) limitExceeded(w http.ResponseWriter, r *http.Request) {
	username := ""
	if session, ok := auth.FromContext(r.Context()); ok && session != nil {
		username = session.Username
	}

	rl.logger.Warn("rate limit exceeded",
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.String("client_ip", clientIP(r)),
		zap.String("username", username),
	)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "60")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"error":"rate limit exceeded","message":"Too many requests. Please try again later."}`))
}
