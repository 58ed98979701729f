package auth

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SessionCookie is the cookie the browser-based back office carries the
// session token in. API clients use the Authorization header instead.
const SessionCookie = "radwerk_session"

// Middleware handles authentication for staff HTTP requests
type Middleware struct {
	sessions *SessionManager
	logger   *zap.Logger
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(sessions *SessionManager, logger *zap.Logger) *Middleware {
	return &Middleware{
		sessions: sessions,
		logger:   logger,
	}
}

// Authenticate rejects requests without a valid staff session. The token is
// taken from the Authorization header or, failing that, the session cookie.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		token := tokenFromRequest(r)
		if token == "" {
			http.Error(w, "Unauthorized: missing session", http.StatusUnauthorized)
			return
		}

		session, err := m.sessions.Verify(token)
		if err != nil {
			m.logger.Warn("session validation failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err),
			)
			http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
			return
		}

		m.logger.Debug("request authenticated",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("username", session.Username),
			zap.Duration("auth_duration", time.Since(start)),
		)

		ctx := WithSession(r.Context(), session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthenticate attaches a session when a valid token is present but
// lets unauthenticated requests through. Used on endpoints that are public
// but behave differently for staff.
func (m *Middleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := tokenFromRequest(r); token != "" {
			if session, err := m.sessions.Verify(token); err == nil {
				ctx := WithSession(r.Context(), session)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			} else {
				m.logger.Debug("optional auth: session validation failed, continuing unauthenticated",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
			}
		}
		next.ServeHTTP(w, r)
	})
}

func tokenFromRequest(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}
