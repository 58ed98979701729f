package auth

import (
	"context"
	"time"
)

// Session holds the authenticated staff session attached to a request.
type Session struct {
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type contextKey string

const sessionContextKey contextKey = "session"

// WithSession adds the session to the context
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// FromContext extracts the session from the context
func FromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(*Session)
	return session, ok
}

// MustFromContext extracts the session or panics
func MustFromContext(ctx context.Context) *Session {
	session, ok := FromContext(ctx)
	if !ok {
		panic("session not found in context")
	}
	return session
}
