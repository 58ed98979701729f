package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/radwerk/intake-api/internal/config"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// SessionManager issues and verifies staff session tokens. The back office
// has a single admin account; the password is stored as a bcrypt hash in
// configuration and sessions are signed HS256 JWTs.
type SessionManager struct {
	config *config.AuthConfig
}

// NewSessionManager creates a new session manager
func NewSessionManager(cfg *config.AuthConfig) *SessionManager {
	return &SessionManager{config: cfg}
}

// Login verifies the credentials and issues a session token.
func (m *SessionManager) Login(username, password string) (string, *Session, error) {
	// Constant-time username comparison; bcrypt handles the password.
	if subtle.ConstantTimeCompare([]byte(username), []byte(m.config.AdminUsername)) != 1 {
		// Burn a comparison anyway so unknown usernames cost the same.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B4TZPkBmGzQz7xw1ZQq1cJ1hQx0u"), []byte(password))
		return "", nil, ErrInvalidCredentials
	}
	if m.config.AdminPasswordHash == "" {
		return "", nil, fmt.Errorf("admin password hash not configured")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.config.AdminPasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	session := &Session{
		Username:  username,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.config.SessionTTLDuration()),
	}

	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.config.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, session, nil
}

// Verify validates a session token and returns the session it carries.
func (m *SessionManager) Verify(tokenString string) (*Session, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.config.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	session := &Session{Username: claims.Subject}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}
