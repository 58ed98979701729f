package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/radwerk/intake-api/internal/config"
)

func testAuthConfig(t *testing.T, ttlSeconds int) *config.AuthConfig {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("geheim123"), bcrypt.MinCost)
	require.NoError(t, err)
	return &config.AuthConfig{
		JWTSecret:         "test-secret",
		AdminUsername:     "werkstatt",
		AdminPasswordHash: string(hash),
		SessionTTL:        ttlSeconds,
	}
}

func TestSessionManager_LoginAndVerify(t *testing.T) {
	m := NewSessionManager(testAuthConfig(t, 3600))

	token, session, err := m.Login("werkstatt", "geheim123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "werkstatt", session.Username)
	assert.True(t, session.ExpiresAt.After(session.IssuedAt))

	verified, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "werkstatt", verified.Username)
}

func TestSessionManager_WrongPassword(t *testing.T) {
	m := NewSessionManager(testAuthConfig(t, 3600))

	_, _, err := m.Login("werkstatt", "falsch")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSessionManager_UnknownUsername(t *testing.T) {
	m := NewSessionManager(testAuthConfig(t, 3600))

	_, _, err := m.Login("admin", "geheim123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSessionManager_ExpiredToken(t *testing.T) {
	m := NewSessionManager(testAuthConfig(t, -60))

	token, _, err := m.Login("werkstatt", "geheim123")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestSessionManager_TamperedToken(t *testing.T) {
	m := NewSessionManager(testAuthConfig(t, 3600))

	token, _, err := m.Login("werkstatt", "geheim123")
	require.NoError(t, err)

	other := NewSessionManager(&config.AuthConfig{
		JWTSecret:     "other-secret",
		AdminUsername: "werkstatt",
		SessionTTL:    3600,
	})
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
