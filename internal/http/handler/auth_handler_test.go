package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/radwerk/intake-api/internal/auth"
	"github.com/radwerk/intake-api/internal/config"
	"github.com/radwerk/intake-api/internal/domain"
)

func newAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("geheim123"), bcrypt.MinCost)
	require.NoError(t, err)

	sessions := auth.NewSessionManager(&config.AuthConfig{
		AdminUsername:     "werkstatt",
		AdminPasswordHash: string(hash),
		JWTSecret:         "test-secret",
		SessionTTL:        3600,
	})
	return NewAuthHandler(sessions, false, zap.NewNop())
}

func TestAuthHandler_Login(t *testing.T) {
	h := newAuthHandler(t)

	body := `{"username": "werkstatt", "password": "geheim123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v2/auth/session", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var session domain.SessionDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&session))
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "werkstatt", session.Username)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.SessionCookie, cookies[0].Name)
	assert.Equal(t, session.Token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	h := newAuthHandler(t)

	body := `{"username": "werkstatt", "password": "falsch"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v2/auth/session", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v2/auth/session", strings.NewReader(`{"username": "werkstatt"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr domain.APIError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
	assert.Contains(t, apiErr.Errors, "password")
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	h := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/v2/auth/session", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.SessionCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
