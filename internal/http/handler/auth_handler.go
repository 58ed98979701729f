package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/radwerk/intake-api/internal/auth"
	"github.com/radwerk/intake-api/internal/domain"
)

// AuthHandler manages the staff session endpoints.
type AuthHandler struct {
	sessions     *auth.SessionManager
	secureCookie bool
	logger       *zap.Logger
}

func NewAuthHandler(sessions *auth.SessionManager, secureCookie bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		sessions:     sessions,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// @Summary Create staff session
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body domain.LoginRequest true "Staff credentials"
// @Success 201 {object} domain.SessionDTO
// @Failure 401 {object} domain.APIError
// @Router /auth/session [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	token, session, err := h.sessions.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.Warn("failed login attempt",
				zap.String("username", req.Username),
				zap.String("remote_addr", r.RemoteAddr),
			)
			respondWithError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		h.logger.Error("failed to create session", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusCreated, domain.SessionDTO{
		Token:     token,
		Username:  session.Username,
		ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// @Summary Get current session
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.SessionDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/session [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "No active session")
		return
	}
	respondJSON(w, http.StatusOK, domain.SessionDTO{
		Username:  session.Username,
		ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// @Summary End staff session
// @Tags Auth
// @Success 204
// @Security BearerAuth
// @Router /auth/session [delete]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	// JWTs are not tracked server-side; logout clears the cookie and the
	// client drops the token.
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
