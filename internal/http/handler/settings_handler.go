package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/radwerk/intake-api/internal/settings"
)

// SettingsHandler exposes the runtime settings store to staff.
type SettingsHandler struct {
	store  *settings.Store
	logger *zap.Logger
}

func NewSettingsHandler(store *settings.Store, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		store:  store,
		logger: logger,
	}
}

// updateSettingsRequest is a partial key/value map; only known keys are applied.
type updateSettingsRequest map[string]string

// @Summary Get runtime settings
// @Tags Settings
// @Produce json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /settings [get]
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.All())
}

// @Summary Update runtime settings
// @Description Applies the provided key/value pairs. Unknown keys are rejected.
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body object true "Key/value pairs"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /settings [patch]
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	for key := range req {
		if !settings.IsKnownKey(key) {
			respondWithError(w, http.StatusBadRequest, "Unknown setting key: "+key)
			return
		}
	}

	for key, value := range req {
		if err := h.store.Set(r.Context(), key, value); err != nil {
			h.logger.Error("failed to persist setting", zap.Error(err), zap.String("key", key))
			respondWithError(w, http.StatusInternalServerError, "Failed to persist setting")
			return
		}
	}
	respondJSON(w, http.StatusOK, h.store.All())
}
