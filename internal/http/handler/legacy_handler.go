package handler

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/radwerk/intake-api/internal/service"
)

// LegacyHandler triggers the import from the previous workshop software.
type LegacyHandler struct {
	importService *service.LegacyImportService
	logger        *zap.Logger
}

func NewLegacyHandler(importService *service.LegacyImportService, logger *zap.Logger) *LegacyHandler {
	return &LegacyHandler{
		importService: importService,
		logger:        logger,
	}
}

// @Summary Trigger legacy customer import
// @Description Imports customers created in the legacy system after the
// @Description given cutoff (default: 30 days ago). Existing emails are skipped.
// @Tags Legacy
// @Produce json
// @Param since query string false "Cutoff as RFC 3339 timestamp"
// @Success 200 {object} service.ImportResult
// @Failure 503 {object} domain.APIError
// @Security BearerAuth
// @Router /legacy/import [post]
func (h *LegacyHandler) Import(w http.ResponseWriter, r *http.Request) {
	if !h.importService.Available() {
		respondWithError(w, http.StatusServiceUnavailable, "Legacy import is not configured")
		return
	}

	since := time.Now().AddDate(0, 0, -30)
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid since parameter: must be RFC 3339")
			return
		}
		since = parsed
	}

	result, err := h.importService.Import(r.Context(), since)
	if err != nil {
		h.logger.Error("legacy import failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Legacy import failed")
		return
	}
	respondJSON(w, http.StatusOK, result)
}
