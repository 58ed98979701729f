package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/radwerk/intake-api/internal/service"
)

// DashboardHandler serves the derived dashboard stats.
type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// @Summary Get dashboard stats
// @Description Per-status customer counts. Served from a snapshot refreshed
// @Description periodically in the background.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardStats
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to compute dashboard stats", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
