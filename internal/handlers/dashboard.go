package handlers

import (
	"net/http"

	"github.com/diewo77/autoparts/httpx"
	"github.com/diewo77/autoparts/internal/services"
)

type DashboardHandler struct {
	Metrics *services.MetricsService
}

func NewDashboardHandler(metrics *services.MetricsService) *DashboardHandler {
	return &DashboardHandler{Metrics: metrics}
}

// Show: GET /dashboard – recomputed on every request
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	m, err := h.Metrics.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, "failed_to_compute_metrics", err)
		return
	}
	httpx.JSON(w, http.StatusOK, m)
}
