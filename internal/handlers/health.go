package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/diewo77/autoparts/httpx"
)

// HealthHandler reports liveness. Ping, when set, checks the database.
type HealthHandler struct {
	Ping func(ctx context.Context) error
}

// Health: GET /health and GET /healthz
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.Ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.Ping(ctx); err != nil {
			log.Printf("health check failed: %v", err)
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
