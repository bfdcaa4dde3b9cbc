package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/luminafin/lumina/internal/usecase"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	store usecase.SnapshotStore
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store usecase.SnapshotStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness returns 200 if the snapshot store is reachable.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		writeError(w, http.StatusServiceUnavailable, "snapshot store unhealthy", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"store":  "ok",
	})
}
