package handlers

import (
	"net/http"

	"github.com/PooyaTarashi/railway-reservation/utils"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	catalogReady func() bool
}

// NewHealthHandler creates a new HealthHandler. catalogReady is the
// engine's "catalog ready" signal.
func NewHealthHandler(catalogReady func() bool) *HealthHandler {
	return &HealthHandler{catalogReady: catalogReady}
}

// Health reports process liveness.
// GET /healthz
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports readiness: the service is not ready to take commands until
// a catalog batch has loaded.
// GET /readyz
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.catalogReady() {
		_ = utils.WriteServiceUnavailable(w, "catalog not loaded")
		return
	}
	_ = utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Status reports basic service information.
// GET /api/v1/status
func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteOK(w, map[string]interface{}{
		"service":       "railway-reservation",
		"catalog_ready": h.catalogReady(),
	})
}
