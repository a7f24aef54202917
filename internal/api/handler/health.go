package handler

import (
	"net/http"
	"time"

	"github.com/mgcare/carefinder/internal/api/respond"
)

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and docs location.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"name":    "Carefinder API",
		"version": "2.0.0",
		"status":  "running",
		"docs":    "/docs",
		"coverage": []string{
			"England (CQC, live)",
			"Scotland (Care Inspectorate, bundled)",
			"Northern Ireland (RQIA, bundled)",
			"Ireland (HIQA, bundled)",
		},
	})
}

// HealthCheck returns service status plus per-register record counts.
// @Summary Health check
// @Description Returns health status, loaded record counts, and cache statistics.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"dataLoaded": map[string]int{
			"scotland": len(h.snapshot.Scotland),
			"rqia":     len(h.snapshot.NorthernIreland),
			"hiqa":     len(h.snapshot.Ireland),
		},
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
