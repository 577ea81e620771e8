package handlers

import (
	"net/http"

	"healthycity-service/internal/api/dto"
	"healthycity-service/internal/ports"
)

// HealthHandler reports liveness plus the readiness of the analytics platform
// and which geocode cache backend is wired, so a degraded deployment is
// visible instead of silent.
type HealthHandler struct {
	Imagery      ports.ImageryProvider
	CacheBackend string
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	platform := "ready"
	if h.Imagery == nil || !h.Imagery.Ready() {
		platform = "not_initialized"
	}

	writeJSON(w, r, http.StatusOK, dto.HealthResponse{
		Status:       "ok",
		Platform:     platform,
		GeocodeCache: h.CacheBackend,
	})
}
