package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"healthycity-service/internal/api/handlers"
	"healthycity-service/internal/platform/metrics"
	"healthycity-service/internal/ports"
	"healthycity-service/internal/services"
)

// Deps carries everything the HTTP surface needs. Handlers stay unaware of
// concrete adapters; this is the API composition root.
type Deps struct {
	Resolver   *services.CityResolver
	GreenCover *services.GreenCoverService
	Heat       *services.HeatService
	Sim        *services.SimulatedMetricsService

	// For the health endpoint.
	Imagery      ports.ImageryProvider
	CacheBackend string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
func NewRouter(deps Deps) http.Handler {
	r := mux.NewRouter()

	r.Use(requestIDMiddleware, loggingMiddleware, metrics.Middleware(endpointLabel))

	cityHandler := &handlers.CityHandler{
		Resolver:   deps.Resolver,
		GreenCover: deps.GreenCover,
		Heat:       deps.Heat,
		Sim:        deps.Sim,
	}
	healthHandler := &handlers.HealthHandler{
		Imagery:      deps.Imagery,
		CacheBackend: deps.CacheBackend,
	}

	r.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	city := r.PathPrefix("/city/{city}").Subrouter()
	city.HandleFunc("/greencover", cityHandler.GetGreenCover).Methods(http.MethodGet)
	city.HandleFunc("/heatmap", cityHandler.GetHeatMap).Methods(http.MethodGet)
	city.HandleFunc("/floodrisk", cityHandler.GetFloodRisk).Methods(http.MethodGet)
	city.HandleFunc("/airquality", cityHandler.GetAirQuality).Methods(http.MethodGet)
	city.HandleFunc("/overview", cityHandler.GetOverview).Methods(http.MethodGet)
	city.HandleFunc("/reportcard", cityHandler.GetReportCard).Methods(http.MethodGet)
	city.HandleFunc("/simulate", cityHandler.GetSimulation).Methods(http.MethodGet)

	return r
}

// endpointLabel keeps metric cardinality bounded by labelling with the route
// template ("/city/{city}/heatmap") instead of the raw path.
func endpointLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}
