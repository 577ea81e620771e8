package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	TotalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	ActiveRequests = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_active",
			Help: "Number of active HTTP requests",
		},
		[]string{"method", "endpoint"},
	)

	PlatformCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "satellite_platform_calls_total",
			Help: "Outbound analytics platform calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	GeocodeCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_calls_total",
			Help: "Outbound geocoding calls by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(TotalRequests)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(ActiveRequests)
	prometheus.MustRegister(PlatformCalls)
	prometheus.MustRegister(GeocodeCalls)
}

// ObservePlatformCall records one outbound analytics platform call.
func ObservePlatformCall(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	PlatformCalls.WithLabelValues(operation, outcome).Inc()
}

// ObserveGeocodeCall records one outbound geocoding call.
func ObserveGeocodeCall(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	GeocodeCalls.WithLabelValues(outcome).Inc()
}

// Middleware instruments every request with count, duration and in-flight
// gauges. The endpoint label uses the route template, not the raw path, to
// keep cardinality bounded; callers pass a func that extracts it.
func Middleware(endpoint func(r *http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ep := endpoint(r)

			ActiveRequests.WithLabelValues(r.Method, ep).Inc()

			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)

			ActiveRequests.WithLabelValues(r.Method, ep).Dec()
			RequestDuration.WithLabelValues(r.Method, ep).Observe(time.Since(start).Seconds())
			TotalRequests.WithLabelValues(r.Method, ep, strconv.Itoa(rw.status)).Inc()
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
