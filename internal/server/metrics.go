package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks server-level request counters. Calculation metrics live
// in the service package and share the same registry.
type Metrics struct {
	activeRequests prometheus.Gauge
	totalRequests  *prometheus.CounterVec
	handler        http.Handler
}

// NewMetrics registers the request collectors with reg and builds the
// exposition handler for it.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		activeRequests: f.NewGauge(prometheus.GaugeOpts{
			Name: "fibmatrix_active_requests",
			Help: "Current number of active requests",
		}),
		totalRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fibmatrix_requests_total",
			Help: "Total number of requests received",
		}, []string{"path", "code"}),
		handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	}
}

// handleMetrics is the HTTP handler for the /metrics endpoint.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.metrics.handler.ServeHTTP(w, r)
}

// metricsMiddleware tracks active requests and counts responses by status.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.activeRequests.Inc()
		defer s.metrics.activeRequests.Dec()

		rec := asRecorder(w)
		next(rec, r)
		s.metrics.totalRequests.WithLabelValues(r.URL.Path, strconv.Itoa(rec.status)).Inc()
	}
}
