package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/agbru/fibmatrix/pkg/fibonacci"
)

// Calculation outcome labels.
const (
	statusOK       = "ok"
	statusOverflow = "overflow"
	statusInvalid  = "invalid"
	statusCanceled = "canceled"
	statusError    = "error"
)

// Metrics records calculation counters and latencies in Prometheus.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	calculations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	wrapped      prometheus.Counter
}

// NewMetrics registers the calculation collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		calculations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fibmatrix_calculations_total",
				Help: "The total number of Fibonacci calculations processed",
			},
			[]string{"policy", "status"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fibmatrix_calculation_duration_seconds",
				Help:    "The duration of Fibonacci calculations in seconds",
				Buckets: prometheus.ExponentialBuckets(1e-7, 4, 10),
			},
			[]string{"policy"},
		),
		wrapped: f.NewCounter(prometheus.CounterOpts{
			Name: "fibmatrix_wrapped_results_total",
			Help: "Results returned modulo 2^128 because F(n) exceeded 128 bits",
		}),
	}
}

func (m *Metrics) observe(policy fibonacci.OverflowPolicy, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(string(policy), status).Inc()
	if status == statusOK {
		m.duration.WithLabelValues(string(policy)).Observe(d.Seconds())
	}
}

func (m *Metrics) recordWrapped() {
	if m == nil {
		return
	}
	m.wrapped.Inc()
}
