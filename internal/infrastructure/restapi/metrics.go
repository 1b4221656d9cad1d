package restapi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instrumentación de las llamadas salientes a la API.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registra los colectores en reg (prometheus.DefaultRegisterer en producción).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_api_requests_total",
			Help: "Outbound API requests by method, path and outcome.",
		}, []string{"method", "path", "outcome"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_api_request_duration_seconds",
			Help:    "Outbound API request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

func (m *Metrics) observe(method, path, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, path, outcome).Inc()
	m.duration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
