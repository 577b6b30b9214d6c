package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the API server.
type Metrics struct {
	// Upstream OpenWeatherMap calls.
	UpstreamRequests *prometheus.CounterVec   // labels: endpoint={geo,weather}, outcome={success,not_found,error}
	UpstreamDuration *prometheus.HistogramVec // labels: endpoint={geo,weather}

	// User operations handled by the service layer.
	UserOperations *prometheus.CounterVec // labels: operation={create,update,delete,weather}
}

// NewMetrics creates and registers all collectors with the default registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "userweather",
			Name:      "upstream_requests_total",
			Help:      "OpenWeatherMap API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "userweather",
			Name:      "upstream_request_duration_seconds",
			Help:      "OpenWeatherMap API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"endpoint"}),
		UserOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "userweather",
			Name:      "user_operations_total",
			Help:      "User operations by type.",
		}, []string{"operation"}),
	}

	prometheus.MustRegister(
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.UserOperations,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests
// can construct clients repeatedly without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "userweather", Name: "upstream_requests_total"}, []string{"endpoint", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "userweather", Name: "upstream_request_duration_seconds"}, []string{"endpoint"}),
		UserOperations:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "userweather", Name: "user_operations_total"}, []string{"operation"}),
	}
}
