// Package metrics holds the Prometheus collectors of the navigator
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Counter for navigation attempts
	navigationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navigator_navigation_attempts_total",
			Help: "Total number of navigation attempts",
		},
		[]string{"level", "action", "outcome"},
	)

	// Histogram for learning backend request duration
	backendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "navigator_backend_request_duration_seconds",
			Help:    "Time spent waiting for the learning backend",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	// Gauge for sessions created and not yet deleted by this instance
	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "navigator_active_sessions_current",
			Help: "Current number of navigation sessions opened through this instance",
		},
	)

	// Counter for navigation events persisted by the worker
	persistedEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navigator_persisted_events_total",
			Help: "Total number of navigation events handled by the worker",
		},
		[]string{"status"},
	)
)

// RecordNavigation counts one navigation attempt
func RecordNavigation(level, action, outcome string) {
	navigationAttempts.WithLabelValues(level, action, outcome).Inc()
}

// ObserveBackendRequest records the duration of one learning backend request
func ObserveBackendRequest(method, status string, duration time.Duration) {
	backendRequestDuration.WithLabelValues(method, status).Observe(duration.Seconds())
}

// SessionOpened increments the active sessions gauge
func SessionOpened() {
	activeSessions.Inc()
}

// SessionClosed decrements the active sessions gauge
func SessionClosed() {
	activeSessions.Dec()
}

// RecordPersistedEvent counts one navigation event handled by the worker
func RecordPersistedEvent(status string) {
	persistedEvents.WithLabelValues(status).Inc()
}

// Handler returns the HTTP handler exposing the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
