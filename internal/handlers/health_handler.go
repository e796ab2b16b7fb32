package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Pinger is the interface that wraps a dependency liveness check
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error {
	return f(ctx)
}

// HealthHandler reports the health of the service and its dependencies
type HealthHandler struct {
	BaseHandler
	dependencies map[string]Pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(dependencies map[string]Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		BaseHandler:  BaseHandler{logger: logger},
		dependencies: dependencies,
	}
}

// Health handles GET /health.
// It responds 503 when any dependency fails its ping.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	body := map[string]string{"status": "ok"}
	for name, dependency := range h.dependencies {
		if err := dependency.PingContext(ctx); err != nil {
			h.logger.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
			status = http.StatusServiceUnavailable
			body["status"] = "unavailable"
			body[name] = "unavailable"
			continue
		}
		body[name] = "ok"
	}

	h.respondJSON(w, status, body)
}
