// Package http defines what the router needs from the composition root.
package http

import (
	"context"

	"leadflow_backend/internal/events"
	"leadflow_backend/platform/config"
	"leadflow_backend/platform/logger"

	"github.com/prometheus/client_golang/prometheus"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker backs GET /api/health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App is everything the router is built from. cmd/api fills it in.
type App struct {
	Config RouterConfig
	Logger *logger.Logger
	Health HealthChecker
	// EventBus is shared by the modules; the router itself does not publish.
	EventBus events.Bus
	// Registry receives HTTP metrics and backs GET /metrics.
	Registry *prometheus.Registry
	Modules []Module
}
