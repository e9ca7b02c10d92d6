// Package dashboard provides the cached pipeline summary.
package dashboard

import (
	"context"

	"leadflow_backend/internal/events"
	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/platform/db"
	"leadflow_backend/platform/logger"
)

// Module is the dashboard module implementing http.Module.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule wires the summary and subscribes cache invalidation to every
// pipeline event on bus.
func NewModule(conn db.DBTX, cache *Cache, bus events.Bus, log *logger.Logger) *Module {
	svc := NewService(NewRepo(conn), cache, log)

	invalidate := events.HandlerFunc(func(ctx context.Context, _ events.Event) error {
		return svc.Invalidate(ctx)
	})
	for _, name := range events.Names {
		bus.Subscribe(name, invalidate)
	}

	return &Module{handler: NewHandler(svc), service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "dashboard"
}

// RegisterRoutes mounts /dashboard.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/dashboard"))
}

var _ apphttp.Module = (*Module)(nil)
