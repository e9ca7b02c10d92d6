// Package salestasks provides the follow-up task module.
package salestasks

import (
	"leadflow_backend/internal/events"
	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/internal/salestasks/handler"
	"leadflow_backend/internal/salestasks/repository"
	"leadflow_backend/internal/salestasks/service"
	"leadflow_backend/platform/db"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/validator"
)

// Module is the sales task module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

func NewModule(conn db.DBTX, eventBus events.Publisher, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repository.New(conn), eventBus, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "sales-tasks"
}

// RegisterRoutes mounts sales task routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/sales-tasks"))
}

var _ apphttp.Module = (*Module)(nil)
