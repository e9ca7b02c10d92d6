// Package technical provides the technical tasks, tenders and tech data module.
package technical

import (
	"leadflow_backend/internal/events"
	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/internal/technical/handler"
	"leadflow_backend/internal/technical/repository"
	"leadflow_backend/internal/technical/service"
	"leadflow_backend/platform/db"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/validator"
)

// Module is the technical module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

func NewModule(conn db.DBTX, eventBus events.Publisher, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repository.New(conn), eventBus, log)
	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "technical"
}

// RegisterRoutes mounts /tasks, /tenders and /tech-data.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterTaskRoutes(ctx.Protected.Group("/tasks"))
	m.handler.RegisterTenderRoutes(ctx.Protected.Group("/tenders"))
	m.handler.RegisterTechDataRoutes(ctx.Protected.Group("/tech-data"))
}

var _ apphttp.Module = (*Module)(nil)
