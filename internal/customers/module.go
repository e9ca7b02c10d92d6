// Package customers provides the customer records module.
package customers

import (
	"leadflow_backend/internal/customers/handler"
	"leadflow_backend/internal/customers/repository"
	"leadflow_backend/internal/customers/service"
	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/platform/db"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/validator"
)

// Module is the customers module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

func NewModule(conn db.DBTX, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{handler: handler.New(service.New(repository.New(conn), log), val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "customers"
}

// RegisterRoutes mounts /customers.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/customers"))
}

var _ apphttp.Module = (*Module)(nil)
