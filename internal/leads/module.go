// Package leads provides the lead management bounded context module.
// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	"leadflow_backend/internal/events"
	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/internal/leads/handler"
	"leadflow_backend/internal/leads/repository"
	"leadflow_backend/internal/leads/service"
	"leadflow_backend/platform/config"
	"leadflow_backend/platform/db"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/validator"

	"github.com/prometheus/client_golang/prometheus"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the leads module with all its dependencies.
// tx runs the lifecycle writes that span leads, sales tasks and payments.
func NewModule(conn db.DBTX, tx service.Transactor, eventBus events.Publisher, val *validator.Validator, cfg config.LeadsConfig, log *logger.Logger, reg prometheus.Registerer) *Module {
	repo := repository.New(conn)

	svc := service.New(repo, tx, eventBus, val, log, service.Options{
		PageSize:      cfg.GetLeadsPageSize(),
		ImportMaxRows: cfg.GetImportMaxRows(),
		Metrics:       service.NewImportMetrics(reg),
	})

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the leads service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	leadsGroup := ctx.Protected.Group("/leads")
	m.handler.RegisterRoutes(leadsGroup)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
