// Package payments provides the payments bounded context module.
package payments

import (
	"leadflow_backend/internal/adapters/storage"
	"leadflow_backend/internal/events"
	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/internal/payments/handler"
	"leadflow_backend/internal/payments/repository"
	"leadflow_backend/internal/payments/service"
	technicalrepo "leadflow_backend/internal/technical/repository"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the payments bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the payments module. receipts may be nil, in which case
// the receipt routes answer with an upstream error.
func NewModule(pool *pgxpool.Pool, receipts *storage.MinIOStore, maxFileBytes int64, eventBus events.Publisher, val *validator.Validator, log *logger.Logger) *Module {
	var store service.ReceiptStore
	if receipts != nil {
		store = receipts
	}

	svc := service.New(repository.NewStore(pool), technicalrepo.New(pool), store, eventBus, log)
	return &Module{
		handler: handler.New(svc, val, maxFileBytes),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "payments"
}

// Service returns the payments service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts payments routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/payments"))
}

var _ apphttp.Module = (*Module)(nil)
