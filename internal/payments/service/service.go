// Package service implements payments: manual entry, reconciled edits, the
// technical handover and receipt files.
package service

import (
	"context"
	"strings"
	"time"

	"leadflow_backend/internal/events"
	"leadflow_backend/internal/payments/reconcile"
	"leadflow_backend/internal/payments/repository"
	"leadflow_backend/internal/payments/transport"
	"leadflow_backend/internal/records"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	defaultTaskName = "Auto Created Task"
)

// Store is the payment repository plus a transaction for read-modify-write.
type Store interface {
	repository.Repository
	WithTx(ctx context.Context, fn func(repo repository.Repository) error) error
}

// HandoverWriter creates the technical task for a payment.
type HandoverWriter interface {
	CreateTask(ctx context.Context, t records.TechTask) (records.TechTask, error)
}

// Service provides business logic for payments.
type Service struct {
	store    Store
	handover HandoverWriter
	receipts ReceiptStore
	bus      events.Publisher
	log      *logger.Logger
	now      func() time.Time
}

// New creates a payments service. receipts may be nil when object storage
// is not configured.
func New(store Store, handover HandoverWriter, receipts ReceiptStore, bus events.Publisher, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		handover: handover,
		receipts: receipts,
		bus:      bus,
		log:      log,
		now:      time.Now,
	}
}

// Create records a payment entered by hand.
func (s *Service) Create(ctx context.Context, req transport.CreatePaymentRequest) (records.Payment, error) {
	if err := reconcile.ValidateInputs(req.Amount, req.Advance); err != nil {
		return records.Payment{}, err
	}
	company := sanitize.Line(req.Company)
	if company == "" {
		return records.Payment{}, apperr.Validation("company is required")
	}

	date := s.now()
	if req.Date != nil && !req.Date.IsZero() {
		date = *req.Date
	}
	amount := records.NewAmount(req.Amount.Round(2))
	advance := records.NewAmount(req.Advance.Round(2))

	p, err := s.store.Create(ctx, records.Payment{
		ID:        uuid.New(),
		Date:      date,
		Company:   company,
		SoNo:      sanitize.Line(req.SoNo),
		Amount:    amount,
		Advance:   advance,
		Remaining: reconcile.ComputeRemaining(amount, advance),
		Invoice:   sanitize.Line(req.Invoice),
		Remark:    sanitize.Text(req.Remark),
	})
	if err != nil {
		return records.Payment{}, apperr.AsUpstream("failed to create payment", err)
	}

	s.changed(ctx, p.ID, events.ActionCreated)
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (records.Payment, error) {
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		return records.Payment{}, apperr.AsUpstream("failed to load payment", err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, req transport.ListPaymentsRequest) (transport.PaymentListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}

	items, total, err := s.store.List(ctx, repository.ListParams{
		Search: strings.TrimSpace(req.Search),
		Limit:  defaultPageSize,
		Offset: (page - 1) * defaultPageSize,
	})
	if err != nil {
		return transport.PaymentListResponse{}, apperr.AsUpstream("failed to list payments", err)
	}

	return transport.PaymentListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   defaultPageSize,
		TotalPages: (total + defaultPageSize - 1) / defaultPageSize,
	}, nil
}

// Update merges the edit over the stored row under a row lock. A submitted
// remaining is ignored; the stored one is always derived.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdatePaymentRequest) (records.Payment, error) {
	if req.Company != nil && sanitize.Line(*req.Company) == "" {
		return records.Payment{}, apperr.Validation("company must not be empty")
	}

	var updated records.Payment
	err := s.store.WithTx(ctx, func(repo repository.Repository) error {
		current, err := repo.LockByID(ctx, id)
		if err != nil {
			return err
		}

		next, err := reconcile.Apply(current, reconcile.Edit{Amount: req.Amount, Advance: req.Advance})
		if err != nil {
			return err
		}
		if req.Date != nil {
			next.Date = *req.Date
		}
		if req.Company != nil {
			next.Company = sanitize.Line(*req.Company)
		}
		if req.SoNo != nil {
			next.SoNo = sanitize.Line(*req.SoNo)
		}
		if req.Invoice != nil {
			next.Invoice = sanitize.Line(*req.Invoice)
		}
		if req.Remark != nil {
			next.Remark = sanitize.Text(*req.Remark)
		}

		updated, err = repo.Update(ctx, next)
		return err
	})
	if err != nil {
		return records.Payment{}, apperr.AsUpstream("failed to update payment", err)
	}

	s.changed(ctx, updated.ID, events.ActionUpdated)
	return updated, nil
}

// Delete removes the payment and, best effort, its receipt file.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.store.Delete(ctx, id)
	if err != nil {
		return apperr.AsUpstream("failed to delete payment", err)
	}

	if p.ReceiptKey != nil && s.receipts != nil {
		if err := s.receipts.Delete(ctx, *p.ReceiptKey); err != nil {
			s.log.Warn("receipt cleanup failed", "paymentId", id, "key", *p.ReceiptKey, "error", err)
		}
	}

	s.changed(ctx, id, events.ActionDeleted)
	return nil
}

// GoThru hands a payment over to the technical team. Each payment can be
// handed over once.
func (s *Service) GoThru(ctx context.Context, id uuid.UUID, req transport.GoThruRequest) (transport.GoThruResponse, error) {
	if req.Priority != "" && !req.Priority.Valid() {
		return transport.GoThruResponse{}, apperr.Validation("priority must be Low, Medium or High")
	}
	var deadline *time.Time
	if raw := strings.TrimSpace(req.Deadline); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return transport.GoThruResponse{}, apperr.Validation("deadline must be YYYY-MM-DD")
		}
		deadline = &d
	}

	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		return transport.GoThruResponse{}, apperr.AsUpstream("failed to load payment", err)
	}

	taskName := sanitize.Text(req.TaskName)
	if taskName == "" {
		taskName = defaultTaskName
	}
	paymentID := p.ID
	task, err := s.handover.CreateTask(ctx, records.TechTask{
		ID:          uuid.New(),
		PaymentID:   &paymentID,
		Date:        s.now(),
		CompanyName: p.Company,
		ClientName:  sanitize.Line(req.ClientName),
		ClientID:    sanitize.Line(req.ClientID),
		GemID:       strings.TrimSpace(req.GemID),
		GemPassword: req.GemPassword,
		TaskName:    taskName,
		Priority:    req.Priority.OrDefault(),
		Deadline:    deadline,
		Status:      records.DefaultTechTaskStatus,
	})
	if err != nil {
		return transport.GoThruResponse{}, apperr.AsUpstream("failed to hand over payment", err)
	}

	s.log.Info("payment handed over", "paymentId", p.ID, "techTaskId", task.ID)
	s.bus.Publish(ctx, events.PaymentHandedOver{
		BaseEvent:  events.NewBaseEvent(),
		PaymentID:  p.ID,
		TechTaskID: task.ID,
	})
	return transport.GoThruResponse{Message: "Sent to Task Manager", Task: task}, nil
}

func (s *Service) changed(ctx context.Context, id uuid.UUID, action string) {
	s.log.Info("payment "+action, "id", id)
	s.bus.Publish(ctx, events.PaymentChanged{
		BaseEvent: events.NewBaseEvent(),
		PaymentID: id,
		Action:    action,
	})
}
