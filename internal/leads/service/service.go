// Package service implements lead management: CRUD, the filtered list, bulk
// import and the lifecycle transitions.
package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"leadflow_backend/internal/access"
	"leadflow_backend/internal/events"
	"leadflow_backend/internal/leads/importer"
	"leadflow_backend/internal/leads/repository"
	"leadflow_backend/internal/leads/transport"
	"leadflow_backend/internal/records"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/phone"
	"leadflow_backend/platform/sanitize"
	"leadflow_backend/platform/validator"

	"github.com/google/uuid"
)

const (
	defaultPageSize      = 20
	defaultImportMaxRows = 5000
	maskedContactDigits  = 5
)

// LifecycleTx is the set of writes one lifecycle change performs atomically.
type LifecycleTx interface {
	LockLead(ctx context.Context, id uuid.UUID) (records.Lead, error)
	UpdateLeadStatus(ctx context.Context, id uuid.UUID, status records.LeadStatus) (records.Lead, error)
	CreateFollowUpTask(ctx context.Context, task records.FollowUpTask) (records.FollowUpTask, error)
	CreatePayment(ctx context.Context, p records.Payment) (records.Payment, error)
}

// Transactor runs fn in one transaction, committing only when fn returns nil.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx LifecycleTx) error) error
}

// Options tunes the service. Zero values select defaults.
type Options struct {
	PageSize      int
	ImportMaxRows int
	Now           func() time.Time
	Normalizer    *importer.Normalizer
	Metrics       *ImportMetrics
}

// Service provides business logic for leads.
type Service struct {
	repo       repository.LeadsRepository
	tx         Transactor
	bus        events.Publisher
	val        *validator.Validator
	log        *logger.Logger
	pageSize   int
	maxRows    int
	now        func() time.Time
	normalizer *importer.Normalizer
	metrics    *ImportMetrics
}

// New creates a new leads service.
func New(repo repository.LeadsRepository, tx Transactor, bus events.Publisher, val *validator.Validator, log *logger.Logger, opts Options) *Service {
	s := &Service{
		repo:       repo,
		tx:         tx,
		bus:        bus,
		val:        val,
		log:        log,
		pageSize:   opts.PageSize,
		maxRows:    opts.ImportMaxRows,
		now:        opts.Now,
		normalizer: opts.Normalizer,
		metrics:    opts.Metrics,
	}
	if s.pageSize < 1 {
		s.pageSize = defaultPageSize
	}
	if s.maxRows < 1 {
		s.maxRows = defaultImportMaxRows
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.normalizer == nil {
		s.normalizer = importer.New()
		s.normalizer.Now = s.now
	}
	return s
}

// PageSize is the fixed list page size.
func (s *Service) PageSize() int {
	return s.pageSize
}

// Create stores a manually entered lead.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	params, err := s.prepare(req)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	lead, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.LeadResponse{}, apperr.AsUpstream("failed to create lead", err)
	}

	s.log.Info("lead created", "id", lead.ID, "status", lead.Status)
	s.bus.Publish(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		To:        string(lead.Status),
		Trigger:   "create",
	})
	return toLeadResponse(lead, access.Full), nil
}

// GetByID returns one lead as seen by a caller with capability c.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, c access.Capability) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, apperr.AsUpstream("failed to load lead", err)
	}
	return toLeadResponse(lead, c), nil
}

// List applies the search, status and date filters and returns one page of
// fixed size, newest first.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest, c access.Capability) (transport.LeadListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}

	params := repository.ListParams{
		Search: strings.TrimSpace(req.Search),
		Limit:  s.pageSize,
		Offset: (page - 1) * s.pageSize,
	}
	if req.Status != "" {
		status, ok := records.ParseLeadStatus(req.Status)
		if !ok {
			return transport.LeadListResponse{}, apperr.Validation("unknown status filter")
		}
		params.Status = &status
	}
	if req.DateAfter != "" {
		after, err := parseDateAfter(req.DateAfter)
		if err != nil {
			return transport.LeadListResponse{}, err
		}
		params.DateAfter = &after
	}

	items, total, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.LeadListResponse{}, apperr.AsUpstream("failed to list leads", err)
	}

	return toLeadListResponse(items, total, page, s.pageSize, c), nil
}

// Update applies a partial edit. A changed status is logged as an override.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateLeadRequest) (transport.LeadResponse, error) {
	params := repository.UpdateParams{
		Date:    req.Date,
		Sno:     cleanPtr(req.Sno, sanitize.Line),
		Company: cleanPtr(req.Company, sanitize.Line),
		Name:    cleanPtr(req.Name, sanitize.Line),
		Email:   cleanPtr(req.Email, strings.TrimSpace),
		Address: cleanPtr(req.Address, sanitize.Text),
		Note:    cleanPtr(req.Note, sanitize.Text),
		Purpose: cleanPtr(req.Purpose, records.CanonicalPurpose),
		Status:  req.Status,
	}
	if params.Company != nil && *params.Company == "" {
		return transport.LeadResponse{}, apperr.Validation("company must not be empty")
	}
	if req.Contact != nil {
		contact := phone.Digits(*req.Contact)
		if *req.Contact != "" && contact == "" {
			return transport.LeadResponse{}, apperr.Validation("contact must contain digits")
		}
		params.Contact = &contact
	}

	var before records.Lead
	if params.Status != nil {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return transport.LeadResponse{}, apperr.AsUpstream("failed to load lead", err)
		}
		before = current
	}

	lead, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return transport.LeadResponse{}, apperr.AsUpstream("failed to update lead", err)
	}

	if params.Status != nil && before.Status != lead.Status {
		s.statusChanged(ctx, lead.ID, before.Status, lead.Status, "override")
	}
	return toLeadResponse(lead, access.Full), nil
}

// Delete removes one lead.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.AsUpstream("failed to delete lead", err)
	}
	s.log.Info("lead deleted", "id", id)
	s.bus.Publish(ctx, events.LeadsRemoved{BaseEvent: events.NewBaseEvent(), Count: 1})
	return nil
}

// BulkDelete removes every listed lead that exists and reports how many went.
func (s *Service) BulkDelete(ctx context.Context, req transport.BulkDeleteRequest) (transport.BulkDeleteResponse, error) {
	if len(req.IDs) == 0 {
		return transport.BulkDeleteResponse{}, apperr.Validation("ids must not be empty")
	}
	n, err := s.repo.BulkDelete(ctx, dedupeIDs(req.IDs))
	if err != nil {
		return transport.BulkDeleteResponse{}, apperr.AsUpstream("failed to delete leads", err)
	}
	s.log.Info("leads bulk deleted", "requested", len(req.IDs), "deleted", n)
	if n > 0 {
		s.bus.Publish(ctx, events.LeadsRemoved{BaseEvent: events.NewBaseEvent(), Count: n})
	}
	return transport.BulkDeleteResponse{DeletedCount: n}, nil
}

// prepare cleans a lead input, validates it and assigns an id.
func (s *Service) prepare(in records.LeadInput) (repository.CreateParams, error) {
	if !storable(in.Sno, in.Company, in.Name, in.Contact, in.Email, in.Address, in.Note, in.Purpose, string(in.Status)) {
		return repository.CreateParams{}, apperr.Validation("row contains null bytes or invalid UTF-8")
	}

	in.Company = sanitize.Line(in.Company)
	in.Name = sanitize.Line(in.Name)
	in.Sno = sanitize.Line(in.Sno)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = sanitize.Text(in.Address)
	in.Note = sanitize.Text(in.Note)
	in.Purpose = records.CanonicalPurpose(in.Purpose)
	in.Contact = phone.Digits(in.Contact)
	if in.Status == "" {
		in.Status = records.LeadNew
	} else if parsed, ok := records.ParseLeadStatus(string(in.Status)); ok {
		in.Status = parsed
	}

	if err := s.val.Struct(in); err != nil {
		return repository.CreateParams{}, apperr.Validation(validator.Summary(err)).WithDetails(validator.FieldErrors(err))
	}

	date := s.now()
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}

	return repository.CreateParams{
		ID:      uuid.New(),
		Date:    date,
		Sno:     in.Sno,
		Company: in.Company,
		Name:    in.Name,
		Contact: in.Contact,
		Email:   in.Email,
		Address: in.Address,
		Note:    in.Note,
		Purpose: in.Purpose,
		Status:  in.Status,
	}, nil
}

// storable reports whether PostgreSQL text columns accept every field.
func storable(fields ...string) bool {
	for _, f := range fields {
		if strings.IndexByte(f, 0) >= 0 || !utf8.ValidString(f) {
			return false
		}
	}
	return true
}

func (s *Service) statusChanged(ctx context.Context, id uuid.UUID, from, to records.LeadStatus, trigger string) {
	s.log.LeadTransition(id.String(), string(from), string(to), trigger)
	s.bus.Publish(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    id,
		From:      string(from),
		To:        string(to),
		Trigger:   trigger,
	})
}

func parseDateAfter(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.Validation("date_after must be YYYY-MM-DD or RFC 3339")
}

func cleanPtr(v *string, clean func(string) string) *string {
	if v == nil {
		return nil
	}
	out := clean(*v)
	return &out
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
