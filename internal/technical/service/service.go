// Package service implements technical tasks and tenders.
package service

import (
	"context"
	"strings"
	"time"

	"leadflow_backend/internal/events"
	"leadflow_backend/internal/records"
	"leadflow_backend/internal/technical/repository"
	"leadflow_backend/internal/technical/transport"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	pageSize   = 20
	dateLayout = "2006-01-02"

	kindTechTask = "tech_task"
	kindTender   = "tender"
	kindTechData = "tech_data"
)

// Service provides business logic for technical tasks and tenders.
type Service struct {
	repo repository.Repository
	bus  events.Publisher
	log  *logger.Logger
	now  func() time.Time
}

func New(repo repository.Repository, bus events.Publisher, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log, now: time.Now}
}

func (s *Service) CreateTask(ctx context.Context, req transport.CreateTechTaskRequest) (records.TechTask, error) {
	date, err := s.dayOrToday("date", req.Date)
	if err != nil {
		return records.TechTask{}, err
	}
	deadline, err := optionalDay("deadline", req.Deadline)
	if err != nil {
		return records.TechTask{}, err
	}
	company := sanitize.Line(req.CompanyName)
	if company == "" {
		return records.TechTask{}, apperr.Validation("company_name is required")
	}
	status := sanitize.Line(req.Status)
	if status == "" {
		status = records.DefaultTechTaskStatus
	}
	if !records.ValidTechTaskStatus(status) {
		return records.TechTask{}, apperr.Validation("status must be Pending, In Progress or Done")
	}

	task, err := s.repo.CreateTask(ctx, records.TechTask{
		ID:          uuid.New(),
		Date:        date,
		CompanyName: company,
		ClientName:  sanitize.Line(req.ClientName),
		ClientID:    sanitize.Line(req.ClientID),
		GemID:       strings.TrimSpace(req.GemID),
		GemPassword: req.GemPassword,
		TaskName:    sanitize.Text(req.TaskName),
		Priority:    req.Priority.OrDefault(),
		Deadline:    deadline,
		Status:      status,
	})
	if err != nil {
		return records.TechTask{}, apperr.AsUpstream("failed to create technical task", err)
	}

	s.changed(ctx, kindTechTask, task.ID, events.ActionCreated)
	return task, nil
}

// SetTaskStatus moves a technical task to Pending, In Progress or Done.
func (s *Service) SetTaskStatus(ctx context.Context, id uuid.UUID, req transport.TaskStatusRequest) (records.TechTask, error) {
	status := sanitize.Line(req.Status)
	if !records.ValidTechTaskStatus(status) {
		return records.TechTask{}, apperr.Validation("status must be Pending, In Progress or Done")
	}
	task, err := s.repo.UpdateTaskStatus(ctx, id, status)
	if err != nil {
		return records.TechTask{}, apperr.AsUpstream("failed to update technical task", err)
	}
	s.changed(ctx, kindTechTask, task.ID, events.ActionUpdated)
	return task, nil
}

func (s *Service) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return apperr.AsUpstream("failed to delete technical task", err)
	}
	s.changed(ctx, kindTechTask, id, events.ActionDeleted)
	return nil
}

func (s *Service) ListTasks(ctx context.Context, req transport.ListRequest) (transport.TechTaskListResponse, error) {
	page, params := listParams(req)
	items, total, err := s.repo.ListTasks(ctx, params)
	if err != nil {
		return transport.TechTaskListResponse{}, apperr.AsUpstream("failed to list technical tasks", err)
	}
	return transport.TechTaskListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

func (s *Service) CreateTender(ctx context.Context, req transport.CreateTenderRequest) (records.Tender, error) {
	date, err := s.dayOrToday("date", req.Date)
	if err != nil {
		return records.Tender{}, err
	}
	start, err := optionalDay("start_date", req.StartDate)
	if err != nil {
		return records.Tender{}, err
	}
	end, err := optionalDay("end_date", req.EndDate)
	if err != nil {
		return records.Tender{}, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return records.Tender{}, apperr.Validation("end_date must not be before start_date")
	}

	company := sanitize.Line(req.Company)
	bidNo := sanitize.Line(req.BidNo)
	if company == "" || bidNo == "" {
		return records.Tender{}, apperr.Validation("company and bid_no are required")
	}
	status := sanitize.Line(req.Status)
	if status == "" {
		status = records.DefaultTenderStatus
	}

	tender, err := s.repo.CreateTender(ctx, records.Tender{
		ID:        uuid.New(),
		Date:      date,
		Company:   company,
		BidNo:     bidNo,
		Item:      sanitize.Line(req.Item),
		StartDate: start,
		EndDate:   end,
		Status:    status,
	})
	if err != nil {
		return records.Tender{}, apperr.AsUpstream("failed to create tender", err)
	}

	s.changed(ctx, kindTender, tender.ID, events.ActionCreated)
	return tender, nil
}

func (s *Service) DeleteTender(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteTender(ctx, id); err != nil {
		return apperr.AsUpstream("failed to delete tender", err)
	}
	s.changed(ctx, kindTender, id, events.ActionDeleted)
	return nil
}

func (s *Service) ListTenders(ctx context.Context, req transport.ListRequest) (transport.TenderListResponse, error) {
	page, params := listParams(req)
	items, total, err := s.repo.ListTenders(ctx, params)
	if err != nil {
		return transport.TenderListResponse{}, apperr.AsUpstream("failed to list tenders", err)
	}
	return transport.TenderListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

func (s *Service) changed(ctx context.Context, kind string, id uuid.UUID, action string) {
	s.log.Info("technical record changed", "kind", kind, "id", id, "action", action)
	s.bus.Publish(ctx, events.TechnicalChanged{BaseEvent: events.NewBaseEvent(), Kind: kind, ID: id, Action: action})
}

func listParams(req transport.ListRequest) (int, repository.ListParams) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	return page, repository.ListParams{
		Search: strings.TrimSpace(req.Search),
		Status: strings.TrimSpace(req.Status),
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}
}

func (s *Service) dayOrToday(field, raw string) (time.Time, error) {
	d, err := optionalDay(field, raw)
	if err != nil {
		return time.Time{}, err
	}
	if d == nil {
		return s.now(), nil
	}
	return *d, nil
}

func optionalDay(field, raw string) (*time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, apperr.Validation(field + " must be YYYY-MM-DD")
	}
	return &t, nil
}
