// Package service implements the follow-up task list.
package service

import (
	"context"
	"strings"
	"time"

	"leadflow_backend/internal/events"
	"leadflow_backend/internal/records"
	"leadflow_backend/internal/salestasks/repository"
	"leadflow_backend/internal/salestasks/transport"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/phone"
	"leadflow_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	pageSize   = 20
	dateLayout = "2006-01-02"
)

// Service provides business logic for sales tasks.
type Service struct {
	repo repository.Repository
	bus  events.Publisher
	log  *logger.Logger
	now  func() time.Time
}

// New creates a sales task service.
func New(repo repository.Repository, bus events.Publisher, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log, now: time.Now}
}

// Create adds a task outside the lead lifecycle. The count starts at zero.
func (s *Service) Create(ctx context.Context, req transport.CreateTaskRequest) (records.FollowUpTask, error) {
	next, err := parseDay("next_follow_up", req.NextFollowUp)
	if err != nil {
		return records.FollowUpTask{}, err
	}
	date := s.now()
	if strings.TrimSpace(req.Date) != "" {
		if date, err = parseDay("date", req.Date); err != nil {
			return records.FollowUpTask{}, err
		}
	}

	company := sanitize.Line(req.Company)
	if company == "" {
		return records.FollowUpTask{}, apperr.Validation("company is required")
	}
	taskType := sanitize.Line(req.TaskType)
	if taskType == "" {
		taskType = records.TaskTypeFollowUp
	}
	status := req.Status
	if status == "" {
		status = records.TaskPending
	}

	task, err := s.repo.Create(ctx, records.FollowUpTask{
		ID:           uuid.New(),
		LeadName:     sanitize.Line(req.LeadName),
		Company:      company,
		Contact:      phone.Digits(req.Contact),
		TaskType:     taskType,
		Date:         date,
		NextFollowUp: next,
		Priority:     req.Priority.OrDefault(),
		Remarks:      sanitize.Text(req.Remarks),
		Status:       status,
	})
	if err != nil {
		return records.FollowUpTask{}, apperr.AsUpstream("failed to create sales task", err)
	}

	s.changed(ctx, task.ID, events.ActionCreated)
	return task, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (records.FollowUpTask, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return records.FollowUpTask{}, apperr.AsUpstream("failed to load sales task", err)
	}
	return task, nil
}

func (s *Service) List(ctx context.Context, req transport.ListTasksRequest) (transport.TaskListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}

	params := repository.ListParams{
		Search: strings.TrimSpace(req.Search),
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}
	if req.Status != "" {
		status := records.TaskStatus(req.Status)
		params.Status = &status
	}
	if req.Due == "today" {
		today := s.now()
		params.DueUntil = &today
	}

	items, total, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.TaskListResponse{}, apperr.AsUpstream("failed to list sales tasks", err)
	}

	return transport.TaskListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

// RecordFollowUp applies one follow-up round and bumps the count by one.
func (s *Service) RecordFollowUp(ctx context.Context, id uuid.UUID, req transport.FollowUpUpdateRequest) (records.FollowUpTask, error) {
	params := repository.FollowUpParams{
		Status:   req.Status,
		Priority: req.Priority,
	}
	if req.NextFollowUp != nil {
		next, err := parseDay("next_follow_up", *req.NextFollowUp)
		if err != nil {
			return records.FollowUpTask{}, err
		}
		params.NextFollowUp = &next
	}
	if req.Remarks != nil {
		remarks := sanitize.Text(*req.Remarks)
		params.Remarks = &remarks
	}

	task, err := s.repo.RecordFollowUp(ctx, id, params)
	if err != nil {
		return records.FollowUpTask{}, apperr.AsUpstream("failed to update sales task", err)
	}

	s.log.Info("follow-up recorded", "id", task.ID, "count", task.FollowUpCount, "status", task.Status)
	s.changed(ctx, task.ID, events.ActionUpdated)
	return task, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.AsUpstream("failed to delete sales task", err)
	}
	s.changed(ctx, id, events.ActionDeleted)
	return nil
}

func (s *Service) changed(ctx context.Context, id uuid.UUID, action string) {
	s.bus.Publish(ctx, events.SalesTaskChanged{
		BaseEvent: events.NewBaseEvent(),
		TaskID:    id,
		Action:    action,
	})
}

func parseDay(field, raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, apperr.Validation(field + " is required")
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperr.Validation(field + " must be YYYY-MM-DD")
	}
	return t, nil
}
