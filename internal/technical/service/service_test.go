package service

import (
	"context"
	"testing"
	"time"

	"leadflow_backend/internal/events"
	"leadflow_backend/internal/records"
	"leadflow_backend/internal/technical/repository"
	"leadflow_backend/internal/technical/transport"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	tasks    []records.TechTask
	tenders  []records.Tender
	machines []records.TechData
	deleted  []uuid.UUID
	params   repository.ListParams
}

func (m *memRepo) UpdateTaskStatus(_ context.Context, id uuid.UUID, status string) (records.TechTask, error) {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks[i].Status = status
			return m.tasks[i], nil
		}
	}
	return records.TechTask{}, apperr.NotFound("technical task not found")
}

func (m *memRepo) DeleteTask(_ context.Context, id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *memRepo) DeleteTender(_ context.Context, id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *memRepo) CreateTechData(_ context.Context, d records.TechData) (records.TechData, error) {
	m.machines = append(m.machines, d)
	return d, nil
}

func (m *memRepo) GetTechData(_ context.Context, id uuid.UUID) (records.TechData, error) {
	for _, d := range m.machines {
		if d.ID == id {
			return d, nil
		}
	}
	return records.TechData{}, apperr.NotFound("tech data not found")
}

func (m *memRepo) UpdateTechData(_ context.Context, d records.TechData) (records.TechData, error) {
	for i := range m.machines {
		if m.machines[i].ID == d.ID {
			m.machines[i] = d
		}
	}
	return d, nil
}

func (m *memRepo) ListTechData(_ context.Context, p repository.ListParams) ([]records.TechData, int, error) {
	m.params = p
	return m.machines, len(m.machines), nil
}

func (m *memRepo) DeleteTechData(_ context.Context, id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *memRepo) CreateTask(_ context.Context, t records.TechTask) (records.TechTask, error) {
	m.tasks = append(m.tasks, t)
	return t, nil
}

func (m *memRepo) ListTasks(_ context.Context, p repository.ListParams) ([]records.TechTask, int, error) {
	m.params = p
	return m.tasks, len(m.tasks), nil
}

func (m *memRepo) CreateTender(_ context.Context, t records.Tender) (records.Tender, error) {
	m.tenders = append(m.tenders, t)
	return t, nil
}

func (m *memRepo) ListTenders(_ context.Context, p repository.ListParams) ([]records.Tender, int, error) {
	m.params = p
	return m.tenders, len(m.tenders), nil
}

type nopBus struct{ count int }

func (b *nopBus) Publish(context.Context, events.Event) { b.count++ }

func newTestService() (*Service, *memRepo, *nopBus) {
	repo := &memRepo{}
	bus := &nopBus{}
	svc := New(repo, bus, logger.Discard())
	svc.now = func() time.Time { return time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC) }
	return svc, repo, bus
}

func TestCreateTaskDefaults(t *testing.T) {
	svc, _, bus := newTestService()

	task, err := svc.CreateTask(context.Background(), transport.CreateTechTaskRequest{
		CompanyName: "Acme",
		Deadline:    "2025-04-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pending", task.Status)
	assert.Equal(t, records.PriorityMedium, task.Priority)
	require.NotNil(t, task.Deadline)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), *task.Deadline)
	assert.Nil(t, task.PaymentID)
	assert.Equal(t, 1, bus.count)
}

func TestCreateTenderValidation(t *testing.T) {
	svc, repo, _ := newTestService()

	tender, err := svc.CreateTender(context.Background(), transport.CreateTenderRequest{
		Company: "Acme", BidNo: "GEM/2025/B/1", StartDate: "2025-03-01", EndDate: "2025-03-20",
	})
	require.NoError(t, err)
	assert.Equal(t, "Draft", tender.Status)

	_, err = svc.CreateTender(context.Background(), transport.CreateTenderRequest{
		Company: "Acme", BidNo: "B2", StartDate: "2025-03-20", EndDate: "2025-03-01",
	})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.CreateTender(context.Background(), transport.CreateTenderRequest{Company: "Acme", BidNo: "B3", EndDate: "soon"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Len(t, repo.tenders, 1)
}

func TestListPassesFilters(t *testing.T) {
	svc, repo, _ := newTestService()

	resp, err := svc.ListTasks(context.Background(), transport.ListRequest{Page: 3, Search: " acme ", Status: "Pending"})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Page)
	assert.Equal(t, repository.ListParams{Search: "acme", Status: "Pending", Limit: 20, Offset: 40}, repo.params)
}

func TestSetTaskStatus(t *testing.T) {
	svc, repo, bus := newTestService()
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, transport.CreateTechTaskRequest{CompanyName: "Acme"})
	require.NoError(t, err)

	updated, err := svc.SetTaskStatus(ctx, task.ID, transport.TaskStatusRequest{Status: " In Progress "})
	require.NoError(t, err)
	assert.Equal(t, records.TechTaskInProgress, updated.Status)
	assert.Equal(t, 2, bus.count)

	_, err = svc.SetTaskStatus(ctx, task.ID, transport.TaskStatusRequest{Status: "Archived"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, records.TechTaskInProgress, repo.tasks[0].Status)

	_, err = svc.SetTaskStatus(ctx, uuid.New(), transport.TaskStatusRequest{Status: "Done"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, 2, bus.count)
}

func TestCreateTaskRejectsUnknownStatus(t *testing.T) {
	svc, repo, _ := newTestService()
	_, err := svc.CreateTask(context.Background(), transport.CreateTechTaskRequest{CompanyName: "Acme", Status: "Someday"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Empty(t, repo.tasks)
}

func TestDeletesPublishChanges(t *testing.T) {
	svc, repo, bus := newTestService()
	ctx := context.Background()
	taskID, tenderID := uuid.New(), uuid.New()

	require.NoError(t, svc.DeleteTask(ctx, taskID))
	require.NoError(t, svc.DeleteTender(ctx, tenderID))
	assert.Equal(t, []uuid.UUID{taskID, tenderID}, repo.deleted)
	assert.Equal(t, 2, bus.count)
}

func TestTechDataLifecycle(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	d, err := svc.CreateTechData(ctx, transport.TechDataRequest{
		Company: " Acme ", Machine: "CNC-5", Serial: "SN-001", Warranty: "2026-01-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", d.Company)
	assert.Equal(t, "Active", d.Status)
	require.NotNil(t, d.Warranty)
	assert.Nil(t, d.ServiceDue)

	empty, due, status := "", "2025-06-01", "Servicing"
	updated, err := svc.UpdateTechData(ctx, d.ID, transport.UpdateTechDataRequest{
		Warranty: &empty, ServiceDue: &due, Status: &status,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Warranty)
	require.NotNil(t, updated.ServiceDue)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *updated.ServiceDue)
	assert.Equal(t, "Servicing", repo.machines[0].Status)
	assert.Equal(t, "CNC-5", repo.machines[0].Machine)

	bad := "Scrapped"
	_, err = svc.UpdateTechData(ctx, d.ID, transport.UpdateTechDataRequest{Status: &bad})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.CreateTechData(ctx, transport.TechDataRequest{Company: "  "})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	_, err = svc.CreateTechData(ctx, transport.TechDataRequest{Company: "Acme", ServiceDue: "next week"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Len(t, repo.machines, 1)

	_, err = svc.UpdateTechData(ctx, uuid.New(), transport.UpdateTechDataRequest{Status: &status})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
