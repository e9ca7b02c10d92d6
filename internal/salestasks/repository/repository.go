// Package repository stores follow-up tasks.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"leadflow_backend/internal/records"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const taskNotFoundMsg = "sales task not found"

const taskColumns = `id, lead_name, company, contact, task_type, date, next_follow_up, priority, remarks, status, follow_up_count, created_at, updated_at`

// Repository defines the follow-up task store.
type Repository interface {
	Create(ctx context.Context, task records.FollowUpTask) (records.FollowUpTask, error)
	GetByID(ctx context.Context, id uuid.UUID) (records.FollowUpTask, error)
	List(ctx context.Context, params ListParams) ([]records.FollowUpTask, int, error)
	RecordFollowUp(ctx context.Context, id uuid.UUID, params FollowUpParams) (records.FollowUpTask, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DueForReminder(ctx context.Context, day time.Time, limit int) ([]records.FollowUpTask, error)
	MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) error
}

// ListParams filters the task list. Nil pointers disable a filter.
type ListParams struct {
	Search   string
	Status   *records.TaskStatus
	DueUntil *time.Time
	Limit    int
	Offset   int
}

// FollowUpParams is one follow-up round. Nil fields keep the stored value.
type FollowUpParams struct {
	NextFollowUp *time.Time
	Status       *records.TaskStatus
	Priority     *records.Priority
	Remarks      *string
}

// Repo is the Postgres implementation.
type Repo struct {
	db db.DBTX
}

// New returns a repository bound to conn.
func New(conn db.DBTX) *Repo {
	return &Repo{db: conn}
}

var _ Repository = (*Repo)(nil)

func scanTask(row pgx.Row) (records.FollowUpTask, error) {
	var t records.FollowUpTask
	var priority, status string
	err := row.Scan(
		&t.ID, &t.LeadName, &t.Company, &t.Contact, &t.TaskType, &t.Date, &t.NextFollowUp,
		&priority, &t.Remarks, &status, &t.FollowUpCount, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return records.FollowUpTask{}, err
	}
	t.Priority = records.Priority(priority)
	t.Status = records.TaskStatus(status)
	return t, nil
}

func (r *Repo) Create(ctx context.Context, task records.FollowUpTask) (records.FollowUpTask, error) {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	created, err := scanTask(r.db.QueryRow(ctx, `
		INSERT INTO sales_tasks (id, lead_name, company, contact, task_type, date, next_follow_up, priority, remarks, status, follow_up_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+taskColumns,
		task.ID, task.LeadName, task.Company, task.Contact, task.TaskType, task.Date, task.NextFollowUp,
		string(task.Priority), task.Remarks, string(task.Status), task.FollowUpCount,
	))
	if err != nil {
		return records.FollowUpTask{}, fmt.Errorf("insert sales task: %w", err)
	}
	return created, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (records.FollowUpTask, error) {
	t, err := scanTask(r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM sales_tasks WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return records.FollowUpTask{}, apperr.NotFound(taskNotFoundMsg)
	}
	if err != nil {
		return records.FollowUpTask{}, fmt.Errorf("get sales task: %w", err)
	}
	return t, nil
}

// RecordFollowUp applies one follow-up round. The counter is incremented
// in the same statement, so concurrent rounds never share a value.
func (r *Repo) RecordFollowUp(ctx context.Context, id uuid.UUID, params FollowUpParams) (records.FollowUpTask, error) {
	var status, priority *string
	if params.Status != nil {
		s := string(*params.Status)
		status = &s
	}
	if params.Priority != nil {
		p := string(*params.Priority)
		priority = &p
	}

	t, err := scanTask(r.db.QueryRow(ctx, `
		UPDATE sales_tasks SET
			next_follow_up = COALESCE($2, next_follow_up),
			status = COALESCE($3, status),
			priority = COALESCE($4, priority),
			remarks = COALESCE($5, remarks),
			follow_up_count = follow_up_count + 1,
			last_reminded_at = CASE WHEN $2::date IS NULL THEN last_reminded_at ELSE NULL END,
			updated_at = now()
		WHERE id = $1
		RETURNING `+taskColumns,
		id, params.NextFollowUp, status, priority, params.Remarks,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return records.FollowUpTask{}, apperr.NotFound(taskNotFoundMsg)
	}
	if err != nil {
		return records.FollowUpTask{}, fmt.Errorf("record follow-up: %w", err)
	}
	return t, nil
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM sales_tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sales task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(taskNotFoundMsg)
	}
	return nil
}

func (r *Repo) List(ctx context.Context, params ListParams) ([]records.FollowUpTask, int, error) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if search := strings.TrimSpace(params.Search); search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(lead_name ILIKE $%d OR company ILIKE $%d OR contact ILIKE $%d)", argIdx, argIdx, argIdx,
		))
		args = append(args, "%"+search+"%")
		argIdx++
	}
	if params.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, string(*params.Status))
		argIdx++
	}
	if params.DueUntil != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("next_follow_up <= $%d", argIdx))
		args = append(args, *params.DueUntil)
		argIdx++
	}
	where := strings.Join(whereClauses, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM sales_tasks WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales tasks: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM sales_tasks
		WHERE %s
		ORDER BY next_follow_up ASC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, taskColumns, where, argIdx, argIdx+1), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales tasks: %w", err)
	}
	defer rows.Close()

	tasks, err := collectTasks(rows)
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// DueForReminder returns open tasks due on or before day that have not been
// reminded on that day yet.
func (r *Repo) DueForReminder(ctx context.Context, day time.Time, limit int) ([]records.FollowUpTask, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+taskColumns+` FROM sales_tasks
		WHERE next_follow_up <= $1::date
			AND status <> 'Done'
			AND (last_reminded_at IS NULL OR last_reminded_at::date < $1::date)
		ORDER BY next_follow_up ASC
		LIMIT $2
	`, day, limit)
	if err != nil {
		return nil, fmt.Errorf("list due sales tasks: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *Repo) MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) error {
	if _, err := r.db.Exec(ctx, `UPDATE sales_tasks SET last_reminded_at = $2 WHERE id = $1`, id, at); err != nil {
		return fmt.Errorf("mark sales task reminded: %w", err)
	}
	return nil
}

func collectTasks(rows pgx.Rows) ([]records.FollowUpTask, error) {
	tasks := make([]records.FollowUpTask, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sales task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return tasks, nil
}
