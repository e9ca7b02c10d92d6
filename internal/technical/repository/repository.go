// Package repository stores technical tasks and tenders.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"leadflow_backend/internal/records"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	techTaskColumns = `id, payment_id, date, company_name, client_name, client_id, gem_id, gem_password, task_name, priority, deadline, status, created_at`
	tenderColumns   = `id, date, company, bid_no, item, start_date, end_date, status, created_at`
	techDataColumns = `id, company, machine, serial, warranty, service_due, status, created_at, updated_at`

	techTaskNotFoundMsg = "technical task not found"
	tenderNotFoundMsg   = "tender not found"
	techDataNotFoundMsg = "tech data not found"
)

// Repository defines the technical store.
type Repository interface {
	CreateTask(ctx context.Context, t records.TechTask) (records.TechTask, error)
	ListTasks(ctx context.Context, params ListParams) ([]records.TechTask, int, error)
	UpdateTaskStatus(ctx context.Context, id uuid.UUID, status string) (records.TechTask, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
	CreateTender(ctx context.Context, t records.Tender) (records.Tender, error)
	ListTenders(ctx context.Context, params ListParams) ([]records.Tender, int, error)
	DeleteTender(ctx context.Context, id uuid.UUID) error
	CreateTechData(ctx context.Context, d records.TechData) (records.TechData, error)
	GetTechData(ctx context.Context, id uuid.UUID) (records.TechData, error)
	UpdateTechData(ctx context.Context, d records.TechData) (records.TechData, error)
	ListTechData(ctx context.Context, params ListParams) ([]records.TechData, int, error)
	DeleteTechData(ctx context.Context, id uuid.UUID) error
}

// ListParams filters tasks and tenders by status and free text.
type ListParams struct {
	Search string
	Status string
	Limit  int
	Offset int
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

func scanTechTask(row pgx.Row) (records.TechTask, error) {
	var t records.TechTask
	var priority string
	err := row.Scan(
		&t.ID, &t.PaymentID, &t.Date, &t.CompanyName, &t.ClientName, &t.ClientID, &t.GemID, &t.GemPassword,
		&t.TaskName, &priority, &t.Deadline, &t.Status, &t.CreatedAt,
	)
	t.Priority = records.Priority(priority)
	return t, err
}

func scanTechData(row pgx.Row) (records.TechData, error) {
	var d records.TechData
	err := row.Scan(&d.ID, &d.Company, &d.Machine, &d.Serial, &d.Warranty, &d.ServiceDue, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func scanTender(row pgx.Row) (records.Tender, error) {
	var t records.Tender
	err := row.Scan(&t.ID, &t.Date, &t.Company, &t.BidNo, &t.Item, &t.StartDate, &t.EndDate, &t.Status, &t.CreatedAt)
	return t, err
}

// CreateTask inserts a technical task. A second task for the same payment
// is a conflict.
func (r *Repo) CreateTask(ctx context.Context, t records.TechTask) (records.TechTask, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	created, err := scanTechTask(r.db.QueryRow(ctx, `
		INSERT INTO tech_tasks (id, payment_id, date, company_name, client_name, client_id, gem_id, gem_password, task_name, priority, deadline, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+techTaskColumns,
		t.ID, t.PaymentID, t.Date, t.CompanyName, t.ClientName, t.ClientID, t.GemID, t.GemPassword,
		t.TaskName, string(t.Priority), t.Deadline, t.Status,
	))
	if db.IsUniqueViolation(err) {
		return records.TechTask{}, apperr.Conflict("payment already handed over")
	}
	if err != nil {
		return records.TechTask{}, fmt.Errorf("insert tech task: %w", err)
	}
	return created, nil
}

func (r *Repo) ListTasks(ctx context.Context, params ListParams) ([]records.TechTask, int, error) {
	where, args, argIdx := listWhere(params, "company_name", "task_name")

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM tech_tasks WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tech tasks: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM tech_tasks WHERE %s
		ORDER BY date DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, techTaskColumns, where, argIdx, argIdx+1), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tech tasks: %w", err)
	}
	defer rows.Close()

	items := make([]records.TechTask, 0)
	for rows.Next() {
		t, err := scanTechTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan tech task: %w", err)
		}
		items = append(items, t)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}
	return items, total, nil
}

// UpdateTaskStatus sets the status of one technical task.
func (r *Repo) UpdateTaskStatus(ctx context.Context, id uuid.UUID, status string) (records.TechTask, error) {
	t, err := scanTechTask(r.db.QueryRow(ctx, `
		UPDATE tech_tasks SET status = $2 WHERE id = $1
		RETURNING `+techTaskColumns, id, status))
	if errors.Is(err, pgx.ErrNoRows) {
		return records.TechTask{}, apperr.NotFound(techTaskNotFoundMsg)
	}
	if err != nil {
		return records.TechTask{}, fmt.Errorf("update tech task status: %w", err)
	}
	return t, nil
}

func (r *Repo) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "tech_tasks", id, techTaskNotFoundMsg)
}

func (r *Repo) DeleteTender(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "tenders", id, tenderNotFoundMsg)
}

func (r *Repo) DeleteTechData(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "tech_data", id, techDataNotFoundMsg)
}

func (r *Repo) deleteByID(ctx context.Context, table string, id uuid.UUID, notFound string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(notFound)
	}
	return nil
}

func (r *Repo) CreateTechData(ctx context.Context, d records.TechData) (records.TechData, error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	created, err := scanTechData(r.db.QueryRow(ctx, `
		INSERT INTO tech_data (id, company, machine, serial, warranty, service_due, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+techDataColumns,
		d.ID, d.Company, d.Machine, d.Serial, d.Warranty, d.ServiceDue, d.Status,
	))
	if err != nil {
		return records.TechData{}, fmt.Errorf("insert tech data: %w", err)
	}
	return created, nil
}

func (r *Repo) GetTechData(ctx context.Context, id uuid.UUID) (records.TechData, error) {
	d, err := scanTechData(r.db.QueryRow(ctx, `SELECT `+techDataColumns+` FROM tech_data WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return records.TechData{}, apperr.NotFound(techDataNotFoundMsg)
	}
	if err != nil {
		return records.TechData{}, fmt.Errorf("get tech data: %w", err)
	}
	return d, nil
}

// UpdateTechData overwrites every writable column of d.
func (r *Repo) UpdateTechData(ctx context.Context, d records.TechData) (records.TechData, error) {
	updated, err := scanTechData(r.db.QueryRow(ctx, `
		UPDATE tech_data SET
			company = $2, machine = $3, serial = $4, warranty = $5, service_due = $6, status = $7,
			updated_at = now()
		WHERE id = $1
		RETURNING `+techDataColumns,
		d.ID, d.Company, d.Machine, d.Serial, d.Warranty, d.ServiceDue, d.Status,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return records.TechData{}, apperr.NotFound(techDataNotFoundMsg)
	}
	if err != nil {
		return records.TechData{}, fmt.Errorf("update tech data: %w", err)
	}
	return updated, nil
}

func (r *Repo) ListTechData(ctx context.Context, params ListParams) ([]records.TechData, int, error) {
	where, args, argIdx := listWhere(params, "company", "machine", "serial")

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM tech_data WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tech data: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM tech_data WHERE %s
		ORDER BY service_due ASC NULLS LAST, created_at DESC
		LIMIT $%d OFFSET $%d
	`, techDataColumns, where, argIdx, argIdx+1), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tech data: %w", err)
	}
	defer rows.Close()

	items := make([]records.TechData, 0)
	for rows.Next() {
		d, err := scanTechData(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan tech data: %w", err)
		}
		items = append(items, d)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}
	return items, total, nil
}

func (r *Repo) CreateTender(ctx context.Context, t records.Tender) (records.Tender, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	created, err := scanTender(r.db.QueryRow(ctx, `
		INSERT INTO tenders (id, date, company, bid_no, item, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+tenderColumns,
		t.ID, t.Date, t.Company, t.BidNo, t.Item, t.StartDate, t.EndDate, t.Status,
	))
	if err != nil {
		return records.Tender{}, fmt.Errorf("insert tender: %w", err)
	}
	return created, nil
}

func (r *Repo) ListTenders(ctx context.Context, params ListParams) ([]records.Tender, int, error) {
	where, args, argIdx := listWhere(params, "company", "bid_no", "item")

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM tenders WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tenders: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM tenders WHERE %s
		ORDER BY end_date ASC NULLS LAST, created_at DESC
		LIMIT $%d OFFSET $%d
	`, tenderColumns, where, argIdx, argIdx+1), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tenders: %w", err)
	}
	defer rows.Close()

	items := make([]records.Tender, 0)
	for rows.Next() {
		t, err := scanTender(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan tender: %w", err)
		}
		items = append(items, t)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}
	return items, total, nil
}

func listWhere(params ListParams, searchColumns ...string) (string, []interface{}, int) {
	clauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if search := strings.TrimSpace(params.Search); search != "" && len(searchColumns) > 0 {
		parts := make([]string, 0, len(searchColumns))
		for _, col := range searchColumns {
			parts = append(parts, fmt.Sprintf("%s ILIKE $%d", col, argIdx))
		}
		clauses = append(clauses, "("+strings.Join(parts, " OR ")+")")
		args = append(args, "%"+search+"%")
		argIdx++
	}
	if status := strings.TrimSpace(params.Status); status != "" {
		clauses = append(clauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, status)
		argIdx++
	}
	return strings.Join(clauses, " AND "), args, argIdx
}
