// Package repository stores customers.
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
	customerColumns     = `id, date, sno, company, name, contact, email, purpose, status, remarks, created_at, updated_at`
	customerNotFoundMsg = "customer not found"
)

// Repository defines the customer store.
type Repository interface {
	Create(ctx context.Context, c records.Customer) (records.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (records.Customer, error)
	Update(ctx context.Context, c records.Customer) (records.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params ListParams) ([]records.Customer, int, error)
}

// ListParams filters customers by status and free text.
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

func New(conn db.DBTX) *Repo {
	return &Repo{db: conn}
}

var _ Repository = (*Repo)(nil)

func scanCustomer(row pgx.Row) (records.Customer, error) {
	var c records.Customer
	err := row.Scan(&c.ID, &c.Date, &c.Sno, &c.Company, &c.Name, &c.Contact, &c.Email, &c.Purpose, &c.Status, &c.Remarks, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *Repo) Create(ctx context.Context, c records.Customer) (records.Customer, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	created, err := scanCustomer(r.db.QueryRow(ctx, `
		INSERT INTO customers (id, date, sno, company, name, contact, email, purpose, status, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+customerColumns,
		c.ID, c.Date, c.Sno, c.Company, c.Name, c.Contact, c.Email, c.Purpose, c.Status, c.Remarks,
	))
	if err != nil {
		return records.Customer{}, fmt.Errorf("insert customer: %w", err)
	}
	return created, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (records.Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return records.Customer{}, apperr.NotFound(customerNotFoundMsg)
	}
	if err != nil {
		return records.Customer{}, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// Update overwrites every writable column of c.
func (r *Repo) Update(ctx context.Context, c records.Customer) (records.Customer, error) {
	updated, err := scanCustomer(r.db.QueryRow(ctx, `
		UPDATE customers SET
			date = $2, sno = $3, company = $4, name = $5, contact = $6, email = $7,
			purpose = $8, status = $9, remarks = $10, updated_at = now()
		WHERE id = $1
		RETURNING `+customerColumns,
		c.ID, c.Date, c.Sno, c.Company, c.Name, c.Contact, c.Email, c.Purpose, c.Status, c.Remarks,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return records.Customer{}, apperr.NotFound(customerNotFoundMsg)
	}
	if err != nil {
		return records.Customer{}, fmt.Errorf("update customer: %w", err)
	}
	return updated, nil
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(customerNotFoundMsg)
	}
	return nil
}

func (r *Repo) List(ctx context.Context, params ListParams) ([]records.Customer, int, error) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if search := strings.TrimSpace(params.Search); search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(company ILIKE $%d OR name ILIKE $%d OR contact ILIKE $%d)", argIdx, argIdx, argIdx,
		))
		args = append(args, "%"+search+"%")
		argIdx++
	}
	if status := strings.TrimSpace(params.Status); status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, status)
		argIdx++
	}
	where := strings.Join(whereClauses, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM customers WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM customers WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, customerColumns, where, argIdx, argIdx+1), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	items := make([]records.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		items = append(items, c)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}
	return items, total, nil
}
