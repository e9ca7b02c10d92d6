// Package repository stores payments. Money columns are NUMERIC and cross
// the driver boundary as text so no value passes through float64.
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

const paymentNotFoundMsg = "payment not found"

const paymentColumns = `id, date, company, so_no, amount::text, advance::text, remaining::text, invoice, remark, receipt_key, created_at, updated_at`

// Repository defines the payment store.
type Repository interface {
	Create(ctx context.Context, p records.Payment) (records.Payment, error)
	GetByID(ctx context.Context, id uuid.UUID) (records.Payment, error)
	LockByID(ctx context.Context, id uuid.UUID) (records.Payment, error)
	List(ctx context.Context, params ListParams) ([]records.Payment, int, error)
	Update(ctx context.Context, p records.Payment) (records.Payment, error)
	SetReceipt(ctx context.Context, id uuid.UUID, key string) (records.Payment, error)
	Delete(ctx context.Context, id uuid.UUID) (records.Payment, error)
}

// ListParams filters the payment list.
type ListParams struct {
	Search string
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

func scanPayment(row pgx.Row) (records.Payment, error) {
	var p records.Payment
	var amount, advance, remaining string
	err := row.Scan(
		&p.ID, &p.Date, &p.Company, &p.SoNo, &amount, &advance, &remaining,
		&p.Invoice, &p.Remark, &p.ReceiptKey, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return records.Payment{}, err
	}
	if p.Amount, err = records.AmountFromString(amount); err != nil {
		return records.Payment{}, err
	}
	if p.Advance, err = records.AmountFromString(advance); err != nil {
		return records.Payment{}, err
	}
	if p.Remaining, err = records.AmountFromString(remaining); err != nil {
		return records.Payment{}, err
	}
	return p, nil
}

func lookupErr(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(paymentNotFoundMsg)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *Repo) Create(ctx context.Context, p records.Payment) (records.Payment, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	created, err := scanPayment(r.db.QueryRow(ctx, `
		INSERT INTO payments (id, date, company, so_no, amount, advance, remaining, invoice, remark, receipt_key)
		VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7::numeric, $8, $9, $10)
		RETURNING `+paymentColumns,
		p.ID, p.Date, p.Company, p.SoNo, p.Amount.String(), p.Advance.String(), p.Remaining.String(),
		p.Invoice, p.Remark, p.ReceiptKey,
	))
	if err != nil {
		return records.Payment{}, fmt.Errorf("insert payment: %w", err)
	}
	return created, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (records.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err != nil {
		return records.Payment{}, lookupErr(err, "get payment")
	}
	return p, nil
}

// LockByID reads a payment with a row lock held until the surrounding
// transaction ends.
func (r *Repo) LockByID(ctx context.Context, id uuid.UUID) (records.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return records.Payment{}, lookupErr(err, "lock payment")
	}
	return p, nil
}

// Update writes every editable column of p. Callers derive Remaining first.
func (r *Repo) Update(ctx context.Context, p records.Payment) (records.Payment, error) {
	updated, err := scanPayment(r.db.QueryRow(ctx, `
		UPDATE payments SET
			date = $2, company = $3, so_no = $4,
			amount = $5::numeric, advance = $6::numeric, remaining = $7::numeric,
			invoice = $8, remark = $9, updated_at = now()
		WHERE id = $1
		RETURNING `+paymentColumns,
		p.ID, p.Date, p.Company, p.SoNo, p.Amount.String(), p.Advance.String(), p.Remaining.String(),
		p.Invoice, p.Remark,
	))
	if err != nil {
		return records.Payment{}, lookupErr(err, "update payment")
	}
	return updated, nil
}

func (r *Repo) SetReceipt(ctx context.Context, id uuid.UUID, key string) (records.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx, `
		UPDATE payments SET receipt_key = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+paymentColumns, id, key))
	if err != nil {
		return records.Payment{}, lookupErr(err, "set payment receipt")
	}
	return p, nil
}

// Delete removes the payment and returns the deleted row so callers can
// clean up its receipt.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (records.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx, `DELETE FROM payments WHERE id = $1 RETURNING `+paymentColumns, id))
	if err != nil {
		return records.Payment{}, lookupErr(err, "delete payment")
	}
	return p, nil
}

func (r *Repo) List(ctx context.Context, params ListParams) ([]records.Payment, int, error) {
	where := "TRUE"
	args := []interface{}{}
	argIdx := 1
	if search := strings.TrimSpace(params.Search); search != "" {
		where = fmt.Sprintf("(company ILIKE $%d OR so_no ILIKE $%d OR invoice ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+search+"%")
		argIdx++
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM payments WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM payments
		WHERE %s
		ORDER BY date DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, paymentColumns, where, argIdx, argIdx+1), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	payments := make([]records.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}
	return payments, total, nil
}
