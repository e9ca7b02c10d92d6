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

const leadNotFoundMsg = "lead not found"

const leadColumns = `id, date, sno, company, name, contact, email, address, note, purpose, status, created_at, updated_at`

// copyColumns is the column order used by BulkCreate.
var copyColumns = []string{"id", "date", "sno", "company", "name", "contact", "email", "address", "note", "purpose", "status"}

// Repository stores leads in Postgres. It runs against either the pool or a
// transaction.
type Repository struct {
	db db.DBTX
}

// New returns a repository bound to conn.
func New(conn db.DBTX) *Repository {
	return &Repository{db: conn}
}

func scanLead(row pgx.Row) (records.Lead, error) {
	var lead records.Lead
	var status string
	err := row.Scan(
		&lead.ID, &lead.Date, &lead.Sno, &lead.Company, &lead.Name, &lead.Contact, &lead.Email,
		&lead.Address, &lead.Note, &lead.Purpose, &status, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return records.Lead{}, err
	}
	lead.Status = records.LeadStatus(status)
	return lead, nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(leadNotFoundMsg)
	}
	return err
}

func (r *Repository) Create(ctx context.Context, params CreateParams) (records.Lead, error) {
	lead, err := scanLead(r.db.QueryRow(ctx, `
		INSERT INTO leads (id, date, sno, company, name, contact, email, address, note, purpose, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+leadColumns,
		params.ID, params.Date, params.Sno, params.Company, params.Name, params.Contact, params.Email,
		params.Address, params.Note, params.Purpose, string(params.Status),
	))
	if err != nil {
		return records.Lead{}, fmt.Errorf("insert lead: %w", err)
	}
	return lead, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (records.Lead, error) {
	lead, err := scanLead(r.db.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id))
	if err != nil {
		return records.Lead{}, notFound(err)
	}
	return lead, nil
}

// LockByID reads a lead with a row lock held until the surrounding
// transaction ends.
func (r *Repository) LockByID(ctx context.Context, id uuid.UUID) (records.Lead, error) {
	lead, err := scanLead(r.db.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return records.Lead{}, notFound(err)
	}
	return lead, nil
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (records.Lead, error) {
	var status *string
	if params.Status != nil {
		s := string(*params.Status)
		status = &s
	}

	lead, err := scanLead(r.db.QueryRow(ctx, `
		UPDATE leads SET
			date = COALESCE($2, date),
			sno = COALESCE($3, sno),
			company = COALESCE($4, company),
			name = COALESCE($5, name),
			contact = COALESCE($6, contact),
			email = COALESCE($7, email),
			address = COALESCE($8, address),
			note = COALESCE($9, note),
			purpose = COALESCE($10, purpose),
			status = COALESCE($11, status),
			updated_at = now()
		WHERE id = $1
		RETURNING `+leadColumns,
		id, params.Date, params.Sno, params.Company, params.Name, params.Contact, params.Email,
		params.Address, params.Note, params.Purpose, status,
	))
	if err != nil {
		return records.Lead{}, notFound(err)
	}
	return lead, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status records.LeadStatus) (records.Lead, error) {
	lead, err := scanLead(r.db.QueryRow(ctx, `
		UPDATE leads SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+leadColumns, id, string(status)))
	if err != nil {
		return records.Lead{}, notFound(err)
	}
	return lead, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMsg)
	}
	return nil
}

func (r *Repository) BulkDelete(ctx context.Context, ids []uuid.UUID) (int, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM leads WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("bulk delete leads: %w", err)
	}
	return int(result.RowsAffected()), nil
}

// BulkCreate inserts every lead with a single COPY. It is all or nothing.
func (r *Repository) BulkCreate(ctx context.Context, leads []CreateParams) (int, error) {
	if len(leads) == 0 {
		return 0, nil
	}
	n, err := r.db.CopyFrom(ctx, pgx.Identifier{"leads"}, copyColumns,
		pgx.CopyFromSlice(len(leads), func(i int) ([]any, error) {
			p := leads[i]
			return []any{p.ID, p.Date, p.Sno, p.Company, p.Name, p.Contact, p.Email, p.Address, p.Note, p.Purpose, string(p.Status)}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy leads: %w", err)
	}
	return int(n), nil
}

func (r *Repository) List(ctx context.Context, params ListParams) ([]records.Lead, int, error) {
	whereClause, args, argIdx := buildListWhere(params)

	var total int
	countQuery := "SELECT COUNT(*) FROM leads WHERE " + whereClause
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s FROM leads
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, leadColumns, whereClause, argIdx, argIdx+1)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]records.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}

	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}

	return leads, total, nil
}

func buildListWhere(params ListParams) (string, []interface{}, int) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if search := strings.TrimSpace(params.Search); search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(company ILIKE $%d OR name ILIKE $%d OR contact ILIKE $%d)", argIdx, argIdx, argIdx,
		))
		args = append(args, "%"+escapeLike(search)+"%")
		argIdx++
	}
	if params.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, string(*params.Status))
		argIdx++
	}
	if params.DateAfter != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, *params.DateAfter)
		argIdx++
	}

	return strings.Join(whereClauses, " AND "), args, argIdx
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
