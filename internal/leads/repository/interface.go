package repository

import (
	"context"
	"time"

	"leadflow_backend/internal/records"

	"github.com/google/uuid"
)

// LeadReader provides read-only access to lead data.
type LeadReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (records.Lead, error)
	List(ctx context.Context, params ListParams) ([]records.Lead, int, error)
}

// LeadWriter provides write operations for lead management.
type LeadWriter interface {
	Create(ctx context.Context, params CreateParams) (records.Lead, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (records.Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
	BulkDelete(ctx context.Context, ids []uuid.UUID) (int, error)
	BulkCreate(ctx context.Context, leads []CreateParams) (int, error)
}

// StatusWriter is the narrow write path used by the lifecycle. LockByID
// must be called inside a transaction for the lock to mean anything.
type StatusWriter interface {
	LockByID(ctx context.Context, id uuid.UUID) (records.Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status records.LeadStatus) (records.Lead, error)
}

// LeadsRepository defines the complete interface for leads data operations.
type LeadsRepository interface {
	LeadReader
	LeadWriter
	StatusWriter
}

// ListParams are the Query Façade filters. Nil pointers disable a filter.
type ListParams struct {
	Search    string
	Status    *records.LeadStatus
	DateAfter *time.Time
	Limit     int
	Offset    int
}

// CreateParams is one lead ready for insertion.
type CreateParams struct {
	ID      uuid.UUID
	Date    time.Time
	Sno     string
	Company string
	Name    string
	Contact string
	Email   string
	Address string
	Note    string
	Purpose string
	Status  records.LeadStatus
}

// UpdateParams is a partial edit. Nil fields keep the stored value.
type UpdateParams struct {
	Date    *time.Time
	Sno     *string
	Company *string
	Name    *string
	Contact *string
	Email   *string
	Address *string
	Note    *string
	Purpose *string
	Status  *records.LeadStatus
}

// Ensure Repository implements LeadsRepository
var _ LeadsRepository = (*Repository)(nil)
