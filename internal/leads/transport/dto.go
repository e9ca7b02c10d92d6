// Package transport holds the request and response shapes of the leads API.
package transport

import (
	"time"

	"leadflow_backend/internal/records"

	"github.com/google/uuid"
)

// CreateLeadRequest is the manual entry payload. Bulk rows use the same
// shape (records.LeadInput).
type CreateLeadRequest = records.LeadInput

// UpdateLeadRequest is a partial edit. A status here is an administrative
// override.
type UpdateLeadRequest struct {
	Date    *time.Time          `json:"date,omitempty"`
	Sno     *string             `json:"sno,omitempty" validate:"omitempty,max=50"`
	Company *string             `json:"company,omitempty" validate:"omitempty,min=1,max=200"`
	Name    *string             `json:"name,omitempty" validate:"omitempty,max=100"`
	Contact *string             `json:"contact,omitempty" validate:"omitempty,max=32"`
	Email   *string             `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Address *string             `json:"address,omitempty"`
	Note    *string             `json:"note,omitempty"`
	Purpose *string             `json:"purpose,omitempty" validate:"omitempty,max=200"`
	Status  *records.LeadStatus `json:"status,omitempty" validate:"omitempty,leadstatus"`
}

// ListLeadsRequest carries the Query Façade filters.
// DateAfter accepts YYYY-MM-DD or RFC 3339.
type ListLeadsRequest struct {
	Page      int    `form:"page" validate:"omitempty,min=1"`
	Search    string `form:"search" validate:"max=100"`
	Status    string `form:"status" validate:"max=20"`
	DateAfter string `form:"date_after" validate:"max=40"`
}

type LeadResponse struct {
	ID        uuid.UUID          `json:"id"`
	Date      time.Time          `json:"date"`
	Sno       string             `json:"sno"`
	Company   string             `json:"company"`
	Name      string             `json:"name"`
	Contact   string             `json:"contact"`
	Email     string             `json:"email"`
	Address   string             `json:"address"`
	Note      string             `json:"note"`
	Purpose   string             `json:"purpose"`
	Status    records.LeadStatus `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type LeadListResponse struct {
	Items      []LeadResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

// RowError reports one rejected bulk row by its position in the batch.
type RowError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type BulkImportResponse struct {
	CreatedCount int        `json:"created_count"`
	PerRowErrors []RowError `json:"per_row_errors"`
}

// ImportFileResponse is the CSV upload result. Row indices refer to data
// rows of the file, zero-based, header excluded.
type ImportFileResponse struct {
	BulkImportResponse
	Skipped int               `json:"skipped"`
	Intent  string            `json:"intent"`
	Columns map[string]string `json:"columns"`
}

type BulkDeleteRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1,max=1000"`
}

type BulkDeleteResponse struct {
	DeletedCount int `json:"deleted_count"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// FollowUpRequest sends a lead to the sales tasks. NextFollowUp is YYYY-MM-DD.
type FollowUpRequest struct {
	NextFollowUp string           `json:"next_follow_up"`
	Priority     records.Priority `json:"priority" validate:"omitempty,priority"`
	Remarks      string           `json:"remarks" validate:"max=2000"`
}

type FollowUpResponse struct {
	Lead LeadResponse          `json:"lead"`
	Task records.FollowUpTask `json:"task"`
}

// ConvertRequest carries the payment details of a conversion. Remaining is
// accepted for compatibility and always recomputed.
type ConvertRequest struct {
	SoNo      string          `json:"so_no" validate:"max=100"`
	Amount    records.Amount  `json:"amount"`
	Advance   records.Amount  `json:"advance"`
	Remaining *records.Amount `json:"remaining,omitempty"`
	Invoice   string          `json:"invoice" validate:"max=100"`
	Remark    string          `json:"remark" validate:"max=2000"`
}

type ConvertResponse struct {
	Lead    LeadResponse    `json:"lead"`
	Payment records.Payment `json:"payment"`
}
