// Package transport holds the request and response shapes of the payments API.
package transport

import (
	"time"

	"leadflow_backend/internal/records"
)

// CreatePaymentRequest records a manual payment. Remaining is accepted for
// compatibility and always recomputed.
type CreatePaymentRequest struct {
	Date      *time.Time      `json:"date,omitempty"`
	Company   string          `json:"company" validate:"required,max=200"`
	SoNo      string          `json:"so_no" validate:"max=100"`
	Amount    records.Amount  `json:"amount"`
	Advance   records.Amount  `json:"advance"`
	Remaining *records.Amount `json:"remaining,omitempty"`
	Invoice   string          `json:"invoice" validate:"max=100"`
	Remark    string          `json:"remark" validate:"max=2000"`
}

// UpdatePaymentRequest is a partial edit. Changing amount or advance
// recomputes remaining from the merged values.
type UpdatePaymentRequest struct {
	Date      *time.Time      `json:"date,omitempty"`
	Company   *string         `json:"company,omitempty" validate:"omitempty,min=1,max=200"`
	SoNo      *string         `json:"so_no,omitempty" validate:"omitempty,max=100"`
	Amount    *records.Amount `json:"amount,omitempty"`
	Advance   *records.Amount `json:"advance,omitempty"`
	Remaining *records.Amount `json:"remaining,omitempty"`
	Invoice   *string         `json:"invoice,omitempty" validate:"omitempty,max=100"`
	Remark    *string         `json:"remark,omitempty" validate:"omitempty,max=2000"`
}

type ListPaymentsRequest struct {
	Page   int    `form:"page" validate:"omitempty,min=1"`
	Search string `form:"search" validate:"max=100"`
}

type PaymentListResponse struct {
	Items      []records.Payment `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// GoThruRequest carries the handover details. Deadline is YYYY-MM-DD.
type GoThruRequest struct {
	ClientName  string           `json:"client_name" validate:"max=100"`
	ClientID    string           `json:"client_id" validate:"max=100"`
	GemID       string           `json:"gem_id" validate:"max=100"`
	GemPassword string           `json:"gem_password" validate:"max=100"`
	TaskName    string           `json:"task_name" validate:"max=500"`
	Priority    records.Priority `json:"priority" validate:"omitempty,priority"`
	Deadline    string           `json:"deadline" validate:"max=10"`
}

type GoThruResponse struct {
	Message string           `json:"message"`
	Task    records.TechTask `json:"task"`
}

type ReceiptURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}
