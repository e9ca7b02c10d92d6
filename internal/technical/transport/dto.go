// Package transport holds the request and response shapes of the technical
// tasks and tenders API.
package transport

import "leadflow_backend/internal/records"

// CreateTechTaskRequest adds a technical task directly. Dates are YYYY-MM-DD.
type CreateTechTaskRequest struct {
	Date        string           `json:"date" validate:"max=10"`
	CompanyName string           `json:"company_name" validate:"required,max=200"`
	ClientName  string           `json:"client_name" validate:"max=100"`
	ClientID    string           `json:"client_id" validate:"max=100"`
	GemID       string           `json:"gem_id" validate:"max=100"`
	GemPassword string           `json:"gem_password" validate:"max=100"`
	TaskName    string           `json:"task_name" validate:"max=500"`
	Priority    records.Priority `json:"priority" validate:"omitempty,priority"`
	Deadline    string           `json:"deadline" validate:"max=10"`
	Status      string           `json:"status" validate:"max=20"`
}

type CreateTenderRequest struct {
	Date      string `json:"date" validate:"max=10"`
	Company   string `json:"company" validate:"required,max=200"`
	BidNo     string `json:"bid_no" validate:"required,max=100"`
	Item      string `json:"item" validate:"max=200"`
	StartDate string `json:"start_date" validate:"max=10"`
	EndDate   string `json:"end_date" validate:"max=10"`
	Status    string `json:"status" validate:"max=20"`
}

// TaskStatusRequest moves a technical task to Pending, In Progress or Done.
type TaskStatusRequest struct {
	Status string `json:"status" validate:"required,max=20"`
}

// TechDataRequest creates an installed-machine record. Dates are YYYY-MM-DD.
type TechDataRequest struct {
	Company    string `json:"company" validate:"required,max=200"`
	Machine    string `json:"machine" validate:"max=200"`
	Serial     string `json:"serial" validate:"max=100"`
	Warranty   string `json:"warranty" validate:"max=10"`
	ServiceDue string `json:"service_due" validate:"max=10"`
	Status     string `json:"status" validate:"max=20"`
}

// UpdateTechDataRequest is a partial edit. An empty date clears it.
type UpdateTechDataRequest struct {
	Company    *string `json:"company,omitempty" validate:"omitempty,min=1,max=200"`
	Machine    *string `json:"machine,omitempty" validate:"omitempty,max=200"`
	Serial     *string `json:"serial,omitempty" validate:"omitempty,max=100"`
	Warranty   *string `json:"warranty,omitempty" validate:"omitempty,max=10"`
	ServiceDue *string `json:"service_due,omitempty" validate:"omitempty,max=10"`
	Status     *string `json:"status,omitempty" validate:"omitempty,max=20"`
}

type ListRequest struct {
	Page   int    `form:"page" validate:"omitempty,min=1"`
	Search string `form:"search" validate:"max=100"`
	Status string `form:"status" validate:"max=20"`
}

type TechTaskListResponse struct {
	Items      []records.TechTask `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
}

type TenderListResponse struct {
	Items      []records.Tender `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}

type TechDataListResponse struct {
	Items      []records.TechData `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
}
