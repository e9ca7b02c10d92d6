// Package transport holds the request and response shapes of the customers API.
package transport

import (
	"time"

	"leadflow_backend/internal/records"
)

// CreateCustomerRequest adds a customer. Contact is reduced to digits.
type CreateCustomerRequest struct {
	Date    *time.Time `json:"date,omitempty"`
	Sno     string     `json:"sno" validate:"max=50"`
	Company string     `json:"company" validate:"required,max=200"`
	Name    string     `json:"name" validate:"max=100"`
	Contact string     `json:"contact" validate:"max=32"`
	Email   string     `json:"email" validate:"omitempty,email,max=254"`
	Purpose string     `json:"purpose" validate:"max=200"`
	Status  string     `json:"status" validate:"max=50"`
	Remarks string     `json:"remarks" validate:"max=2000"`
}

// UpdateCustomerRequest is a partial edit; nil fields are left alone.
type UpdateCustomerRequest struct {
	Date    *time.Time `json:"date,omitempty"`
	Sno     *string    `json:"sno,omitempty" validate:"omitempty,max=50"`
	Company *string    `json:"company,omitempty" validate:"omitempty,min=1,max=200"`
	Name    *string    `json:"name,omitempty" validate:"omitempty,max=100"`
	Contact *string    `json:"contact,omitempty" validate:"omitempty,max=32"`
	Email   *string    `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Purpose *string    `json:"purpose,omitempty" validate:"omitempty,max=200"`
	Status  *string    `json:"status,omitempty" validate:"omitempty,min=1,max=50"`
	Remarks *string    `json:"remarks,omitempty" validate:"omitempty,max=2000"`
}

type ListCustomersRequest struct {
	Page   int    `form:"page" validate:"omitempty,min=1"`
	Search string `form:"search" validate:"max=100"`
	Status string `form:"status" validate:"max=50"`
}

type CustomerListResponse struct {
	Items      []records.Customer `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
}
