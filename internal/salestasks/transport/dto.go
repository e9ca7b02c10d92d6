// Package transport holds the request and response shapes of the sales task API.
package transport

import (
	"leadflow_backend/internal/records"
)

// CreateTaskRequest adds a follow-up task by hand. Dates are YYYY-MM-DD.
type CreateTaskRequest struct {
	LeadName     string             `json:"lead_name" validate:"max=100"`
	Company      string             `json:"company" validate:"required,max=200"`
	Contact      string             `json:"contact" validate:"max=32"`
	TaskType     string             `json:"task_type" validate:"max=50"`
	Date         string             `json:"date" validate:"max=10"`
	NextFollowUp string             `json:"next_follow_up" validate:"required"`
	Priority     records.Priority   `json:"priority" validate:"omitempty,priority"`
	Remarks      string             `json:"remarks" validate:"max=2000"`
	Status       records.TaskStatus `json:"status" validate:"omitempty,taskstatus"`
}

// FollowUpUpdateRequest records one follow-up round. The server increments
// the follow-up count; a count sent by the client is ignored.
type FollowUpUpdateRequest struct {
	NextFollowUp  *string             `json:"next_follow_up,omitempty"`
	Status        *records.TaskStatus `json:"status,omitempty" validate:"omitempty,taskstatus"`
	Priority      *records.Priority   `json:"priority,omitempty" validate:"omitempty,priority"`
	Remarks       *string             `json:"remarks,omitempty" validate:"omitempty,max=2000"`
	FollowUpCount *int                `json:"follow_up_count,omitempty"`
}

// ListTasksRequest filters the task list. Due=today limits to tasks due on
// or before the current day.
type ListTasksRequest struct {
	Page   int    `form:"page" validate:"omitempty,min=1"`
	Search string `form:"search" validate:"max=100"`
	Status string `form:"status" validate:"omitempty,taskstatus"`
	Due    string `form:"due" validate:"omitempty,oneof=today"`
}

type TaskListResponse struct {
	Items      []records.FollowUpTask `json:"items"`
	Total      int                    `json:"total"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"pageSize"`
	TotalPages int                    `json:"totalPages"`
}
