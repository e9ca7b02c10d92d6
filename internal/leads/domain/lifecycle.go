// Package domain holds the lead lifecycle rules. It has no I/O; services
// consult it before writing.
package domain

import (
	"strings"
	"time"

	"leadflow_backend/internal/records"
	"leadflow_backend/platform/apperr"
)

// Trigger names what caused a status change.
type Trigger string

const (
	TriggerFollowUp Trigger = "follow_up"
	TriggerConvert  Trigger = "convert"
	TriggerOverride Trigger = "override"
)

// pipeline is the forward graph. Overrides bypass it.
var pipeline = map[records.LeadStatus]map[records.LeadStatus]bool{
	records.LeadNew: {
		records.LeadInterested: true,
		records.LeadConverted:  true,
		records.LeadClosed:     true,
	},
	records.LeadInterested: {
		records.LeadConverted: true,
		records.LeadClosed:    true,
	},
	records.LeadConverted: {},
	records.LeadClosed:    {},
}

// PipelineAllows reports whether from -> to is a forward pipeline move.
// Staying in the same status is always allowed.
func PipelineAllows(from, to records.LeadStatus) bool {
	if from == to {
		return true
	}
	return pipeline[from][to]
}

// FollowUpTarget is the status a lead takes after a follow-up is scheduled,
// whatever its previous status.
func FollowUpTarget(records.LeadStatus) records.LeadStatus {
	return records.LeadInterested
}

// ConvertTarget is the status a lead takes after conversion.
func ConvertTarget(records.LeadStatus) records.LeadStatus {
	return records.LeadConverted
}

// FollowUpRequest is the input of a follow-up scheduling.
type FollowUpRequest struct {
	NextFollowUp time.Time
	Priority     records.Priority
	Remarks      string
}

// Validate checks the request before any write.
func (r FollowUpRequest) Validate() error {
	if r.NextFollowUp.IsZero() {
		return apperr.Validation("next follow-up date is required")
	}
	if r.Priority != "" && !r.Priority.Valid() {
		return apperr.Validation("priority must be Low, Medium or High")
	}
	return nil
}

// NewFollowUpTask snapshots lead into a fresh task. The count starts at zero.
func NewFollowUpTask(lead records.Lead, req FollowUpRequest, now time.Time) records.FollowUpTask {
	remarks := strings.TrimSpace(req.Remarks)
	if remarks == "" {
		remarks = "Moved from Leads. Purpose: " + lead.Purpose
	}
	return records.FollowUpTask{
		LeadName:      lead.Name,
		Company:       lead.Company,
		Contact:       lead.Contact,
		TaskType:      records.TaskTypeCall,
		Date:          now,
		NextFollowUp:  req.NextFollowUp,
		Priority:      req.Priority.OrDefault(),
		Remarks:       remarks,
		Status:        records.TaskPending,
		FollowUpCount: 0,
	}
}

// ValidateOverride checks a manual status change. Any known status is
// accepted regardless of the current one.
func ValidateOverride(status records.LeadStatus) error {
	if !status.Valid() {
		return apperr.Validation("status must be one of New, Interested, Converted, Closed")
	}
	return nil
}
