// Package records holds the entity definitions shared by every pipeline
// module: leads, follow-up tasks, payments, technical tasks and tenders,
// together with their enumerations and field limits.
package records

import "strings"

// LeadStatus is the position of a lead in the sales pipeline.
type LeadStatus string

const (
	LeadNew        LeadStatus = "New"
	LeadInterested LeadStatus = "Interested"
	LeadConverted  LeadStatus = "Converted"
	LeadClosed     LeadStatus = "Closed"
)

// LeadStatuses lists every status in pipeline order.
var LeadStatuses = []LeadStatus{LeadNew, LeadInterested, LeadConverted, LeadClosed}

// Valid reports whether s is one of the four known statuses.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadNew, LeadInterested, LeadConverted, LeadClosed:
		return true
	}
	return false
}

// ParseLeadStatus matches a status case-insensitively.
func ParseLeadStatus(raw string) (LeadStatus, bool) {
	for _, s := range LeadStatuses {
		if strings.EqualFold(strings.TrimSpace(raw), string(s)) {
			return s, true
		}
	}
	return "", false
}

// Priority of a follow-up or technical task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// OrDefault returns Medium when p is empty.
func (p Priority) OrDefault() Priority {
	if p == "" {
		return PriorityMedium
	}
	return p
}

// TaskStatus is the state of a follow-up task.
type TaskStatus string

const (
	TaskPending     TaskStatus = "Pending"
	TaskDone        TaskStatus = "Done"
	TaskRescheduled TaskStatus = "Rescheduled"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskDone, TaskRescheduled:
		return true
	}
	return false
}

// Task types used when a follow-up task is created.
const (
	TaskTypeCall     = "Call"
	TaskTypeFollowUp = "Follow Up"
)

// Purposes is the fixed option list offered for Lead.Purpose.
var Purposes = []string{
	"TENDER MANAGMENT",
	"VENDOR ASSESSMENT",
	"GEM REGISTRATION",
	"DIRECT ORDER",
	"DIRECT LINK",
	"NOT INTRESTED",
	"STARTUP INDIA CERTIFICATE",
	"BUSINESS DEVELOPEMENT SERVICES",
	"L1",
	"TRAINING GEM",
}

// CanonicalPurpose returns the option matching raw case-insensitively, or
// raw unchanged when it is not one of the options.
func CanonicalPurpose(raw string) string {
	trimmed := strings.TrimSpace(raw)
	for _, p := range Purposes {
		if strings.EqualFold(trimmed, p) {
			return p
		}
	}
	return trimmed
}

// Field limits.
const (
	MaxCompanyLen  = 200
	MaxNameLen     = 100
	MaxSnoLen      = 50
	MaxPurposeLen  = 200
	MaxContactLen  = 15
	MaxSoNoLen     = 100
	MaxInvoiceLen  = 100
	MaxBidNoLen    = 100
	MaxTaskTypeLen = 50
)

// PlaceholderName is stored when an imported row has no company or name.
const PlaceholderName = "Unknown"
