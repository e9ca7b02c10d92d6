// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"leadflow_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Publisher   = events.Publisher
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Lead Lifecycle Events
// =============================================================================

// LeadStatusChanged is published after any committed status change,
// pipeline transition or administrative override.
type LeadStatusChanged struct {
	BaseEvent
	LeadID  uuid.UUID `json:"leadId"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	Trigger string    `json:"trigger"`
}

func (e LeadStatusChanged) EventName() string { return "leads.status.changed" }

// FollowUpScheduled is published when a lead is sent to the sales tasks.
type FollowUpScheduled struct {
	BaseEvent
	LeadID       uuid.UUID `json:"leadId"`
	TaskID       uuid.UUID `json:"taskId"`
	NextFollowUp time.Time `json:"nextFollowUp"`
}

func (e FollowUpScheduled) EventName() string { return "leads.follow_up.scheduled" }

// LeadConverted is published when a conversion created a payment.
type LeadConverted struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	PaymentID uuid.UUID `json:"paymentId"`
	Company   string    `json:"company"`
}

func (e LeadConverted) EventName() string { return "leads.converted" }

// LeadsImported is published after a bulk import committed rows.
type LeadsImported struct {
	BaseEvent
	Created int `json:"created"`
}

func (e LeadsImported) EventName() string { return "leads.imported" }

// LeadsRemoved is published after single or bulk lead deletion.
type LeadsRemoved struct {
	BaseEvent
	Count int `json:"count"`
}

func (e LeadsRemoved) EventName() string { return "leads.removed" }

// =============================================================================
// Payment & Task Events
// =============================================================================

// PaymentChanged is published after a payment is created, edited or deleted.
type PaymentChanged struct {
	BaseEvent
	PaymentID uuid.UUID `json:"paymentId"`
	Action    string    `json:"action"`
}

func (e PaymentChanged) EventName() string { return "payments.changed" }

// PaymentHandedOver is published when a payment produced a technical task.
type PaymentHandedOver struct {
	BaseEvent
	PaymentID  uuid.UUID `json:"paymentId"`
	TechTaskID uuid.UUID `json:"techTaskId"`
}

func (e PaymentHandedOver) EventName() string { return "payments.handed_over" }

// SalesTaskChanged is published after a follow-up task is created, updated
// or deleted outside the lead lifecycle.
type SalesTaskChanged struct {
	BaseEvent
	TaskID uuid.UUID `json:"taskId"`
	Action string    `json:"action"`
}

func (e SalesTaskChanged) EventName() string { return "sales_tasks.changed" }

// TechnicalChanged is published after a technical task, tender or tech
// data record is created, updated or deleted.
type TechnicalChanged struct {
	BaseEvent
	Kind   string    `json:"kind"`
	ID     uuid.UUID `json:"id"`
	Action string    `json:"action"`
}

func (e TechnicalChanged) EventName() string { return "technical.changed" }

// FollowUpReminderDue is published by the scheduler worker when an open
// follow-up is due today.
type FollowUpReminderDue struct {
	BaseEvent
	TaskID       uuid.UUID `json:"taskId"`
	LeadName     string    `json:"leadName"`
	Company      string    `json:"company"`
	Contact      string    `json:"contact"`
	NextFollowUp time.Time `json:"nextFollowUp"`
	Priority     string    `json:"priority"`
}

func (e FollowUpReminderDue) EventName() string { return "sales_tasks.reminder_due" }

// Change actions carried by PaymentChanged, SalesTaskChanged and
// TechnicalChanged.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)
