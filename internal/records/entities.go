package records

import (
	"time"

	"github.com/google/uuid"
)

// Lead is a prospective customer moving through the pipeline.
type Lead struct {
	ID        uuid.UUID  `json:"id"`
	Date      time.Time  `json:"date"`
	Sno       string     `json:"sno"`
	Company   string     `json:"company"`
	Name      string     `json:"name"`
	Contact   string     `json:"contact"`
	Email     string     `json:"email"`
	Address   string     `json:"address"`
	Note      string     `json:"note"`
	Purpose   string     `json:"purpose"`
	Status    LeadStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// LeadInput carries the writable fields of a lead. It is the payload of a
// manual create and of each bulk-import row.
type LeadInput struct {
	Date    *time.Time `json:"date,omitempty"`
	Sno     string     `json:"sno" validate:"max=50"`
	Company string     `json:"company" validate:"required,max=200"`
	Name    string     `json:"name" validate:"max=100"`
	Contact string     `json:"contact" validate:"omitempty,max=15,digits"`
	Email   string     `json:"email" validate:"omitempty,email,max=254"`
	Address string     `json:"address"`
	Note    string     `json:"note"`
	Purpose string     `json:"purpose" validate:"max=200"`
	Status  LeadStatus `json:"status" validate:"omitempty,leadstatus"`
}

// FollowUpTask is a scheduled re-contact of a lead. Name, company and
// contact are copied from the lead when the task is created.
type FollowUpTask struct {
	ID            uuid.UUID  `json:"id"`
	LeadName      string     `json:"leadName"`
	Company       string     `json:"company"`
	Contact       string     `json:"contact"`
	TaskType      string     `json:"taskType"`
	Date          time.Time  `json:"date"`
	NextFollowUp  time.Time  `json:"nextFollowUp"`
	Priority      Priority   `json:"priority"`
	Remarks       string     `json:"remarks"`
	Status        TaskStatus `json:"status"`
	FollowUpCount int        `json:"followUpCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Payment records money received against a conversion. Remaining is always
// derived from Amount and Advance.
type Payment struct {
	ID         uuid.UUID `json:"id"`
	Date       time.Time `json:"date"`
	Company    string    `json:"company"`
	SoNo       string    `json:"soNo"`
	Amount     Amount    `json:"amount"`
	Advance    Amount    `json:"advance"`
	Remaining  Amount    `json:"remaining"`
	Invoice    string    `json:"invoice"`
	Remark     string    `json:"remark"`
	ReceiptKey *string   `json:"receiptKey,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TechTask is the technical-team handover created from a payment.
type TechTask struct {
	ID          uuid.UUID  `json:"id"`
	PaymentID   *uuid.UUID `json:"paymentId,omitempty"`
	Date        time.Time  `json:"date"`
	CompanyName string     `json:"companyName"`
	ClientName  string     `json:"clientName"`
	ClientID    string     `json:"clientId"`
	GemID       string     `json:"gemId"`
	GemPassword string     `json:"gemPassword"`
	TaskName    string     `json:"taskName"`
	Priority    Priority   `json:"priority"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Tender is a tracked bid submission.
type Tender struct {
	ID        uuid.UUID  `json:"id"`
	Date      time.Time  `json:"date"`
	Company   string     `json:"company"`
	BidNo     string     `json:"bidNo"`
	Item      string     `json:"item"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Customer is an account kept outside the lead pipeline.
type Customer struct {
	ID        uuid.UUID  `json:"id"`
	Date      *time.Time `json:"date,omitempty"`
	Sno       string     `json:"sno"`
	Company   string     `json:"company"`
	Name      string     `json:"name"`
	Contact   string     `json:"contact"`
	Email     string     `json:"email"`
	Purpose   string     `json:"purpose"`
	Status    string     `json:"status"`
	Remarks   string     `json:"remarks"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TechData tracks an installed machine and its service dates.
type TechData struct {
	ID         uuid.UUID  `json:"id"`
	Company    string     `json:"company"`
	Machine    string     `json:"machine"`
	Serial     string     `json:"serial"`
	Warranty   *time.Time `json:"warranty,omitempty"`
	ServiceDue *time.Time `json:"serviceDue,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Default statuses for records created without one.
const (
	DefaultTechTaskStatus = "Pending"
	DefaultTenderStatus   = "Draft"
	DefaultCustomerStatus = "Active"
	DefaultTechDataStatus = "Active"
)

// Technical task statuses.
const (
	TechTaskPending    = "Pending"
	TechTaskInProgress = "In Progress"
	TechTaskDone       = "Done"
)

// ValidTechTaskStatus reports whether s is a technical task status.
func ValidTechTaskStatus(s string) bool {
	switch s {
	case TechTaskPending, TechTaskInProgress, TechTaskDone:
		return true
	}
	return false
}

// ValidTechDataStatus reports whether s is an installed-machine status.
func ValidTechDataStatus(s string) bool {
	switch s {
	case "Active", "Expired", "Servicing":
		return true
	}
	return false
}
