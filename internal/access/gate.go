// Package access decides which mutating operations a caller may invoke.
// Everything here is pure: no I/O, no globals, no context.
package access

import "strings"

// Capability is the permission level derived from a caller's role.
type Capability int

const (
	// None grants no mutations.
	None Capability = iota
	// Restricted may read and hand over payments to the technical team.
	Restricted
	// Full may create, update, delete and import everything.
	Full
)

func (c Capability) String() string {
	switch c {
	case Full:
		return "full"
	case Restricted:
		return "restricted"
	default:
		return "none"
	}
}

// Role names carried in bearer tokens.
const (
	RoleSales = "Sales"
	RoleAdmin = "Admin"
	RoleTech  = "Tech"
)

// FromRole maps a single role name to its capability.
func FromRole(role string) Capability {
	switch {
	case strings.EqualFold(role, RoleSales), strings.EqualFold(role, RoleAdmin):
		return Full
	case strings.EqualFold(role, RoleTech):
		return Restricted
	default:
		return None
	}
}

// FromRoles returns the strongest capability among roles.
func FromRoles(roles []string) Capability {
	best := None
	for _, r := range roles {
		if c := FromRole(r); c > best {
			best = c
		}
	}
	return best
}

// Resource names a mutable collection.
type Resource string

const (
	Leads      Resource = "leads"
	SalesTasks Resource = "sales_tasks"
	Payments   Resource = "payments"
	TechTasks  Resource = "tech_tasks"
	Tenders    Resource = "tenders"
	TechData   Resource = "tech_data"
	Customers  Resource = "customers"
)

// Verb names a mutating operation.
type Verb string

const (
	Create     Verb = "create"
	Update     Verb = "update"
	Delete     Verb = "delete"
	BulkDelete Verb = "bulk_delete"
	Import     Verb = "import"
	FollowUp   Verb = "follow_up"
	Convert    Verb = "convert"
	SetStatus  Verb = "set_status"
	Handover   Verb = "handover"
	Upload     Verb = "upload"
)

// Action is a verb applied to a resource.
type Action struct {
	Resource Resource
	Verb     Verb
}

func (a Action) String() string {
	return string(a.Resource) + ":" + string(a.Verb)
}

// known lists every action the pipeline exposes.
var known = map[Action]struct{}{
	{Leads, Create}:      {},
	{Leads, Update}:      {},
	{Leads, Delete}:      {},
	{Leads, BulkDelete}:  {},
	{Leads, Import}:      {},
	{Leads, FollowUp}:    {},
	{Leads, Convert}:     {},
	{Leads, SetStatus}:   {},
	{SalesTasks, Create}: {},
	{SalesTasks, Update}: {},
	{SalesTasks, Delete}: {},
	{Payments, Create}:   {},
	{Payments, Update}:   {},
	{Payments, Delete}:   {},
	{Payments, Handover}: {},
	{Payments, Upload}:   {},
	{TechTasks, Create}:  {},
	{TechTasks, Update}:  {},
	{TechTasks, Delete}:  {},
	{Tenders, Create}:    {},
	{Tenders, Delete}:    {},
	{TechData, Create}:   {},
	{TechData, Update}:   {},
	{TechData, Delete}:   {},
	{Customers, Create}:  {},
	{Customers, Update}:  {},
	{Customers, Delete}:  {},
}

// restricted is the subset allowed to the Restricted capability.
var restricted = map[Action]struct{}{
	{Payments, Handover}: {},
}

// Known reports whether a is an action the pipeline exposes.
func Known(a Action) bool {
	_, ok := known[a]
	return ok
}

// CanMutate reports whether capability c may perform action a. Unknown
// actions and unknown capabilities are denied.
func CanMutate(c Capability, a Action) bool {
	if !Known(a) {
		return false
	}
	switch c {
	case Full:
		return true
	case Restricted:
		_, ok := restricted[a]
		return ok
	default:
		return false
	}
}

// Actions returns every known action, for exhaustive checks.
func Actions() []Action {
	out := make([]Action, 0, len(known))
	for a := range known {
		out = append(out, a)
	}
	return out
}

// Allows returns a role check for a, suitable for request middleware.
func Allows(a Action) func(roles []string) bool {
	return func(roles []string) bool {
		return CanMutate(FromRoles(roles), a)
	}
}
