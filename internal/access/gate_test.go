package access

import "testing"

func TestRestrictedCannotDeleteAnything(t *testing.T) {
	for _, r := range []Resource{Leads, SalesTasks, Payments, TechTasks, Tenders, TechData, Customers} {
		for _, v := range []Verb{Delete, BulkDelete} {
			if CanMutate(Restricted, Action{r, v}) {
				t.Fatalf("restricted must not %s", Action{r, v})
			}
		}
	}
}

func TestRestrictedMayHandover(t *testing.T) {
	if !CanMutate(Restricted, Action{Payments, Handover}) {
		t.Fatalf("restricted should be allowed to hand over payments")
	}
}

func TestFullMayDoEveryKnownAction(t *testing.T) {
	for _, a := range Actions() {
		if !CanMutate(Full, a) {
			t.Fatalf("full capability denied %s", a)
		}
	}
}

func TestGateIsTotal(t *testing.T) {
	caps := []Capability{None, Restricted, Full, Capability(42)}
	for _, c := range caps {
		for _, a := range Actions() {
			got := CanMutate(c, a)
			if c != Full && c != Restricted && got {
				t.Fatalf("capability %v unexpectedly allowed %s", c, a)
			}
			if c == Restricted && got && a != (Action{Payments, Handover}) {
				t.Fatalf("restricted allowed %s", a)
			}
		}
	}
}

func TestUnknownActionsDeny(t *testing.T) {
	unknown := []Action{
		{Leads, Handover},
		{Tenders, Update},
		{"invoices", Create},
		{Customers, Import},
		{Payments, "refund"},
	}
	for _, a := range unknown {
		if CanMutate(Full, a) {
			t.Fatalf("expected unknown action %s to be denied", a)
		}
	}
}

func TestFromRoles(t *testing.T) {
	tests := []struct {
		roles []string
		want  Capability
	}{
		{nil, None},
		{[]string{"guest"}, None},
		{[]string{"Tech"}, Restricted},
		{[]string{"tech", "sales"}, Full},
		{[]string{"Admin"}, Full},
	}
	for _, tt := range tests {
		if got := FromRoles(tt.roles); got != tt.want {
			t.Fatalf("FromRoles(%v) = %v, want %v", tt.roles, got, tt.want)
		}
	}
}

func TestAllowsDerivesCapabilityFromRoles(t *testing.T) {
	del := Allows(Action{Leads, Delete})
	if !del([]string{"Tech", "Sales"}) {
		t.Fatalf("strongest role should win")
	}
	if del([]string{"Tech"}) {
		t.Fatalf("tech must not delete leads")
	}
	if del(nil) {
		t.Fatalf("no roles must deny")
	}
}

func TestRestrictedCannotTouchTechnicalRecords(t *testing.T) {
	for _, a := range []Action{
		{TechTasks, Update}, {TechTasks, Delete}, {Tenders, Delete},
		{TechData, Create}, {TechData, Update}, {Customers, Create}, {Customers, Update},
	} {
		if !Known(a) {
			t.Fatalf("%s should be a known action", a)
		}
		if CanMutate(Restricted, a) {
			t.Fatalf("restricted must not %s", a)
		}
	}
}
