package reconcile

import (
	"testing"

	"leadflow_backend/internal/records"
	"leadflow_backend/platform/apperr"
)

func TestComputeRemaining(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		advance string
		want    string
	}{
		{name: "simple", amount: "1000", advance: "400", want: "600.00"},
		{name: "fractional", amount: "0.3", advance: "0.1", want: "0.20"},
		{name: "overpayment stays negative", amount: "100", advance: "150.25", want: "-50.25"},
		{name: "rounds half away from zero", amount: "10.005", advance: "0", want: "10.01"},
		{name: "zero", amount: "0", advance: "0", want: "0.00"},
		{name: "large", amount: "9999999999999.99", advance: "0.01", want: "9999999999999.98"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeRemaining(records.MustAmount(tt.amount), records.MustAmount(tt.advance))
			if got.String() != tt.want {
				t.Fatalf("ComputeRemaining(%s, %s) = %s, want %s", tt.amount, tt.advance, got, tt.want)
			}
		})
	}
}

func TestComputeRemainingIsDeterministic(t *testing.T) {
	a, b := records.MustAmount("123.456"), records.MustAmount("23.455")
	first := ComputeRemaining(a, b)
	for i := 0; i < 100; i++ {
		if got := ComputeRemaining(a, b); !got.Equal(first.Decimal) {
			t.Fatalf("iteration %d: got %s, want %s", i, got, first)
		}
	}
}

func TestApplyRecomputesFromStoredSide(t *testing.T) {
	current := records.Payment{
		Amount:    records.MustAmount("1000"),
		Advance:   records.MustAmount("400"),
		Remaining: records.MustAmount("600"),
	}

	advance := records.MustAmount("750")
	next, err := Apply(current, Edit{Advance: &advance})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Remaining.String() != "250.00" {
		t.Fatalf("expected remaining 250.00, got %s", next.Remaining)
	}
	if !Consistent(next) {
		t.Fatalf("expected payment to be consistent after apply")
	}
}

func TestApplyRejectsNegativeInputs(t *testing.T) {
	neg := records.MustAmount("-1")
	_, err := Apply(records.Payment{Amount: records.MustAmount("10")}, Edit{Amount: &neg})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestConsistentDetectsTampering(t *testing.T) {
	p := records.Payment{
		Amount:    records.MustAmount("1000"),
		Advance:   records.MustAmount("400"),
		Remaining: records.MustAmount("0"),
	}
	if Consistent(p) {
		t.Fatalf("expected tampered remaining to be inconsistent")
	}
}

func TestEditTouches(t *testing.T) {
	one := records.MustAmount("1")
	if (Edit{}).Touches() {
		t.Fatalf("empty edit should not touch money fields")
	}
	if !(Edit{Amount: &one}).Touches() {
		t.Fatalf("amount edit should touch money fields")
	}
}
