// Package reconcile derives a payment's remaining balance from its amount
// and advance.
package reconcile

import (
	"leadflow_backend/internal/records"
	"leadflow_backend/platform/apperr"
)

// ComputeRemaining returns amount - advance rounded half away from zero to
// two decimals. Overpayment yields a negative balance and is not clamped.
func ComputeRemaining(amount, advance records.Amount) records.Amount {
	return records.NewAmount(amount.Sub(advance.Decimal).Round(2))
}

// Edit is a partial change to a stored payment's money fields. Nil fields
// keep the stored value. A submitted remaining is never part of an edit.
type Edit struct {
	Amount  *records.Amount
	Advance *records.Amount
}

// Touches reports whether the edit changes either input.
func (e Edit) Touches() bool {
	return e.Amount != nil || e.Advance != nil
}

// Apply merges the edit over current and recomputes remaining.
func Apply(current records.Payment, e Edit) (records.Payment, error) {
	next := current
	if e.Amount != nil {
		next.Amount = *e.Amount
	}
	if e.Advance != nil {
		next.Advance = *e.Advance
	}
	if err := ValidateInputs(next.Amount, next.Advance); err != nil {
		return records.Payment{}, err
	}
	next.Amount = records.NewAmount(next.Amount.Round(2))
	next.Advance = records.NewAmount(next.Advance.Round(2))
	next.Remaining = ComputeRemaining(next.Amount, next.Advance)
	return next, nil
}

// ValidateInputs checks that neither input is negative.
func ValidateInputs(amount, advance records.Amount) error {
	if amount.IsNegative() {
		return apperr.Validation("amount must not be negative")
	}
	if advance.IsNegative() {
		return apperr.Validation("advance must not be negative")
	}
	return nil
}

// Consistent reports whether p satisfies remaining == round(amount - advance, 2).
func Consistent(p records.Payment) bool {
	return p.Remaining.Equal(ComputeRemaining(p.Amount, p.Advance).Decimal)
}
