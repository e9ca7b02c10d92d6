package records

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a currency value with two-decimal precision. It marshals to a
// JSON number with exactly two fractional digits and accepts either a number
// or a numeric string on input.
type Amount struct {
	decimal.Decimal
}

// NewAmount builds an Amount from a decimal.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// AmountFromString parses a decimal string such as "1000.50".
func AmountFromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{Decimal: d}, nil
}

// MustAmount parses s and panics on failure. Intended for tests and constants.
func MustAmount(s string) Amount {
	a, err := AmountFromString(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String renders the amount with two decimals.
func (a Amount) String() string {
	return a.Decimal.StringFixed(2)
}

// MarshalJSON writes the amount as an unquoted two-decimal number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.StringFixed(2)), nil
}

// UnmarshalJSON accepts 12.5, "12.50" and null (zero).
func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	trimmed = bytes.Trim(trimmed, `"`)
	if len(trimmed) == 0 {
		a.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(string(trimmed))
	if err != nil {
		return fmt.Errorf("invalid amount %s", data)
	}
	a.Decimal = d
	return nil
}

// IsNegative reports whether the amount is below zero.
func (a Amount) IsNegative() bool {
	return a.Decimal.IsNegative()
}

// IsPositive reports whether the amount is above zero.
func (a Amount) IsPositive() bool {
	return a.Decimal.IsPositive()
}
