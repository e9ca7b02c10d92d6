// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// MaxDigits is the longest contact number stored on a lead.
const MaxDigits = 15

// Digits strips everything except digits from input and, when the result is
// longer than MaxDigits, keeps only the trailing MaxDigits digits.
func Digits(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	digits := phonenumbers.NormalizeDigitsOnly(trimmed)
	if len(digits) > MaxDigits {
		digits = digits[len(digits)-MaxDigits:]
	}
	return digits
}

// IsDigits reports whether s is non-empty and consists only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Mask replaces the last n digits of a contact with '*'.
func Mask(contact string, n int) string {
	if n <= 0 || contact == "" {
		return contact
	}
	if n >= len(contact) {
		return strings.Repeat("*", len(contact))
	}
	return contact[:len(contact)-n] + strings.Repeat("*", n)
}
