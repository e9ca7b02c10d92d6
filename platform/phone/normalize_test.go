package phone

import "testing"

func TestDigits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "   ", want: ""},
		{name: "formatted", input: "+91 (98765) 43210", want: "919876543210"},
		{name: "dashes", input: "98765-43210", want: "9876543210"},
		{name: "too long keeps tail", input: "0091-98765-43210-1234", want: "198765432101234"},
		{name: "letters only", input: "n/a", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Digits(tt.input); got != tt.want {
				t.Fatalf("Digits(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDigitsNeverExceedsMax(t *testing.T) {
	got := Digits("12345678901234567890")
	if len(got) != MaxDigits {
		t.Fatalf("expected %d digits, got %d (%q)", MaxDigits, len(got), got)
	}
	if got != "678901234567890" {
		t.Fatalf("expected trailing digits, got %q", got)
	}
}

func TestIsDigits(t *testing.T) {
	if !IsDigits("0123") || IsDigits("") || IsDigits("12a") {
		t.Fatalf("IsDigits returned unexpected result")
	}
}

func TestMask(t *testing.T) {
	if got := Mask("9876543210", 5); got != "98765*****" {
		t.Fatalf("unexpected mask %q", got)
	}
	if got := Mask("123", 5); got != "***" {
		t.Fatalf("unexpected short mask %q", got)
	}
	if got := Mask("", 5); got != "" {
		t.Fatalf("expected empty mask, got %q", got)
	}
}
