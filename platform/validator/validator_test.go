package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Company string `json:"company" validate:"required,max=5"`
	Code    string `json:"code" validate:"omitempty,upper"`
}

func TestFieldErrorsUsesJSONNames(t *testing.T) {
	val := New()
	err := val.Struct(sample{Company: ""})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	fields := FieldErrors(err)
	if fields["company"] != "required" {
		t.Fatalf("expected company=required, got %#v", fields)
	}
}

func TestSummaryIncludesParam(t *testing.T) {
	val := New()
	err := val.Struct(sample{Company: "toolong"})
	if got := Summary(err); got != "company failed max=5" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestCustomValidationRegistration(t *testing.T) {
	val := New()
	if err := val.RegisterValidation("even", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%2 == 0
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := val.Var(3, "even"); err == nil {
		t.Fatalf("expected 3 to fail even")
	}
	if err := val.Var(4, "even"); err != nil {
		t.Fatalf("expected 4 to pass even: %v", err)
	}
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	if FieldErrors(errors.New("boom")) != nil {
		t.Fatalf("expected nil for non-validation errors")
	}
}
