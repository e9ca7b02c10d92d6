package client

import (
	"leadflow_backend/internal/records"
	"leadflow_backend/platform/sanitize"
	"leadflow_backend/platform/validator"
)

var requestValidator = records.NewValidator()

// check applies the request rules the server's handlers apply on arrival.
func check(in any) error {
	if err := requestValidator.Struct(in); err != nil {
		return &ValidationError{Message: validator.Summary(err), Fields: validator.FieldErrors(err)}
	}
	return nil
}

// requireText fails when value is empty once cleaned the way the server
// cleans single-line fields.
func requireText(field, value string) error {
	if sanitize.Line(value) == "" {
		return &ValidationError{Message: field + " is required", Fields: map[string]string{field: "required"}}
	}
	return nil
}
