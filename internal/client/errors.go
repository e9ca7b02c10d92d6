package client

import (
	"errors"
	"fmt"

	"leadflow_backend/internal/access"
)

// UnauthorizedError is a 401: the token is missing, expired or invalid.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return "unauthorized: " + e.Message }

// ForbiddenError is a denied action, either refused locally by the access
// gate or answered 403 by the server.
type ForbiddenError struct {
	Action  access.Action
	Message string
}

func (e *ForbiddenError) Error() string {
	if e.Message != "" {
		return "forbidden: " + e.Message
	}
	return fmt.Sprintf("forbidden: %s %s", e.Action.Verb, e.Action.Resource)
}

// ValidationError is a 400 or 422. Fields maps JSON field names to the
// failed rule when the server reported them.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string { return "validation failed: " + e.Message }

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return "not found: " + e.Message }

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return "conflict: " + e.Message }

// UpstreamError is a transport failure or a 5xx. Status is zero when no
// response arrived.
type UpstreamError struct {
	Status  int
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Err != nil:
		return "upstream: " + e.Err.Error()
	case e.Status != 0:
		return fmt.Sprintf("upstream: status %d: %s", e.Status, e.Message)
	default:
		return "upstream: " + e.Message
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
