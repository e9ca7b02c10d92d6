package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{NotFound("x"), http.StatusNotFound},
		{Validation("x"), http.StatusBadRequest},
		{BadRequest("x"), http.StatusBadRequest},
		{Conflict("x"), http.StatusConflict},
		{Forbidden("x"), http.StatusForbidden},
		{Unauthorized("x"), http.StatusUnauthorized},
		{Upstream("x", errors.New("db down")), http.StatusBadGateway},
		{Internal("x"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Fatalf("kind %d: expected %d, got %d", tc.err.Kind, tc.want, got)
		}
	}
}

func TestGetKindFollowsWrappedChain(t *testing.T) {
	err := fmt.Errorf("create lead: %w", NotFound("lead not found"))
	if !Is(err, KindNotFound) {
		t.Fatalf("expected wrapped error to report KindNotFound, got %d", GetKind(err))
	}
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Fatalf("expected plain error to be KindUnknown")
	}
}

func TestAsUpstreamKeepsTypedErrors(t *testing.T) {
	typed := Validation("amount must be greater than zero")
	if got := AsUpstream("convert", typed); got != typed {
		t.Fatalf("expected typed error to pass through unchanged")
	}

	raw := errors.New("connection reset")
	wrapped := AsUpstream("convert", raw)
	if !Is(wrapped, KindUpstream) {
		t.Fatalf("expected raw error to become upstream, got %v", wrapped)
	}
	if !errors.Is(wrapped, raw) {
		t.Fatalf("expected upstream error to unwrap to the original")
	}
	if AsUpstream("noop", nil) != nil {
		t.Fatalf("expected nil to stay nil")
	}
}
