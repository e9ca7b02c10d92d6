package repository

import (
	"testing"
	"time"

	"leadflow_backend/internal/records"
)

func TestBuildListWhereNoFilters(t *testing.T) {
	where, args, next := buildListWhere(ListParams{Limit: 20})
	if where != "TRUE" || len(args) != 0 || next != 1 {
		t.Fatalf("unexpected where %q args %v next %d", where, args, next)
	}
}

func TestBuildListWhereAllFilters(t *testing.T) {
	status := records.LeadInterested
	after := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	where, args, next := buildListWhere(ListParams{
		Search:    " 50%_off ",
		Status:    &status,
		DateAfter: &after,
	})

	want := "TRUE AND (company ILIKE $1 OR name ILIKE $1 OR contact ILIKE $1) AND status = $2 AND created_at >= $3"
	if where != want {
		t.Fatalf("where = %q\nwant    %q", where, want)
	}
	if next != 4 {
		t.Fatalf("expected next arg index 4, got %d", next)
	}
	if args[0] != `%50\%\_off%` {
		t.Fatalf("search pattern not escaped: %v", args[0])
	}
	if args[1] != "Interested" {
		t.Fatalf("status arg = %v", args[1])
	}
	if args[2] != after {
		t.Fatalf("date arg = %v", args[2])
	}
}
