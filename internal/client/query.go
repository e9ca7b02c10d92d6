package client

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"leadflow_backend/internal/records"
)

// Query is the lead list state: search text, status filter, a "created
// within the last N days" window and the page. Changing any filter returns
// to page 1; changing only the page keeps the filters.
type Query struct {
	page       int
	search     string
	status     records.LeadStatus
	windowDays int
}

// NewQuery returns an unfiltered query on page 1.
func NewQuery() Query {
	return Query{page: 1}
}

func (q Query) Page() int                  { return max(q.page, 1) }
func (q Query) Search() string             { return q.search }
func (q Query) Status() records.LeadStatus { return q.status }
func (q Query) WindowDays() int            { return q.windowDays }

// SetSearch changes the free-text filter.
func (q *Query) SetSearch(search string) {
	search = strings.TrimSpace(search)
	if search != q.search {
		q.search = search
		q.page = 1
	}
}

// SetStatus filters on one status; the empty status clears the filter.
func (q *Query) SetStatus(status records.LeadStatus) {
	if status != q.status {
		q.status = status
		q.page = 1
	}
}

// SetWindowDays keeps leads created in the last days days; zero clears it.
func (q *Query) SetWindowDays(days int) {
	days = max(days, 0)
	if days != q.windowDays {
		q.windowDays = days
		q.page = 1
	}
}

// SetPage moves to page; values below 1 mean page 1.
func (q *Query) SetPage(page int) {
	q.page = max(page, 1)
}

// Params renders the query string for GET /leads.
func (q Query) Params(now time.Time) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page()))
	if q.search != "" {
		v.Set("search", q.search)
	}
	if q.status != "" {
		v.Set("status", string(q.status))
	}
	if q.windowDays > 0 {
		v.Set("date_after", now.AddDate(0, 0, -q.windowDays).UTC().Format(time.RFC3339))
	}
	return v
}
