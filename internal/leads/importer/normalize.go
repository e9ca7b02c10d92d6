package importer

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"leadflow_backend/internal/records"
	"leadflow_backend/platform/phone"
	"leadflow_backend/platform/sanitize"

	"github.com/shopspring/decimal"
)

// Cell is one column/value pair of a spreadsheet row.
type Cell struct {
	Column string
	Value  string
}

// Row keeps cells in their source column order.
type Row []Cell

// Get returns the value of column, or "" when absent.
func (r Row) Get(column string) string {
	for _, c := range r {
		if c.Column == column {
			return c.Value
		}
	}
	return ""
}

// RowFromMap builds a Row from a map using the given column order.
// Columns missing from order are appended in sorted order.
func RowFromMap(values map[string]string, order []string) Row {
	row := make(Row, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, col := range order {
		if v, ok := values[col]; ok {
			row = append(row, Cell{Column: col, Value: v})
			seen[col] = true
		}
	}
	rest := make([]string, 0)
	for col := range values {
		if !seen[col] {
			rest = append(rest, col)
		}
	}
	slices.Sort(rest)
	for _, col := range rest {
		row = append(row, Cell{Column: col, Value: values[col]})
	}
	return row
}

// Intent is the batch-level hint for rows that carry no status of their own.
type Intent string

const (
	IntentNewLead    Intent = "new-lead"
	IntentInterested Intent = "interested"
	IntentConverted  Intent = "converted"
	IntentClosed     Intent = "closed"
)

// DefaultStatus is the status applied to rows without a status cell.
func (i Intent) DefaultStatus() records.LeadStatus {
	switch i {
	case IntentInterested:
		return records.LeadInterested
	case IntentConverted:
		return records.LeadConverted
	case IntentClosed:
		return records.LeadClosed
	default:
		return records.LeadNew
	}
}

// ParseIntent accepts an intent name or a status name. Unknown values fall
// back to the new-lead intent.
func ParseIntent(raw string) Intent {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "interested":
		return IntentInterested
	case "converted":
		return IntentConverted
	case "closed":
		return IntentClosed
	default:
		return IntentNewLead
	}
}

var filenameHints = []struct {
	intent   Intent
	keywords []string
}{
	{IntentConverted, []string{"convert", "won", "customer"}},
	{IntentInterested, []string{"interest", "follow", "hot", "warm"}},
	{IntentClosed, []string{"clos", "lost", "dead", "reject"}},
}

// IntentFromFilename infers the batch intent from an upload's file name.
func IntentFromFilename(name string) Intent {
	lower := strings.ToLower(name)
	for _, hint := range filenameHints {
		for _, kw := range hint.keywords {
			if strings.Contains(lower, kw) {
				return hint.intent
			}
		}
	}
	return IntentNewLead
}

// statusHints map a row's status cell by substring, checked in order.
var statusHints = []struct {
	prefix string
	status records.LeadStatus
}{
	{"CONVERT", records.LeadConverted},
	{"INTEREST", records.LeadInterested},
	{"CLOS", records.LeadClosed},
	{"NEW", records.LeadNew},
}

// InferStatus maps a status cell to a lead status, or returns fallback.
func InferStatus(raw string, fallback records.LeadStatus) records.LeadStatus {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	if upper == "" {
		return fallback
	}
	for _, h := range statusHints {
		if strings.Contains(upper, h.prefix) {
			return h.status
		}
	}
	return fallback
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CleanEmail returns the trimmed address, or "" when it is not of the
// form local@domain.tld.
func CleanEmail(raw string) string {
	v := strings.TrimSpace(raw)
	if !emailPattern.MatchString(v) {
		return ""
	}
	return v
}

// CleanContact keeps digits only, undoing numeric formatting that
// spreadsheets apply to phone cells (9876543210.0, 9.87654321E9).
func CleanContact(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	if strings.ContainsAny(v, ".eE") {
		if d, err := decimal.NewFromString(v); err == nil && d.IsInteger() && !d.IsNegative() {
			v = d.String()
		}
	}
	return phone.Digits(v)
}

// Result is the normalized batch.
type Result struct {
	Leads []records.LeadInput
	// SourceRows holds the input row index of each entry in Leads.
	SourceRows []int
	// Skipped counts rows with no company, name or contact.
	Skipped int
	Mapping Mapping
}

// Normalizer converts rows to lead inputs.
type Normalizer struct {
	Columns  []ColumnRule
	Now      func() time.Time
	Location *time.Location
}

// New returns a Normalizer with the default column table, wall clock and UTC.
func New() *Normalizer {
	return &Normalizer{
		Columns:  DefaultColumns,
		Now:      time.Now,
		Location: time.UTC,
	}
}

// Headers returns the distinct column names of rows in first-seen order.
func Headers(rows []Row) []string {
	seen := make(map[string]bool)
	headers := make([]string, 0)
	for _, row := range rows {
		for _, c := range row {
			if !seen[c.Column] {
				seen[c.Column] = true
				headers = append(headers, c.Column)
			}
		}
	}
	return headers
}

// Normalize resolves columns once for the whole batch, then cleans each row.
func (n *Normalizer) Normalize(rows []Row, intent Intent) Result {
	rules := n.Columns
	if rules == nil {
		rules = DefaultColumns
	}
	loc := n.Location
	if loc == nil {
		loc = time.UTC
	}
	clock := n.Now
	if clock == nil {
		clock = time.Now
	}
	now := clock().In(loc)

	mapping := Resolve(Headers(rows), rules)
	result := Result{
		Leads:      make([]records.LeadInput, 0, len(rows)),
		SourceRows: make([]int, 0, len(rows)),
		Mapping:    mapping,
	}

	fallback := intent.DefaultStatus()
	for i, row := range rows {
		get := func(f Field) string {
			col, ok := mapping[f]
			if !ok {
				return ""
			}
			return row.Get(col)
		}

		company := sanitize.Line(get(FieldCompany))
		name := sanitize.Line(get(FieldName))
		contact := CleanContact(get(FieldContact))

		if company == "" && name == "" && contact == "" {
			result.Skipped++
			continue
		}

		date := now
		if parsed, ok := parseDate(get(FieldDate), loc); ok {
			date = parsed
		}

		lead := records.LeadInput{
			Date:    &date,
			Sno:     sanitize.Truncate(sanitize.Line(get(FieldSno)), records.MaxSnoLen),
			Company: sanitize.Truncate(orPlaceholder(company), records.MaxCompanyLen),
			Name:    sanitize.Truncate(orPlaceholder(name), records.MaxNameLen),
			Contact: contact,
			Email:   CleanEmail(get(FieldEmail)),
			Address: sanitize.Text(get(FieldAddress)),
			Note:    sanitize.Text(get(FieldNote)),
			Purpose: sanitize.Truncate(records.CanonicalPurpose(sanitize.Line(get(FieldPurpose))), records.MaxPurposeLen),
			Status:  InferStatus(get(FieldStatus), fallback),
		}

		result.Leads = append(result.Leads, lead)
		result.SourceRows = append(result.SourceRows, i)
	}

	return result
}

func orPlaceholder(s string) string {
	if s == "" {
		return records.PlaceholderName
	}
	return s
}
