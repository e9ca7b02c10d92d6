// Package importer turns loosely structured spreadsheet rows into lead
// inputs. It performs no I/O beyond reading an optional CSV stream and is
// deterministic for a given clock.
package importer

import (
	"strings"

	"golang.org/x/text/cases"
)

// Field is a lead attribute a column can be resolved to.
type Field string

const (
	FieldCompany Field = "company"
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldContact Field = "contact"
	FieldAddress Field = "address"
	FieldNote    Field = "note"
	FieldPurpose Field = "purpose"
	FieldStatus  Field = "status"
	FieldDate    Field = "date"
	FieldSno     Field = "sno"
)

// ColumnRule maps a field to the header patterns that identify it.
// Contains matches when the header includes the keyword; Exact matches
// only the whole header. Both are case-insensitive.
type ColumnRule struct {
	Field    Field
	Contains []string
	Exact    []string
}

// DefaultColumns is evaluated top to bottom. A header claimed by an
// earlier rule is not considered by later ones, so more specific fields
// come first. Support for a new export format is added here.
var DefaultColumns = []ColumnRule{
	{Field: FieldSno, Contains: []string{"serial"}, Exact: []string{"sno", "s.no", "s.no.", "s no", "sr", "sr.", "sr no", "sr.no", "sr. no", "sr. no.", "sl no", "#"}},
	{Field: FieldCompany, Contains: []string{"company", "party", "client", "firm", "organisation", "organization", "business"}},
	{Field: FieldName, Contains: []string{"name", "person", "owner", "customer"}},
	{Field: FieldEmail, Contains: []string{"email", "e-mail", "mail"}},
	{Field: FieldContact, Contains: []string{"phone", "mobile", "contact", "tel", "whatsapp", "cell"}},
	{Field: FieldAddress, Contains: []string{"address", "city", "location"}},
	{Field: FieldNote, Contains: []string{"note", "remark", "comment"}},
	{Field: FieldPurpose, Contains: []string{"purpose", "requirement", "service", "interest"}},
	{Field: FieldStatus, Contains: []string{"status", "stage"}},
	{Field: FieldDate, Contains: []string{"date", "created", "time"}},
}

// Mapping is the resolved header for each field.
type Mapping map[Field]string

// fold builds a fresh Caser per call; Casers are stateful.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Resolve assigns headers to fields. Headers are scanned in their original
// order and the first match for a field wins.
func Resolve(headers []string, rules []ColumnRule) Mapping {
	mapping := make(Mapping, len(rules))
	claimed := make(map[string]bool, len(headers))

	folded := make([]string, len(headers))
	for i, h := range headers {
		folded[i] = fold(h)
	}

	for _, rule := range rules {
		for i, h := range folded {
			if claimed[headers[i]] || h == "" {
				continue
			}
			if matches(h, rule) {
				mapping[rule.Field] = headers[i]
				claimed[headers[i]] = true
				break
			}
		}
	}
	return mapping
}

func matches(header string, rule ColumnRule) bool {
	for _, kw := range rule.Exact {
		if header == fold(kw) {
			return true
		}
	}
	for _, kw := range rule.Contains {
		if strings.Contains(header, fold(kw)) {
			return true
		}
	}
	return false
}
