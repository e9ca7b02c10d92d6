package importer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"leadflow_backend/internal/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func testNormalizer() *Normalizer {
	return &Normalizer{
		Columns:  DefaultColumns,
		Now:      func() time.Time { return fixedNow },
		Location: time.UTC,
	}
}

func row(pairs ...string) Row {
	r := make(Row, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		r = append(r, Cell{Column: pairs[i], Value: pairs[i+1]})
	}
	return r
}

func TestResolveMapsCommonHeaders(t *testing.T) {
	headers := []string{"S.No", "Company Name", "Contact Person", "Mobile No", "Email ID", "Remarks", "Date", "Lead Status"}
	m := Resolve(headers, DefaultColumns)

	assert.Equal(t, "S.No", m[FieldSno])
	assert.Equal(t, "Company Name", m[FieldCompany])
	assert.Equal(t, "Contact Person", m[FieldName])
	assert.Equal(t, "Mobile No", m[FieldContact])
	assert.Equal(t, "Email ID", m[FieldEmail])
	assert.Equal(t, "Remarks", m[FieldNote])
	assert.Equal(t, "Date", m[FieldDate])
	assert.Equal(t, "Lead Status", m[FieldStatus])
}

func TestResolveKeepsNumberColumnsOffContact(t *testing.T) {
	tests := []struct {
		headers []string
		sno     string
	}{
		{[]string{"Serial Number", "Company", "Contact Person", "Mobile"}, "Serial Number"},
		{[]string{"GST Number", "Company", "Contact Person", "Mobile"}, ""},
		{[]string{"Order Number", "Invoice Number", "Party", "Phone"}, ""},
	}
	for _, tt := range tests {
		m := Resolve(tt.headers, DefaultColumns)
		assert.Equal(t, tt.headers[len(tt.headers)-1], m[FieldContact], "%v", tt.headers)
		assert.Equal(t, tt.sno, m[FieldSno], "%v", tt.headers)
	}
}

func TestResolveClaimsEachHeaderOnce(t *testing.T) {
	m := Resolve([]string{"Name", "Company"}, DefaultColumns)
	assert.Equal(t, "Company", m[FieldCompany])
	assert.Equal(t, "Name", m[FieldName])
	assert.Len(t, m, 2)
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	m := Resolve([]string{"  COMPANY ", "PHONE"}, DefaultColumns)
	assert.Equal(t, "  COMPANY ", m[FieldCompany])
	assert.Equal(t, "PHONE", m[FieldContact])
}

func TestNormalizeDropsRowsWithoutIdentity(t *testing.T) {
	rows := []Row{
		row("Company", "Acme", "Name", "Ravi", "Phone", "9876543210"),
		row("Company", "", "Name", "  ", "Phone", ""),
		row("Company", "Globex", "Name", "Sita", "Phone", "9123456780"),
	}

	res := testNormalizer().Normalize(rows, IntentNewLead)

	require.Len(t, res.Leads, 2)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, []int{0, 2}, res.SourceRows)
	assert.Equal(t, "Acme", res.Leads[0].Company)
	assert.Equal(t, "Globex", res.Leads[1].Company)
}

func TestNormalizeKeepsContactOnlyRow(t *testing.T) {
	rows := []Row{row("Company", "", "Name", "", "Mobile", "98765 43210")}

	res := testNormalizer().Normalize(rows, IntentNewLead)

	require.Len(t, res.Leads, 1)
	lead := res.Leads[0]
	assert.Equal(t, "9876543210", lead.Contact)
	assert.Equal(t, records.PlaceholderName, lead.Company)
	assert.Equal(t, records.PlaceholderName, lead.Name)
}

func TestNormalizeBlanksMalformedEmail(t *testing.T) {
	rows := []Row{
		row("Company", "Acme", "Email", "not-an-email"),
		row("Company", "Globex", "Email", " sales@globex.in "),
	}

	res := testNormalizer().Normalize(rows, IntentNewLead)

	require.Len(t, res.Leads, 2)
	assert.Empty(t, res.Leads[0].Email)
	assert.Equal(t, "sales@globex.in", res.Leads[1].Email)
}

func TestNormalizeCleansContact(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"9876543210", "9876543210"},
		{"09876543210", "09876543210"},
		{"9876543210.0", "9876543210"},
		{"9.87654321E9", "9876543210"},
		{"+91 98765-43210", "919876543210"},
		{"n/a", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanContact(tt.raw))
		})
	}
}

func TestNormalizeParsesDates(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2025-01-02", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"03/04/2025", time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC)},
		{"3-Apr-2025", time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC)},
		{"45658", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"45658.5", time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)},
		{"sometime", fixedNow},
		{"", fixedNow},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			res := testNormalizer().Normalize([]Row{row("Company", "Acme", "Date", tt.raw)}, IntentNewLead)
			require.Len(t, res.Leads, 1)
			require.NotNil(t, res.Leads[0].Date)
			assert.True(t, tt.want.Equal(*res.Leads[0].Date), "got %s", res.Leads[0].Date)
		})
	}
}

func TestNormalizeDefaultsDateWithoutColumn(t *testing.T) {
	res := testNormalizer().Normalize([]Row{row("Company", "Acme")}, IntentNewLead)
	require.Len(t, res.Leads, 1)
	assert.True(t, fixedNow.Equal(*res.Leads[0].Date))
}

func TestNormalizeInfersStatus(t *testing.T) {
	rows := []Row{
		row("Company", "A", "Status", "Hot - Interested"),
		row("Company", "B", "Status", "converted"),
		row("Company", "C", "Status", "CLOSED LOST"),
		row("Company", "D", "Status", ""),
		row("Company", "E", "Status", "pending callback"),
	}

	res := testNormalizer().Normalize(rows, IntentClosed)

	require.Len(t, res.Leads, 5)
	assert.Equal(t, records.LeadInterested, res.Leads[0].Status)
	assert.Equal(t, records.LeadConverted, res.Leads[1].Status)
	assert.Equal(t, records.LeadClosed, res.Leads[2].Status)
	assert.Equal(t, records.LeadClosed, res.Leads[3].Status)
	assert.Equal(t, records.LeadClosed, res.Leads[4].Status)
}

func TestNormalizeSanitizesText(t *testing.T) {
	rows := []Row{row(
		"Company", "  <b>Acme</b>   Industries ",
		"Purpose", "gem registration",
		"Address", "<script>x</script>12 MG Road",
		"Sno", strings.Repeat("9", 80),
	)}

	res := testNormalizer().Normalize(rows, IntentNewLead)

	require.Len(t, res.Leads, 1)
	lead := res.Leads[0]
	assert.Equal(t, "Acme Industries", lead.Company)
	assert.Equal(t, "GEM REGISTRATION", lead.Purpose)
	assert.Equal(t, "x12 MG Road", lead.Address)
	assert.Len(t, lead.Sno, records.MaxSnoLen)
}

func TestNormalizeTruncatesLongCompany(t *testing.T) {
	rows := []Row{row("Company", strings.Repeat("a", 300))}
	res := testNormalizer().Normalize(rows, IntentNewLead)
	require.Len(t, res.Leads, 1)
	assert.Len(t, res.Leads[0].Company, records.MaxCompanyLen)
}

func TestNormalizeIsDeterministic(t *testing.T) {
	rows := []Row{
		row("Company", "Acme", "Name", "Ravi", "Phone", "9876543210", "Date", "01/02/2025"),
		row("Company", "", "Name", "", "Phone", ""),
		row("Name", "Sita", "Email", "sita@example.com"),
	}
	n := testNormalizer()

	first := n.Normalize(rows, IntentInterested)
	second := n.Normalize(rows, IntentInterested)

	assert.Equal(t, first, second)
}

func TestIntentFromFilename(t *testing.T) {
	tests := map[string]Intent{
		"converted_leads.csv":  IntentConverted,
		"Follow-ups March.csv": IntentInterested,
		"lost deals.xlsx":      IntentClosed,
		"march.csv":            IntentNewLead,
	}
	for name, want := range tests {
		assert.Equal(t, want, IntentFromFilename(name), name)
	}
}

func TestParseIntent(t *testing.T) {
	assert.Equal(t, IntentConverted, ParseIntent("Converted"))
	assert.Equal(t, IntentNewLead, ParseIntent("whatever"))
	assert.Equal(t, records.LeadNew, ParseIntent("").DefaultStatus())
}

func TestReadCSV(t *testing.T) {
	input := "\ufeffCompany,Name,Phone\n" +
		"Acme,Ravi,9876543210\n" +
		"\n" +
		",,\n" +
		"Globex,Sita\n"

	rows, err := ReadCSV(strings.NewReader(input), 0)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Acme", rows[0].Get("Company"))
	assert.Equal(t, "Sita", rows[1].Get("Name"))
	assert.Equal(t, "", rows[1].Get("Phone"))
}

func TestReadCSVEnforcesLimit(t *testing.T) {
	input := "Company\nA\nB\nC\n"
	_, err := ReadCSV(strings.NewReader(input), 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooManyRows))
}

func TestReadCSVEmpty(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(""), 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRowFromMapOrdersColumns(t *testing.T) {
	r := RowFromMap(map[string]string{"b": "2", "a": "1", "z": "26"}, []string{"z"})
	require.Len(t, r, 3)
	assert.Equal(t, "z", r[0].Column)
	assert.Equal(t, "a", r[1].Column)
	assert.Equal(t, "b", r[2].Column)
}
