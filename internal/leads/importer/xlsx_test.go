package importer

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadXLSXKeepsRawValues(t *testing.T) {
	buf := workbook(t,
		[]any{"Company", "Contact Person", "Mobile", "Date"},
		[]any{"Acme", "Ravi", 9876543210, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)},
		[]any{"", "", "", ""},
		[]any{"Globex", "Sita", "+91 98765-43210"},
	)

	rows, err := ReadXLSX(buf, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "9876543210", rows[0].Get("Mobile"))
	assert.Equal(t, "", rows[1].Get("Date"))

	result := testNormalizer().Normalize(rows, IntentNewLead)
	require.Len(t, result.Leads, 2)
	require.NotNil(t, result.Leads[0].Date)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), *result.Leads[0].Date)
	assert.Equal(t, "919876543210", result.Leads[1].Contact)
}

func TestReadXLSXRowLimit(t *testing.T) {
	buf := workbook(t, []any{"Company"}, []any{"A"}, []any{"B"}, []any{"C"})
	_, err := ReadXLSX(buf, 2)
	assert.True(t, errors.Is(err, ErrTooManyRows))
}

func TestReadFileDispatchesOnExtension(t *testing.T) {
	rows, err := ReadFile(workbook(t, []any{"Company"}, []any{"Acme"}), "Leads.XLSX", 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0].Get("Company"))

	rows, err = ReadFile(strings.NewReader("Company\nGlobex\n"), "leads.csv", 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, err = ReadFile(strings.NewReader("\xd0\xcf\x11\xe0"), "old.xls", 0)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = ReadFile(strings.NewReader("not a zip"), "broken.xlsx", 0)
	assert.Error(t, err)
}
