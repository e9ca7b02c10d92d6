package importer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for spreadsheet formats the importer
// cannot decode, such as legacy binary .xls workbooks.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// ReadFile picks a reader from the upload's extension: .xlsx and .xlsm go
// through ReadXLSX, .xls is refused and everything else is read as CSV.
func ReadFile(r io.Reader, filename string, maxRows int) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(r, maxRows)
	case ".xls":
		return nil, fmt.Errorf("%w: save the workbook as .xlsx or .csv", ErrUnsupportedFormat)
	default:
		return ReadCSV(r, maxRows)
	}
}

// ReadXLSX reads the first worksheet of a workbook. The first non-blank row
// is the header. Cells are read raw, so dates arrive as serial numbers and
// long contact numbers keep every digit.
func ReadXLSX(r io.Reader, maxRows int) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	it, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	defer it.Close()

	next := func() ([]string, error) {
		if !it.Next() {
			if err := it.Error(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		return it.Columns(excelize.Options{RawCellValue: true})
	}

	var header []string
	for header == nil {
		record, err := next()
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read workbook header: %w", err)
		}
		if !blank(record) {
			header = record
		}
	}
	return collect(header, next, maxRows)
}
