package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrTooManyRows is returned when an upload exceeds the row limit.
var ErrTooManyRows = errors.New("too many rows")

const utf8BOM = "\ufeff"

// ReadCSV parses a header row followed by data rows. Blank lines are
// skipped and ragged rows are tolerated. maxRows <= 0 means unlimited.
func ReadCSV(r io.Reader, maxRows int) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	return collect(header, func() ([]string, error) {
		record, err := reader.Read()
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		return record, err
	}, maxRows)
}

// collect pairs every record returned by next with header until next
// reports io.EOF. Blank records are skipped.
func collect(header []string, next func() ([]string, error), maxRows int) ([]Row, error) {
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	rows := make([]Row, 0)
	for {
		record, err := next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(rows)+2, err)
		}
		if blank(record) {
			continue
		}
		if maxRows > 0 && len(rows) >= maxRows {
			return nil, fmt.Errorf("%w: limit is %d", ErrTooManyRows, maxRows)
		}

		row := make(Row, 0, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			value := ""
			if i < len(record) {
				value = record[i]
			}
			row = append(row, Cell{Column: col, Value: value})
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
