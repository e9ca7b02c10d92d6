package importer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayouts are tried in order. Day-first layouts precede month-first
// ones, so 03/04/2025 reads as 3 April.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"01/02/2006",
	"2/1/06",
	"2 Jan 2006",
	"02 Jan 2006",
	"2-Jan-2006",
	"02-Jan-2006",
	"2-Jan-06",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
}

// spreadsheetEpoch is day zero of the 1900 date system as used by
// spreadsheet exports (it absorbs the historical 1900 leap-year bug).
var spreadsheetEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

const maxSpreadsheetSerial = 2958465 // 9999-12-31

// parseDate reads raw in loc. It reports false when no layout matches.
func parseDate(raw string, loc *time.Location) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}

	if serial, err := decimal.NewFromString(value); err == nil {
		return fromSerial(serial, loc)
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func fromSerial(serial decimal.Decimal, loc *time.Location) (time.Time, bool) {
	if serial.LessThan(decimal.NewFromInt(1)) || serial.GreaterThan(decimal.NewFromInt(maxSpreadsheetSerial)) {
		return time.Time{}, false
	}
	days := serial.IntPart()
	frac := serial.Sub(decimal.NewFromInt(days))
	seconds := frac.Mul(decimal.NewFromInt(86400)).Round(0).IntPart()

	base := spreadsheetEpoch.AddDate(0, 0, int(days)).Add(time.Duration(seconds) * time.Second)
	return time.Date(base.Year(), base.Month(), base.Day(), base.Hour(), base.Minute(), base.Second(), 0, loc), true
}
