package ledger

import (
	"strconv"
	"time"
)

// Columns is the fixed, ordered export header. It is identical across the
// CSV, Excel, text and printable exporters; spreadsheet software relies on
// the order and the literal names.
func Columns() []string {
	return []string{
		"Manual Date",
		"DAYS",
		"Customer Name",
		"Mobile Number",
		"Amount (Rs.)",
		"Created At",
	}
}

// ExportRow is the ordered export projection of an Entry. It is derived on
// every export and never cached.
type ExportRow struct {
	ManualDate   string
	Days         string // empty when the manual date does not parse
	CustomerName string
	MobileNumber string
	AmountRs     int64
	CreatedAt    string
}

// createdAtLayout renders the created-at timestamp for humans. The stored
// value is unix nanoseconds; it is truncated to milliseconds first.
const createdAtLayout = "02/01/2006, 15:04:05"

// ToExportRow projects an entry into its export shape. now anchors the
// DAYS column.
func ToExportRow(e Entry, now time.Time) ExportRow {
	days := ""
	if d, ok := DaysSince(e.ManualDate, now); ok {
		days = strconv.Itoa(d)
	}
	created := ""
	if e.CreatedAt != 0 {
		created = time.UnixMilli(e.CreatedAt / 1_000_000).Format(createdAtLayout)
	}
	return ExportRow{
		ManualDate:   e.ManualDate,
		Days:         days,
		CustomerName: e.CustomerName,
		MobileNumber: e.MobileNumber,
		AmountRs:     e.AmountRs,
		CreatedAt:    created,
	}
}

// Cells renders the row as strings in column order.
func (r ExportRow) Cells() []string {
	return []string{
		r.ManualDate,
		r.Days,
		r.CustomerName,
		r.MobileNumber,
		strconv.FormatInt(r.AmountRs, 10),
		r.CreatedAt,
	}
}
