package ledger

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Entries"

// IsXLSX reports whether data starts with the zip container magic. Files
// named .xlsx that are really CSV text (a common export shortcut) fail
// this check and fall back to the text importer.
func IsXLSX(data []byte) bool {
	return len(data) >= 2 && data[0] == 'P' && data[1] == 'K'
}

// RenderXLSX writes a genuine workbook with the canonical columns.
func RenderXLSX(entries []Entry, now time.Time) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	f := excelize.NewFile()
	defer f.Close()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, name := range Columns() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, name)
	}
	for idx, e := range entries {
		row := ToExportRow(e, now)
		values := []any{row.ManualDate, row.Days, row.CustomerName, row.MobileNumber, row.AmountRs, row.CreatedAt}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, idx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 8)
	f.SetColWidth(sheetName, "C", "C", 24)
	f.SetColWidth(sheetName, "D", "D", 16)
	f.SetColWidth(sheetName, "E", "E", 12)
	f.SetColWidth(sheetName, "F", "F", 20)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseXLSX imports a genuine workbook: rows of the first sheet are
// extracted and fed through the same header-mapping and validation
// pipeline as delimited text.
func ParseXLSX(data []byte) (*ImportResult, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		blank := true
		for _, cell := range row {
			if cell != "" {
				blank = false
				break
			}
		}
		if !blank {
			records = append(records, row)
		}
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	return ParseRecords(records)
}
