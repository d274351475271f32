package ledger

import (
	"errors"
	"strings"
)

// Structural import failures. Nothing is imported when one of these is
// returned; per-row validation problems are reported in ImportResult
// instead and do not abort the operation.
var (
	ErrEmptyFile           = errors.New("file is empty")
	ErrNoRecognizedColumns = errors.New("no recognized columns")
	ErrNoDataRows          = errors.New("no data rows")
)

// Field identifies one of the four known import columns. Header cells
// that match no synonym map to FieldUnrecognized explicitly.
type Field int

const (
	FieldUnrecognized Field = iota
	FieldDate
	FieldName
	FieldMobile
	FieldAmount
)

// headerSynonyms maps normalized (lowercased, trimmed) header text to its
// target field. The dictionary is fixed; matching is exact, never fuzzy.
var headerSynonyms = map[string]Field{
	"date":             FieldDate,
	"manual date":      FieldDate,
	"manualdate":       FieldDate,
	"entry date":       FieldDate,
	"transaction date": FieldDate,

	"name":          FieldName,
	"customer":      FieldName,
	"customer name": FieldName,
	"customername":  FieldName,

	"mobile":        FieldMobile,
	"mobile number": FieldMobile,
	"mobilenumber":  FieldMobile,
	"mobile no":     FieldMobile,
	"phone":         FieldMobile,
	"phone number":  FieldMobile,
	"contact":       FieldMobile,

	"amount":       FieldAmount,
	"amount rs":    FieldAmount,
	"amountrs":     FieldAmount,
	"amount (rs.)": FieldAmount,
	"amount (rs)":  FieldAmount,
	"rs":           FieldAmount,
}

// mapHeader resolves one header cell to a known field.
func mapHeader(cell string) Field {
	key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(cell, "\uFEFF")))
	if f, ok := headerSynonyms[key]; ok {
		return f
	}
	return FieldUnrecognized
}

// ParsedRow is an unvalidated candidate entry extracted from one import
// line. All fields are raw strings; it lives only for the duration of a
// single import.
type ParsedRow struct {
	ManualDate   string `json:"manual_date"`
	CustomerName string `json:"customer_name"`
	MobileNumber string `json:"mobile_number"`
	AmountRs     string `json:"amount_rs"`
}

// RowError reports a validation failure for one source row. Row numbers
// are 1-based and count the header line as row 1, matching how a person
// reads the file.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult partitions an import into valid candidates and per-row
// errors. Both slices preserve file order; a file can produce both.
type ImportResult struct {
	ValidRows []ParsedRow `json:"valid_rows"`
	Errors    []RowError  `json:"errors"`
}

// Parse reads delimited file text into an ImportResult. It fails only on
// structural problems: an empty file, a header with zero recognized
// columns, or a file that yielded no data rows at all. A file whose rows
// all fail validation is a success carrying only Errors.
func Parse(text string) (*ImportResult, error) {
	var lines []string
	for _, line := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' }) {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, ErrEmptyFile
	}

	records := make([][]string, 0, len(lines))
	for _, line := range lines {
		records = append(records, SplitDelimited(line))
	}
	return ParseRecords(records)
}

// ParseRecords runs the header-mapping and validation pipeline over
// already-tokenized records (header first). The genuine-XLSX import path
// reuses it with rows extracted from the workbook.
func ParseRecords(records [][]string) (*ImportResult, error) {
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	fields := make([]Field, len(records[0]))
	recognized := 0
	for i, cell := range records[0] {
		fields[i] = mapHeader(cell)
		if fields[i] != FieldUnrecognized {
			recognized++
		}
	}
	if recognized == 0 {
		return nil, ErrNoRecognizedColumns
	}

	result := &ImportResult{}
	for i, record := range records[1:] {
		rowNum := i + 2 // header is row 1

		var row ParsedRow
		mapped := false
		for pos, value := range record {
			if pos >= len(fields) {
				break
			}
			switch fields[pos] {
			case FieldDate:
				row.ManualDate = value
			case FieldName:
				row.CustomerName = value
			case FieldMobile:
				row.MobileNumber = value
			case FieldAmount:
				row.AmountRs = value
			default:
				continue
			}
			mapped = true
		}
		// a line too short to reach any mapped column carries nothing
		if !mapped {
			continue
		}

		if err := validateRow(row); err != nil {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: err.Error()})
			continue
		}
		result.ValidRows = append(result.ValidRows, row)
	}

	if len(result.ValidRows) == 0 && len(result.Errors) == 0 {
		return nil, ErrNoDataRows
	}
	return result, nil
}

// validateRow applies the field validators in their fixed order and
// returns the first failure only.
func validateRow(row ParsedRow) error {
	if err := ValidateRequired(row.ManualDate, "Manual Date"); err != nil {
		return err
	}
	if err := ValidateRequired(row.CustomerName, "Customer Name"); err != nil {
		return err
	}
	if err := ValidateMobileNumber(row.MobileNumber); err != nil {
		return err
	}
	return ValidateAmount(row.AmountRs)
}

// SplitDelimited tokenizes one comma-delimited record with quote
// awareness: a double quote toggles quoted mode, a doubled quote inside
// quoted text is a literal quote, and a comma outside quotes ends the
// field. Each field is whitespace-trimmed after parsing.
func SplitDelimited(line string) []string {
	var (
		fields  []string
		current strings.Builder
		quoted  bool
	)
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if quoted && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
			} else {
				quoted = !quoted
			}
		case ch == ',' && !quoted:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}
