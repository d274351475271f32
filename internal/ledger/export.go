package ledger

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// ErrNoEntries is returned by every exporter when there is nothing to
// render, before any I/O is attempted.
var ErrNoEntries = errors.New("no entries to export")

// utf8BOM lets spreadsheet software detect the encoding of the
// Excel-flavoured CSV export.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// EscapeCSV quotes a field when it contains a comma, quote or newline,
// doubling embedded quotes. Round-trips through SplitDelimited.
func EscapeCSV(field string) string {
	if strings.ContainsAny(field, ",\"\n\r") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}

func exportRows(entries []Entry, now time.Time) [][]string {
	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, Columns())
	for _, e := range entries {
		rows = append(rows, ToExportRow(e, now).Cells())
	}
	return rows
}

// RenderCSV renders header + entries as comma-delimited text.
func RenderCSV(entries []Entry, now time.Time) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	var buf bytes.Buffer
	for _, row := range exportRows(entries, now) {
		escaped := make([]string, len(row))
		for i, cell := range row {
			escaped[i] = EscapeCSV(cell)
		}
		buf.WriteString(strings.Join(escaped, ","))
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// RenderExcelCSV is the Excel compatibility surface: byte-identical CSV
// with a leading UTF-8 BOM. Callers must serve it under a .csv filename.
func RenderExcelCSV(entries []Entry, now time.Time) ([]byte, error) {
	csv, err := RenderCSV(entries, now)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, utf8BOM...), csv...), nil
}

// RenderText renders a fixed-width table: every column is padded to the
// widest of its header and cells, columns joined with " | ", with a title
// line, a full-width "=" rule and a "-+-" rule under the header.
func RenderText(entries []Entry, title string, now time.Time) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	rows := exportRows(entries, now)

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(row []string) string {
		padded := make([]string, len(row))
		for i, cell := range row {
			padded[i] = cell + strings.Repeat(" ", widths[i]-len(cell))
		}
		return strings.Join(padded, " | ")
	}
	ruler := func() string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat("-", w)
		}
		return strings.Join(parts, "-+-")
	}

	header := line(rows[0])
	var buf bytes.Buffer
	buf.WriteString(title + "\n")
	buf.WriteString(strings.Repeat("=", len(header)) + "\n")
	buf.WriteString(header + "\n")
	buf.WriteString(ruler() + "\n")
	for _, row := range rows[1:] {
		buf.WriteString(line(row) + "\n")
	}
	return buf.Bytes(), nil
}

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 24px; }
h1 { font-size: 18px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #444; padding: 4px 8px; font-size: 12px; text-align: left; }
th { background: #eee; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
<script>window.onload = function () { window.print(); };</script>
</body>
</html>
`))

// RenderHTML builds the printable document: a minimal styled page
// embedding the export table, which the viewer paginates and prints to
// PDF. Cell text is escaped by the template engine.
func RenderHTML(entries []Entry, title string, now time.Time) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	rows := exportRows(entries, now)
	var buf bytes.Buffer
	err := printTemplate.Execute(&buf, map[string]any{
		"Title":   title,
		"Columns": rows[0],
		"Rows":    rows[1:],
	})
	if err != nil {
		return nil, fmt.Errorf("render print document: %w", err)
	}
	return buf.Bytes(), nil
}
