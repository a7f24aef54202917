// Package tabular parses the semi-structured spreadsheet exports bundled
// with the regional registers and resolves their inconsistently named
// columns.
//
// The bundled files are hand-exported by the regulators and routinely
// violate strict CSV: stray quotes at end of input, blank padding rows,
// mixed line endings. The parser here tolerates all of that, which is why
// it is not encoding/csv: the stdlib reader rejects malformed quote
// state and neither trims cells nor drops blank rows.
package tabular

import "strings"

// ParseCSV converts raw delimited text into rows of trimmed string cells.
//
// Supported: double-quote-escaped quotes ("" → "), quoted fields containing
// commas or newlines, \r\n and bare \n endings. Fully-blank rows are
// skipped. Callers decide which row is the header. A malformed trailing
// quote at end of input is tolerated by flushing whatever was accumulated.
func ParseCSV(content string) [][]string {
	var rows [][]string
	var row []string
	var cell strings.Builder
	inQuotes := false

	flushRow := func() {
		row = append(row, strings.TrimSpace(cell.String()))
		cell.Reset()
		for _, c := range row {
			if c != "" {
				rows = append(rows, row)
				break
			}
		}
		row = nil
	}

	for i := 0; i < len(content); i++ {
		ch := content[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(content) && content[i+1] == '"' {
				cell.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			row = append(row, strings.TrimSpace(cell.String()))
			cell.Reset()
		case (ch == '\n' || ch == '\r') && !inQuotes:
			if cell.Len() > 0 || len(row) > 0 {
				flushRow()
			}
			if ch == '\r' && i+1 < len(content) && content[i+1] == '\n' {
				i++
			}
		default:
			cell.WriteByte(ch)
		}
	}

	if cell.Len() > 0 || len(row) > 0 {
		flushRow()
	}

	return rows
}
