package sheets

import "strings"

// Row maps normalized header names to cell values
type Row map[string]string

// Lookup returns the first non-empty value among keys, tried in order
func (r Row) Lookup(keys ...string) (string, bool) {
	for _, k := range keys {
		if v := r[k]; v != "" {
			return v, true
		}
	}
	return "", false
}

// Decode parses spreadsheet CSV export text. The first line is the header;
// header names are lower-cased with spaces turned into underscores. The header
// is split with the same quote handling as data rows, so a quoted header cell
// loses its quotes and may contain commas.
//
// Commas inside double quotes are literal. Escaped quotes ("") and newlines
// inside quoted cells are not supported: a quote only toggles quoting and is
// dropped from the cell. Rows with fewer cells than the header are skipped,
// extra cells are ignored.
func Decode(text string) []Row {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return nil
	}

	headers := splitLine(lines[0])
	for i, h := range headers {
		headers[i] = strings.ReplaceAll(strings.ToLower(h), " ", "_")
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := splitLine(line)
		if len(values) < len(headers) {
			continue
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			row[h] = values[i]
		}
		rows = append(rows, row)
	}
	return rows
}

// splitLine splits on commas outside double-quote spans and trims each cell
func splitLine(line string) []string {
	var (
		values   []string
		current  strings.Builder
		inQuotes bool
	)
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	return append(values, strings.TrimSpace(current.String()))
}
