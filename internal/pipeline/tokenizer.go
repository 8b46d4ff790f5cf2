package pipeline

import "strings"

// ParseLine splits one CSV line into trimmed fields. Bytes other than ',' and '"'
// are copied unchanged, so invalid UTF-8 passes through as is.
// Commas inside a double-quoted section are literal; every '"' toggles the quote
// state and is dropped. Embedded quotes cannot be escaped, and an unbalanced quote
// leaves the rest of the line in the last field. The result always has at least one field.
func ParseLine(line string) []string {
	fields := make([]string, 0, strings.Count(line, ",")+1)
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		switch ch := line[i]; {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	return append(fields, strings.TrimSpace(current.String()))
}
