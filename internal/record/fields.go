package record

import "strings"

// SplitFields splits a feed line on commas that are not inside double quotes.
// Quote characters are removed from the returned fields. An empty line yields
// a single empty field.
func SplitFields(line string) []string {
	fields := make([]string, 0, 8)
	var b strings.Builder
	quoted := false
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
		case r == ',' && !quoted:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	return append(fields, b.String())
}

func field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return fields[i]
}

// TrimLineEnd strips trailing carriage returns and newlines.
func TrimLineEnd(line string) string {
	return strings.TrimRight(line, "\r\n")
}

// SplitLines splits a downloaded body into lines, tolerating CRLF endings.
func SplitLines(body []byte) []string {
	text := string(body)
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, TrimLineEnd(line))
	}
	return out
}
