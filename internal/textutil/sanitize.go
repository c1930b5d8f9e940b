package textutil

import "strings"

// segmentReplacer maps characters that cannot appear inside a single path
// segment to underscores.
var segmentReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	"\x00", "_",
	":", "_",
)

// SanitizeSegment makes value safe to embed in a file name. Path separators
// and other unsafe bytes become underscores, and a value made only of dots is
// replaced so it cannot escape the directory.
func SanitizeSegment(value string) string {
	value = segmentReplacer.Replace(strings.TrimSpace(value))
	if strings.Trim(value, ".") == "" && value != "" {
		return strings.Repeat("_", len(value))
	}
	return value
}
