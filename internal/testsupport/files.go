package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// WriteLines writes lines, newline terminated, to path, creating parent
// directories as needed.
func WriteLines(t testing.TB, path string, lines ...string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadLines returns the lines of path without terminators.
func ReadLines(t testing.TB, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	text := strings.TrimRight(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Backdate sets the modification time of path to days calendar days ago.
func Backdate(t testing.TB, path string, days int) {
	t.Helper()

	when := time.Now().AddDate(0, 0, -days)
	if err := os.Chtimes(path, when, when); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}

// MakeReadOnly removes write permission from dir for the rest of the test so
// saves into it fail. The test is skipped when running as root, where
// permissions are not enforced.
func MakeReadOnly(t testing.TB, dir string) {
	t.Helper()

	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatalf("chmod %s: %v", dir, err)
	}
	t.Cleanup(func() {
		_ = os.Chmod(dir, 0o755)
	})
}
