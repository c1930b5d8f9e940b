package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"seriesapp/internal/cache"
	"seriesapp/internal/config"
	"seriesapp/internal/logging"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckWritableFile_MissingFileInWritableDir(t *testing.T) {
	result := CheckWritableFile("log", filepath.Join(t.TempDir(), "seriesapp.log"))
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckDataDirLock(t *testing.T) {
	dir := t.TempDir()
	if result := CheckDataDirLock(dir); !result.Passed {
		t.Fatalf("expected free lock, got: %s", result.Detail)
	}

	repo, err := cache.Open(dir, logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.Lock(); err != nil {
		t.Fatal(err)
	}
	defer repo.Unlock()

	if result := CheckDataDirLock(dir); result.Passed {
		t.Fatal("expected held lock to fail the check")
	}
}

func TestCheckFeedHost(t *testing.T) {
	tests := []struct {
		name   string
		status int
		pass   bool
	}{
		{"ok", http.StatusOK, true},
		{"redirect page", http.StatusNotFound, true},
		{"server error", http.StatusBadGateway, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodHead {
					t.Errorf("unexpected method %s", r.Method)
				}
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			result := CheckFeedHost(context.Background(), srv.URL, "seriesapp/test")
			if result.Passed != tt.pass {
				t.Fatalf("Passed = %v, detail %q", result.Passed, result.Detail)
			}
		})
	}
}

func TestCheckFeedHost_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if result := CheckFeedHost(context.Background(), url, ""); result.Passed {
		t.Fatal("expected closed server to fail")
	}
}

func TestRunAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	cfg.Source.BaseURL = srv.URL

	results := RunAll(context.Background(), &cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if Failed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}

	if RunAll(context.Background(), nil) != nil {
		t.Fatal("expected nil results for nil config")
	}
}
