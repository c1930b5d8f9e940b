package preflight

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"seriesapp/internal/cache"
	"seriesapp/internal/logging"
)

const feedCheckTimeout = 5 * time.Second

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckWritableFile verifies that path, or its parent when path does not
// exist yet, accepts writes.
func CheckWritableFile(name, path string) Result {
	target := path
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		target = filepath.Dir(path)
	}
	if err := unix.Access(target, unix.W_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not writable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (writable)", path)}
}

// CheckDataDirLock verifies that no other seriesapp process holds the data
// directory.
func CheckDataDirLock(dir string) Result {
	const name = "Data directory lock"

	repo, err := cache.Open(dir, logging.NewNop())
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	if err := repo.Lock(); err != nil {
		if errors.Is(err, cache.ErrLocked) {
			return Result{Name: name, Detail: "held by another seriesapp process"}
		}
		return Result{Name: name, Detail: err.Error()}
	}
	_ = repo.Unlock()
	return Result{Name: name, Passed: true, Detail: "available"}
}

// CheckFeedHost verifies that the feed host answers HTTP requests.
func CheckFeedHost(ctx context.Context, baseURL, userAgent string) Result {
	const name = "Feed host"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing url"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, feedCheckTimeout)
	defer cancel()

	client := &http.Client{Timeout: feedCheckTimeout, Transport: &http.Transport{Proxy: http.ProxyFromEnvironment}}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodHead, base+"/", nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", base, err)}
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (unreachable: %v)", base, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return Result{Name: name, Detail: fmt.Sprintf("%s (server error %d)", base, resp.StatusCode)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (reachable, %d)", base, resp.StatusCode)}
}
