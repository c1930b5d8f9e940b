package preflight

import (
	"context"

	"seriesapp/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes every preflight check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDataDirLock(cfg.Paths.DataDir),
		CheckFeedHost(ctx, cfg.Source.BaseURL, cfg.Source.UserAgent),
	}
	if cfg.Logging.File != "" {
		results = append(results, CheckWritableFile("Log file", cfg.Logging.File))
	}
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
