package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultConfigPath     = "~/.config/seriesapp/config.toml"
	defaultDataDir        = "~/.config/seriesapp"
	defaultBaseURL        = "https://epguides.com"
	defaultUserAgent      = "seriesapp/dev"
	defaultTimeoutSeconds = 30
	defaultMaxBodyMiB     = 16
	defaultMinIntervalMs  = 250
	defaultLogFormat      = "console"
	defaultLogLevel       = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDirectory(),
		},
		Source: Source{
			BaseURL:           defaultBaseURL,
			UserAgent:         defaultUserAgent,
			TimeoutSeconds:    defaultTimeoutSeconds,
			MaxBodyMiB:        defaultMaxBodyMiB,
			MinIntervalMillis: defaultMinIntervalMs,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultDataDirectory() string {
	if base, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "seriesapp")
	}
	return defaultDataDir
}
