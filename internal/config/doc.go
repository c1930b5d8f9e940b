// Package config loads, normalizes, and validates seriesapp configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts),
// reads TOML files, and honours the SERIESAPP_DATA_DIR and
// SERIESAPP_BASE_URL environment overrides. The file is looked up at the
// --config path, then ~/.config/seriesapp/config.toml, then ./seriesapp.toml.
package config
