package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSource() error {
	u, err := url.Parse(c.Source.BaseURL)
	if err != nil {
		return fmt.Errorf("source.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("source.base_url must use http or https, got %q", c.Source.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("source.base_url must include a host, got %q", c.Source.BaseURL)
	}
	if c.Source.TimeoutSeconds < 0 {
		return errors.New("source.timeout_seconds must be positive")
	}
	if c.Source.MaxBodyMiB < 0 {
		return errors.New("source.max_body_mib must be positive")
	}
	if c.Source.MinIntervalMillis < 0 {
		return errors.New("source.min_interval_ms must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
