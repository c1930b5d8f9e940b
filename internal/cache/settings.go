package cache

import (
	"errors"
	"strconv"
	"strings"
)

// Settings keys as written to the settings file.
const (
	keyProxyAddress   = "proxyAddress"
	keyProxyPort      = "proxyPort"
	keyProxyUseSystem = "proxyUseSystem"
)

// Settings holds the user preferences persisted between runs.
type Settings struct {
	ProxyUseSystem bool   `json:"proxy_use_system"`
	ProxyAddress   string `json:"proxy_address"`
	ProxyPort      int    `json:"proxy_port"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{}
}

// ParseSettings applies "key value" lines on top of base. Unknown keys,
// lines without a value, and unparseable values are ignored.
func ParseSettings(lines []string, base Settings) Settings {
	s := base
	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) < 2 {
			continue
		}
		value := words[1]
		switch words[0] {
		case keyProxyAddress:
			s.ProxyAddress = value
		case keyProxyPort:
			if port, err := strconv.Atoi(value); err == nil {
				s.ProxyPort = port
			}
		case keyProxyUseSystem:
			if v, err := strconv.ParseBool(value); err == nil {
				s.ProxyUseSystem = v
			}
		}
	}
	return s
}

// Lines renders the settings file content.
func (s Settings) Lines() []string {
	return []string{
		keyProxyAddress + " " + s.ProxyAddress,
		keyProxyPort + " " + strconv.Itoa(s.ProxyPort),
		keyProxyUseSystem + " " + strconv.FormatBool(s.ProxyUseSystem),
	}
}

// LoadSettings reads the settings file. When the file is missing or
// unreadable the defaults are returned together with ErrCacheMiss.
func (r *Repository) LoadSettings() (Settings, error) {
	lines, _, err := r.readLines(SettingsFile)
	if err != nil {
		return DefaultSettings(), err
	}
	return ParseSettings(lines, DefaultSettings()), nil
}

// SaveSettings rewrites the settings file.
func (r *Repository) SaveSettings(s Settings) error {
	return r.write(SettingsFile, s.Lines())
}

// IsMiss reports whether err is a cache miss.
func IsMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}
