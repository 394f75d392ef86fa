// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the session token goes to the
// OS keychain (or the file token store on hosts without one).
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"authly/cli/internal/xdg"
)

// DefaultAPIBaseURL is the companion API used when nothing else is configured.
const DefaultAPIBaseURL = "http://localhost:3000"

// Config holds non-sensitive CLI settings.
type Config struct {
	APIBaseURL string `json:"api_base_url"`
	LogLevel   string `json:"log_level"`
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; missing file returns defaults.
// The AUTHLY_API_URL environment variable overrides the configured base URL.
func Load() (Config, error) {
	c, err := load()
	if err != nil {
		return c, err
	}
	if v := os.Getenv("AUTHLY_API_URL"); v != "" {
		c.APIBaseURL = v
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return c, nil
}

func load() (Config, error) {
	var c Config
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, err
	}
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
