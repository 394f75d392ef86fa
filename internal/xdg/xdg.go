// Package xdg provides helpers to resolve XDG Base Directory paths for authly.
// It handles fallback to traditional locations when XDG environment variables
// are not set and ensures private permissions for directories that may hold
// credentials or cached session data.
package xdg

import (
	"os"
	"path/filepath"
)

// ConfigDir returns the XDG config directory for authly.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/authly when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	dir := filepath.Join(base, "authly")
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}

// StateDir returns the XDG state directory for authly, used for the offline
// session cache. Falls back to ~/.local/state/authly when XDG_STATE_HOME is
// unset.
func StateDir() (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(base, "authly")
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
