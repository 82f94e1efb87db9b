// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "fieldmask"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultFormDir returns the default directory for form definitions.
func DefaultFormDir() string {
	return filepath.Join(XDGConfigHome(), appName, "forms")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}
