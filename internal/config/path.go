// Package config loads the audit configuration from viper and rule files.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DefaultDir returns the directory holding config.yaml and the audit database.
func DefaultDir() string {
	return ExpandPath("~/.config/freightaudit")
}

// DefaultDatabasePath returns the audit history database location.
func DefaultDatabasePath() string {
	return filepath.Join(DefaultDir(), "audits.db")
}
