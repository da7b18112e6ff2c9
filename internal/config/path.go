// Package config loads hamyon settings from file, environment and flags.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

const appName = "hamyon"

// ExpandPath expands a leading ~ and $VAR references in a path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DataDir is where hamyon keeps its data unless told otherwise.
// XDG_DATA_HOME is honored when set.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	return ExpandPath(filepath.Join("~", ".local", "share", appName))
}

// ConfigDir is the directory searched for config.yaml.
func ConfigDir() string {
	return ExpandPath(filepath.Join("~", ".config", appName))
}
