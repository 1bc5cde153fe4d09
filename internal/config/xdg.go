package config

import (
	"os"
	"path/filepath"
)

const appName = "accesstwin"

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

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultThemesPath is where a theme table override is looked for when the
// config names none. The file is optional.
func DefaultThemesPath() string {
	return filepath.Join(XDGConfigHome(), appName, "themes.toml")
}

// DefaultDBPath returns the default path for the SQLite audit database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, appName+".db")
}

// DefaultLogPath returns the default path for the rotated log file.
func DefaultLogPath() string {
	return filepath.Join(XDGDataHome(), appName, "logs", appName+".log")
}
