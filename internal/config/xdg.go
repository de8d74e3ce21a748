package config

import (
	"os"
	"path/filepath"
)

const (
	appName    = "tuidict"
	configFile = "config.toml"
	dbFile     = appName + ".db"
)

// xdgBase returns $env, or home joined with fallback. Relative values are
// ignored as the XDG base directory rules require.
func xdgBase(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" && filepath.IsAbs(v) {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// XDGConfigHome is where the config file directory lives.
func XDGConfigHome() string {
	return xdgBase("XDG_CONFIG_HOME", ".config")
}

// XDGDataHome is where the history database directory lives.
func XDGDataHome() string {
	return xdgBase("XDG_DATA_HOME", ".local", "share")
}

// DefaultDBPath returns the history database path.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, dbFile)
}

// DefaultConfigPath returns the TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, configFile)
}
