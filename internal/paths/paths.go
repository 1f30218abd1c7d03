// Package paths resolves stencil's config and data directories following
// XDG conventions, with platform defaults for macOS.
package paths

import (
	"path/filepath"
	"runtime"
)

// Getenv is the environment lookup used during resolution; it must return ""
// for unset variables.
type Getenv func(key string) string

// ConfigDir resolves the configuration directory:
//  1. STENCIL_CONFIG_DIR
//  2. macOS: ~/Library/Preferences/stencil
//  3. XDG_CONFIG_HOME/stencil
//  4. ~/.config/stencil
func ConfigDir(getenv Getenv, home string) string {
	return configDirForOS(getenv, home, runtime.GOOS == "darwin")
}

// DataDir resolves the data directory (project registry):
//  1. STENCIL_DATA_DIR
//  2. macOS: ~/Library/Application Support/stencil
//  3. XDG_DATA_HOME/stencil
//  4. ~/.local/share/stencil
func DataDir(getenv Getenv, home string) string {
	return dataDirForOS(getenv, home, runtime.GOOS == "darwin")
}

func configDirForOS(getenv Getenv, home string, darwin bool) string {
	if v := getenv("STENCIL_CONFIG_DIR"); v != "" {
		return v
	}
	if darwin {
		return filepath.Join(home, "Library", "Preferences", "stencil")
	}
	if v := getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "stencil")
	}
	return filepath.Join(home, ".config", "stencil")
}

func dataDirForOS(getenv Getenv, home string, darwin bool) string {
	if v := getenv("STENCIL_DATA_DIR"); v != "" {
		return v
	}
	if darwin {
		return filepath.Join(home, "Library", "Application Support", "stencil")
	}
	if v := getenv("XDG_DATA_HOME"); v != "" {
		return filepath.Join(v, "stencil")
	}
	return filepath.Join(home, ".local", "share", "stencil")
}
