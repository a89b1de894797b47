// Package config turns viper settings into the typed configuration of powerstat:
// data source, reference date, report labels, server and Sheets settings.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a user-supplied location such as the data file, the
// certificate directory or a service account key. A leading "~" or "~/" becomes
// the home directory, then $VAR references are substituted. "~name" forms are
// left alone.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}

	if rest, ok := homeRelative(path); ok {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, rest)
		}
	}

	return os.ExpandEnv(path)
}

func homeRelative(path string) (string, bool) {
	switch {
	case path == "~":
		return "", true
	case strings.HasPrefix(path, "~/"):
		return path[2:], true
	default:
		return "", false
	}
}
