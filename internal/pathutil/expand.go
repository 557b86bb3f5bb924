package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandTilde expands a leading ~ in a path to the user's home directory.
// Both "~/" and "~\" are accepted so Windows-style config values work too.
func ExpandTilde(path string) string {
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Normalize expands a leading tilde and returns an absolute, clean path.
func Normalize(path string) (string, error) {
	abs, err := filepath.Abs(ExpandTilde(path))
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}
