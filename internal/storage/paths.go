package storage

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-faster/errors"
)

const (
	appName  = "fenkey"
	indexDir = "index"
)

// dataRoot returns the per-user base directory that application data lives
// under: ~/Library/Application Support on macOS, %APPDATA% on Windows and
// $XDG_DATA_HOME or ~/.local/share elsewhere.
func dataRoot() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "AppData", "Roaming"), nil
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}

// DefaultDir returns the index directory used when none is configured,
// creating it if needed.
func DefaultDir() (string, error) {
	root, err := dataRoot()
	if err != nil {
		return "", errors.Wrap(err, "locate data dir")
	}

	dir := filepath.Join(root, appName, indexDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create index dir")
	}
	return dir, nil
}
