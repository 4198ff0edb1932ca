package cache

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "sokosolve"

// DefaultCheckpointDir returns the platform-specific data directory used
// for a benchmark run's checkpoint database when the operator doesn't
// supply an explicit --checkpoint path. Adapted from
// internal/storage.GetDatabaseDir, which resolved the same kind of path
// for a BadgerDB-backed settings store.
//
//   - macOS: ~/Library/Application Support/sokosolve/checkpoint/
//   - Linux: ~/.local/share/sokosolve/checkpoint/
//   - Windows: %APPDATA%/sokosolve/checkpoint/
func DefaultCheckpointDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(home, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(home, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(home, ".local", "share")
		}
	}

	dir := filepath.Join(baseDir, appName, "checkpoint")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
