package store

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "marcusperft"

// DefaultDir returns the platform-specific directory the CLI keeps its
// result store in, creating it if it does not exist:
//   - macOS:   ~/Library/Application Support/marcusperft/db/
//   - Windows: %APPDATA%/marcusperft/db/
//   - other:   $XDG_DATA_HOME/marcusperft/db/, with ~/.local/share in
//     place of $XDG_DATA_HOME when it is unset
func DefaultDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName, "db")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}
