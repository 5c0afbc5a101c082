package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	consts "github.com/khanhnv2901/urlscore/internal/shared/constants"
)

const dataDirEnvVar = "URLSCORE_DATA_DIR"

// getDataDir returns the per-user data directory that holds the scan log,
// following the XDG Base Directory specification on Linux/Unix.
func getDataDir() (string, error) {
	if override := os.Getenv(dataDirEnvVar); override != "" {
		return override, nil
	}

	switch runtime.GOOS {
	case "windows":
		// Windows: %LOCALAPPDATA%\urlscore
		baseDir := os.Getenv("LOCALAPPDATA")
		if baseDir == "" {
			baseDir = os.Getenv("APPDATA")
		}
		if baseDir == "" {
			return "", fmt.Errorf("could not determine Windows data directory")
		}
		return filepath.Join(baseDir, consts.AppDirName), nil

	case "darwin":
		// macOS: ~/Library/Application Support/urlscore
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine home directory: %w", err)
		}
		return filepath.Join(homeDir, "Library", "Application Support", consts.AppDirName), nil

	default:
		// Priority: $XDG_DATA_HOME/urlscore > ~/.local/share/urlscore
		if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
			return filepath.Join(xdgDataHome, consts.AppDirName), nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".local", "share", consts.AppDirName), nil
	}
}
