// Package config provides configuration management for the Vimix launcher.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// LogDirectory returns the unified log directory for all launcher logs.
//
// Locations:
//   - Windows: %LOCALAPPDATA%\Vimix\logs
//   - Unix: ~/.config/vimix/logs
func LogDirectory() string {
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), "vimix-logs")
			}
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, "Vimix", "logs")
	}

	// Unix: Use XDG config directory
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "vimix-logs")
		}
		return filepath.Join(homeDir, ".config", "vimix", "logs")
	}
	return filepath.Join(configDir, "vimix", "logs")
}

// EnsureLogDirectory creates the log directory if it doesn't exist.
// Uses 0700 permissions to restrict log access to owner only.
func EnsureLogDirectory() error {
	return os.MkdirAll(LogDirectory(), 0700)
}

// DefaultConfigPath returns the default launcher config file location.
//
// Locations:
//   - Windows: %LOCALAPPDATA%\Vimix\launcher.toml
//   - Unix: ~/.config/vimix/launcher.toml
func DefaultConfigPath() string {
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), "vimix-launcher.toml")
			}
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, "Vimix", "launcher.toml")
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "vimix-launcher.toml")
		}
		return filepath.Join(homeDir, ".config", "vimix", "launcher.toml")
	}
	return filepath.Join(configDir, "vimix", "launcher.toml")
}

// DefaultResourceRoot returns the resource root supplied by the host
// packaging layer: the directory containing the launcher executable.
// Packaged builds install the resources/ directory next to the binary.
func DefaultResourceRoot() (string, error) {
	exePath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exePath), nil
}
