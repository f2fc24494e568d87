package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/vimix/vimix-desktop/internal/constants"
)

// Config holds launcher settings. All fields are optional; zero values
// fall back to packaged defaults so a missing config file always works.
type Config struct {
	// ResourceRoot overrides the resource root supplied by the host
	// packaging layer. Empty means "directory of the executable".
	ResourceRoot string `toml:"resource_root"`

	// Debug enables debug-level logging.
	Debug bool `toml:"debug"`

	// Notifications enables desktop notifications for sidecar failures.
	Notifications bool `toml:"notifications"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Notifications: true,
	}
}

// Load reads the config file at path, or the default location when path
// is empty. A missing file is not an error; a malformed one is.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays environment variable overrides onto the config.
func (c *Config) applyEnv() {
	if root := os.Getenv(constants.EnvResourceRoot); root != "" {
		c.ResourceRoot = root
	}
	if os.Getenv(constants.EnvDebug) != "" {
		c.Debug = true
	}
}
