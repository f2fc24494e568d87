package cli

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vimix/vimix-desktop/internal/config"
	"github.com/vimix/vimix-desktop/internal/constants"
	"github.com/vimix/vimix-desktop/internal/logging"
)

func TestApplyLogLevel_EnvDebug(t *testing.T) {
	t.Setenv(constants.EnvDebug, "1")
	defer logging.SetGlobalLevel(zerolog.InfoLevel)

	// Point loadConfig at a path with no file so only env applies.
	cfgFile = filepath.Join(t.TempDir(), "launcher.toml")
	defer func() { cfgFile = "" }()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if !cfg.Debug {
		t.Fatalf("cfg.Debug = false with %s set", constants.EnvDebug)
	}

	logging.SetGlobalLevel(zerolog.InfoLevel)
	applyLogLevel(cfg)
	if got := zerolog.GlobalLevel(); got != zerolog.DebugLevel {
		t.Errorf("global level = %v after applyLogLevel, want %v", got, zerolog.DebugLevel)
	}
}

func TestApplyLogLevel_Default(t *testing.T) {
	defer logging.SetGlobalLevel(zerolog.InfoLevel)

	logging.SetGlobalLevel(zerolog.InfoLevel)
	applyLogLevel(config.Default())
	if got := zerolog.GlobalLevel(); got != zerolog.InfoLevel {
		t.Errorf("global level = %v without debug, want %v", got, zerolog.InfoLevel)
	}
}
