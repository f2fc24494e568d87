package cli

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vimix/vimix-desktop/internal/bridge"
	"github.com/vimix/vimix-desktop/internal/config"
	"github.com/vimix/vimix-desktop/internal/logging"
	"github.com/vimix/vimix-desktop/internal/notify"
)

// newRunCmd creates the explicit form of the default command.
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the backend worker and keep it running",
		Long: `Start the vimix-processor backend on a freshly allocated local port
and keep it running until the application receives SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLauncher(cmd.Context())
		},
	}
}

// runLauncher performs the full startup sequence and then blocks until
// the context is cancelled by a shutdown signal.
//
// Startup errors are fatal here and nowhere else: the components below
// return classified errors and this is the single handler that logs
// and exits.
func runLauncher(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	applyLogLevel(cfg)

	// Launcher diagnostics also go to a log file so failed installs can
	// be debugged after the window is gone.
	if err := config.EnsureLogDirectory(); err == nil {
		logFile := filepath.Join(config.LogDirectory(), "launcher.log")
		if fileLogger, err := logging.NewLoggerWithFile("cli", logFile); err == nil {
			logger = fileLogger
		} else {
			logger.Warn().Err(err).Str("file", logFile).Msg("Failed to open log file")
		}
	}

	app := bridge.NewApp(cfg, logger)
	if workerPath != "" {
		app.SetWorkerPath(workerPath)
	}

	if err := app.Startup(ctx); err != nil {
		notify.NewNotifier(cfg.Notifications, logger).StartupFailed(err.Error())
		logger.Fatal().Err(err).Msg("Launcher startup failed")
	}

	status := app.GetSidecarStatus()
	logger.Info().
		Int("pid", status.PID).
		Uint16("port", status.Port).
		Msg("Backend worker running")

	// Block until a shutdown signal cancels the root context or the
	// worker itself dies.
	select {
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received")
	case <-app.WorkerDone():
		logger.Warn().Msg("Backend worker exited")
	}

	app.Shutdown()
	return nil
}

// applyLogLevel raises the global log level when debug is enabled via
// the config file or the VIMIX_DEBUG env var, which are only known
// after loading; the --verbose/--debug flags are handled earlier in
// PersistentPreRun.
func applyLogLevel(cfg *config.Config) {
	if cfg.Debug {
		logging.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// loadConfig loads the launcher configuration, applying global flags.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if resourceRoot != "" {
		cfg.ResourceRoot = resourceRoot
	}
	return cfg, nil
}
