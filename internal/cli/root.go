// Package cli provides the command-line interface for vimix.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vimix/vimix-desktop/internal/logging"
	"github.com/vimix/vimix-desktop/internal/version"
)

var (
	// Global flags
	cfgFile      string
	resourceRoot string
	workerPath   string
	verbose      bool
	debug        bool

	// Global logger
	logger *logging.Logger

	// Global context for signal handling
	rootContext context.Context
	cancelFunc  context.CancelFunc
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vimix",
		Short: "Vimix - desktop launcher for the vimix media processor",
		Long: `Vimix ` + version.Version + ` - Built: ` + version.BuildTime + `
Launches the bundled vimix-processor backend on a free local port and
hands it the packaged ffmpeg, ffprobe and img2webp binaries.

The default command starts the backend and keeps it running until the
application exits. Use "doctor" to check the packaging of an install.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewLogger("cli")
			if verbose || debug {
				logging.SetGlobalLevel(-1) // zerolog.DebugLevel
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLauncher(cmd.Context())
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&resourceRoot, "resource-root", "", "Directory holding the resources/ bundle (overrides config)")
	rootCmd.PersistentFlags().StringVar(&workerPath, "worker", "", "Explicit path to the vimix-processor binary (development builds)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output (same as --verbose)")

	rootCmd.Version = version.Version + " (" + version.BuildTime + ")"

	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	// Create a context that can be cancelled by signals
	rootContext, cancelFunc = context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		for sig := range sigChan {
			if sig != nil {
				cancelFunc()
			}
		}
	}()

	rootCmd := NewRootCmd()
	AddCommands(rootCmd)
	err := rootCmd.ExecuteContext(rootContext)

	signal.Stop(sigChan)
	close(sigChan)

	return err
}

// AddCommands adds all subcommands to the root command.
func AddCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newDoctorCmd())
}
