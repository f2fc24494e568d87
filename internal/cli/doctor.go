package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vimix/vimix-desktop/internal/config"
	"github.com/vimix/vimix-desktop/internal/resources"
	"github.com/vimix/vimix-desktop/internal/sidecar"
)

// newDoctorCmd creates the packaging check command. It resolves every
// bundled binary the way the launcher would and reports what is
// missing, without starting anything.
func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the install's bundled binaries are in place",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			root := cfg.ResourceRoot
			if root == "" {
				root, err = config.DefaultResourceRoot()
				if err != nil {
					return fmt.Errorf("failed to resolve resource directory: %w", err)
				}
			}

			fmt.Println("======================================================================")
			fmt.Println("  VIMIX PACKAGING CHECK")
			fmt.Println("======================================================================")
			fmt.Printf("Resource Root: %s\n", root)
			fmt.Println("----------------------------------------------------------------------")

			missing := 0

			bundle, err := resources.ResolveBundle(root)
			if err != nil {
				return fmt.Errorf("failed to resolve resource bundle: %w", err)
			}
			for _, path := range bundle.Paths() {
				missing += report(path)
			}

			worker := workerPath
			if worker == "" {
				worker, err = sidecar.LocateWorker()
				if err != nil {
					fmt.Printf("  MISSING  %v\n", err)
					missing++
				}
			}
			if worker != "" {
				missing += report(worker)
			}

			fmt.Println("----------------------------------------------------------------------")
			if missing > 0 {
				return fmt.Errorf("%d required binaries missing", missing)
			}
			fmt.Println("All bundled binaries present.")
			return nil
		},
	}
}

// report prints one line for a required binary and returns 1 if it is
// missing.
func report(path string) int {
	info, err := os.Stat(path)
	if err != nil {
		fmt.Printf("  MISSING  %s\n", path)
		return 1
	}
	fmt.Printf("  OK       %s (%d bytes)\n", path, info.Size())
	return 0
}
