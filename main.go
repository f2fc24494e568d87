// Vimix desktop launcher.
//
// Starts the bundled vimix-processor backend on a free local port and
// exposes the allocated port to the UI layer hosting the bridge.
package main

import (
	"fmt"
	"os"

	"github.com/vimix/vimix-desktop/internal/cli"
	"github.com/vimix/vimix-desktop/internal/version"
)

// Version information - overridden at release time via LDFLAGS.
var (
	Version   = "v0.2.1"
	BuildTime = "unknown"
)

func main() {
	// Set version in version package (canonical source for all packages)
	version.Version = Version
	version.BuildTime = BuildTime

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
