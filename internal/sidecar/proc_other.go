//go:build !linux && !windows

package sidecar

import (
	"os"
	"os/exec"
)

// No parent-death mechanism on this platform. Cleanup of the worker on
// launcher exit relies on the host environment terminating the process
// group, the documented execution-environment assumption.
func setSysProcAttr(_ *exec.Cmd) {}

func bindLifetime(_ *os.Process) error {
	return nil
}
