//go:build linux

package sidecar

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// setSysProcAttr asks the kernel to SIGKILL the worker if the launcher
// dies, making the documented "host cleans up children on exit"
// assumption hold even on abnormal parent termination.
func setSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Pdeathsig: unix.SIGKILL,
	}
}

func bindLifetime(_ *os.Process) error {
	return nil
}
