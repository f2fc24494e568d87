// Package netutil provides local network helpers for the launcher.
package netutil

import (
	"fmt"
	"net"
)

// AllocatePort asks the operating system for a currently-unused TCP port
// in the ephemeral range by binding 127.0.0.1:0 and immediately releasing
// the probe listener. The reservation is transient; the caller is expected
// to hand the port to the sidecar before anything else claims it.
//
// Failure means the host network stack cannot provide a loopback port at
// all, an unrecoverable environment condition for this application.
func AllocatePort() (uint16, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("no free TCP port available: %w", err)
	}
	defer listener.Close()

	addr, ok := listener.Addr().(*net.TCPAddr)
	if !ok {
		return 0, fmt.Errorf("unexpected listener address type %T", listener.Addr())
	}
	return uint16(addr.Port), nil
}
