package bridge

import "errors"

// Startup failure taxonomy. All three are unrecoverable: none has a
// meaningful retry, and the application cannot function without its
// backend. Components return these wrapped with detail; only the
// top-level handler logs and exits.
var (
	// ErrPortExhausted is returned when the OS cannot provide a free
	// loopback TCP port (broken host network stack).
	ErrPortExhausted = errors.New("no free TCP port available")

	// ErrPackaging is returned when the resource root or the bundled
	// worker binary cannot be resolved.
	ErrPackaging = errors.New("packaging defect")

	// ErrSpawn is returned when the OS refuses to create the worker
	// process.
	ErrSpawn = errors.New("failed to start backend worker")
)
