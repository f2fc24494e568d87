package constants

import (
	"time"
)

// Sidecar process contract
const (
	// WorkerBinaryName - logical name of the bundled backend worker.
	// The packaged binary is WorkerBinaryName + executable suffix.
	WorkerBinaryName = "vimix-processor"

	// ResourcesDirName - subdirectory of the resource root holding bundled
	// tool binaries. External packaging contract, not produced here.
	ResourcesDirName = "resources"

	// PortFlag - command-line flag the worker binds its API to.
	// Contract: the worker must listen on exactly this port.
	PortFlag = "--port"
)

// Environment variables passed to the sidecar so it can locate its native
// tool dependencies without its own discovery logic.
const (
	EnvFFmpeg   = "FFMPEG_BIN"
	EnvFFprobe  = "FFPROBE_BIN"
	EnvImg2webp = "IMG2WEBP_BIN"
)

// Logical binary names resolved under the resource root.
const (
	BinFFmpeg   = "ffmpeg"
	BinFFprobe  = "ffprobe"
	BinImg2webp = "img2webp"
)

// Environment variables read by the launcher itself.
const (
	// EnvDebug enables debug logging when set to any non-empty value.
	EnvDebug = "VIMIX_DEBUG"

	// EnvResourceRoot overrides the resource root supplied by the host
	// packaging layer. Mainly for development builds.
	EnvResourceRoot = "VIMIX_RESOURCE_ROOT"
)

// Readiness probe
const (
	// ReadyProbeTimeout - total time to wait for the sidecar API to answer
	// its health endpoint after spawn.
	ReadyProbeTimeout = 30 * time.Second

	// ReadyProbeInterval - base delay between health probe retries.
	ReadyProbeInterval = 250 * time.Millisecond

	// ReadyProbeMaxInterval - cap for the probe retry backoff.
	ReadyProbeMaxInterval = 2 * time.Second
)

// Event System
const (
	// EventBusDefaultBuffer - default buffer size for event channels.
	EventBusDefaultBuffer = 256

	// EventBusMaxBuffer - maximum buffer size for high-throughput scenarios.
	EventBusMaxBuffer = 1024
)
