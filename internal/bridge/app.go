// Package bridge exposes the launcher's state to the UI layer.
// All public methods on App are callable as in-process frontend
// bindings; the UI framework hosting them is an external collaborator.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync/atomic"
	"time"

	"github.com/vimix/vimix-desktop/internal/config"
	"github.com/vimix/vimix-desktop/internal/constants"
	"github.com/vimix/vimix-desktop/internal/events"
	"github.com/vimix/vimix-desktop/internal/logging"
	"github.com/vimix/vimix-desktop/internal/netutil"
	"github.com/vimix/vimix-desktop/internal/notify"
	"github.com/vimix/vimix-desktop/internal/resources"
	"github.com/vimix/vimix-desktop/internal/sidecar"
)

// App is the main application bridge. It owns the startup sequence
// (port allocation, resource resolution, worker spawn) and the
// resulting process-wide state.
//
// The port and handle are written exactly once during Startup and are
// read-only afterwards, so binding reads need no locking.
type App struct {
	cfg      *config.Config
	logger   *logging.Logger
	bus      *events.EventBus
	notifier *notify.Notifier
	launcher *sidecar.Launcher

	state atomic.Int32

	// port is the allocated API port. Set before the worker is spawned
	// and never changed; the same value goes to the worker's --port
	// argument and to GetAPIPort.
	port uint16

	// handle is the live worker process. Deliberately retained for the
	// application's full lifetime; teardown is delegated to the host
	// environment except for the best-effort Shutdown path.
	handle *sidecar.Handle

	readyTimeout time.Duration

	// onWorkerExit is the reaction to the worker dying. Defaults to a
	// desktop notification.
	onWorkerExit func(exitCode int)
}

// NewApp creates the application bridge.
func NewApp(cfg *config.Config, logger *logging.Logger) *App {
	bus := events.NewEventBus(0)
	a := &App{
		cfg:          cfg,
		logger:       logger,
		bus:          bus,
		notifier:     notify.NewNotifier(cfg.Notifications, logger),
		launcher:     sidecar.NewLauncher(logger, bus),
		readyTimeout: constants.ReadyProbeTimeout,
	}
	a.onWorkerExit = a.notifier.WorkerStopped
	return a
}

// SetWorkerPath overrides worker lookup, for development builds.
func (a *App) SetWorkerPath(path string) {
	a.launcher.SetWorkerPath(path)
}

// SetReadyTimeout overrides how long Startup waits for the worker API.
func (a *App) SetReadyTimeout(d time.Duration) {
	a.readyTimeout = d
}

// Startup runs the one-shot initialization sequence:
// allocate port, resolve resources, spawn the worker, wait for its API.
//
// Every step either succeeds or returns a structured error from the
// startup taxonomy; the caller is the single place that logs and exits.
// ctx bounds the worker's lifetime, not just the startup call.
func (a *App) Startup(ctx context.Context) error {
	port, err := netutil.AllocatePort()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPortExhausted, err)
	}
	a.port = port
	a.transition(StatePortAllocated)
	a.logger.Info().Uint16("port", port).Msg("API port allocated")

	root := a.cfg.ResourceRoot
	if root == "" {
		root, err = config.DefaultResourceRoot()
		if err != nil {
			return fmt.Errorf("%w: failed to resolve resource directory: %v", ErrPackaging, err)
		}
	}
	bundle, err := resources.ResolveBundle(root)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPackaging, err)
	}
	a.logger.Debug().
		Str("ffmpeg", bundle.FFmpeg).
		Str("ffprobe", bundle.FFprobe).
		Str("img2webp", bundle.Img2webp).
		Msg("Resource bundle resolved")

	// Subscribe before the spawn so an exit published by a worker that
	// dies immediately is not lost.
	exitCh := a.bus.Subscribe(events.EventSidecarExit)

	handle, err := a.launcher.Spawn(ctx, port, bundle)
	if err != nil {
		a.bus.Unsubscribe(events.EventSidecarExit, exitCh)
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %v", ErrPackaging, err)
		}
		return fmt.Errorf("%w: %v", ErrSpawn, err)
	}
	a.handle = handle
	a.transition(StateBackendSpawned)

	go a.watchWorker(exitCh)

	// Readiness is a convenience for the UI: a probe timeout is logged
	// but does not abort startup, since the port contract already holds.
	readyCtx, cancel := context.WithTimeout(ctx, a.readyTimeout)
	defer cancel()
	if err := sidecar.WaitReady(readyCtx, port, a.logger); err != nil {
		a.logger.Warn().Err(err).Msg("Worker API readiness probe failed")
		a.bus.PublishError("ready", err)
	}

	a.transition(StateReady)
	return nil
}

// watchWorker notifies the user if the worker dies while the
// application is still running. No restart: a dead backend means the
// application must be relaunched.
func (a *App) watchWorker(exitCh <-chan events.Event) {
	ev, ok := <-exitCh
	if !ok {
		return
	}
	if exit, ok := ev.(*events.SidecarExitEvent); ok {
		a.onWorkerExit(exit.ExitCode)
	}
}

// transition advances the startup state machine and publishes the
// change for any UI subscriber.
func (a *App) transition(next State) {
	old := State(a.state.Swap(int32(next)))
	a.logger.Debug().
		Str("from", old.String()).
		Str("to", next.String()).
		Msg("Launcher state changed")
	a.bus.PublishStateChange(old.String(), next.String(), a.port)
}

// State returns the current startup state.
func (a *App) State() State {
	return State(a.state.Load())
}

// GetAPIPort returns the port the backend worker's API is bound to.
// Pure read of a value set once at startup; callable any number of
// times, concurrently, once the application is Ready.
func (a *App) GetAPIPort() uint16 {
	return a.port
}

// WorkerDone returns a channel closed when the worker process exits.
// Before a successful spawn it returns a nil channel, which never
// becomes ready.
func (a *App) WorkerDone() <-chan struct{} {
	if a.handle == nil {
		return nil
	}
	return a.handle.Done()
}

// Events returns the event bus the UI layer can subscribe to.
func (a *App) Events() *events.EventBus {
	return a.bus
}

// SidecarStatusDTO describes the backend worker for the frontend.
type SidecarStatusDTO struct {
	// Running indicates if the worker process is alive
	Running bool `json:"running"`

	// PID is the worker process ID (0 if never spawned)
	PID int `json:"pid"`

	// Port is the allocated API port (0 before allocation)
	Port uint16 `json:"port"`

	// State is the launcher startup state
	State string `json:"state"`
}

// GetSidecarStatus returns the current backend worker status.
func (a *App) GetSidecarStatus() SidecarStatusDTO {
	status := SidecarStatusDTO{
		Port:  a.port,
		State: a.State().String(),
	}
	if a.handle != nil {
		status.PID = a.handle.PID()
		status.Running = a.handle.Running()
	}
	return status
}

// Shutdown terminates the worker, best effort. The primary cleanup
// mechanism remains the host environment's child-process teardown; this
// only covers the launcher's own graceful exit path.
func (a *App) Shutdown() {
	if a.handle != nil && a.handle.Running() {
		if err := a.handle.Terminate(); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to terminate worker on shutdown")
		}
	}
	a.bus.Close()
}
