// Package sidecar spawns and supervises the backend worker process that
// serves the application's processing API.
package sidecar

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"

	"github.com/vimix/vimix-desktop/internal/constants"
	"github.com/vimix/vimix-desktop/internal/events"
	"github.com/vimix/vimix-desktop/internal/logging"
	"github.com/vimix/vimix-desktop/internal/resources"
)

// Launcher starts the bundled worker process. One launcher spawns at
// most one worker for the application's lifetime; there is no restart
// policy at this layer.
type Launcher struct {
	logger *logging.Logger
	bus    *events.EventBus

	// workerPath overrides worker lookup when non-empty. Used by
	// development builds and tests.
	workerPath string
}

// NewLauncher creates a launcher that logs worker activity to logger
// and publishes worker events on bus. bus may be nil.
func NewLauncher(logger *logging.Logger, bus *events.EventBus) *Launcher {
	return &Launcher{
		logger: logger,
		bus:    bus,
	}
}

// SetWorkerPath overrides the packaged worker location.
func (l *Launcher) SetWorkerPath(path string) {
	l.workerPath = path
}

// LocateWorker returns the path of the bundled worker binary, which is
// packaged next to the launcher executable. A missing worker is a
// packaging defect; the application cannot function without it.
func LocateWorker() (string, error) {
	exePath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	name := constants.WorkerBinaryName + resources.ExecutableSuffix(runtime.GOOS)
	workerPath := filepath.Join(filepath.Dir(exePath), name)
	if _, err := os.Stat(workerPath); err != nil {
		return "", fmt.Errorf("worker binary %s not found at %s: %w", name, workerPath, err)
	}
	return workerPath, nil
}

// buildArgs constructs the worker command line for the allocated port.
func buildArgs(port uint16) []string {
	return []string{constants.PortFlag, strconv.Itoa(int(port))}
}

// bundleEnv returns the environment entries that tell the worker where
// its native tool dependencies live. The worker reads these instead of
// doing its own binary discovery.
func bundleEnv(bundle resources.Bundle) []string {
	return []string{
		constants.EnvFFmpeg + "=" + bundle.FFmpeg,
		constants.EnvFFprobe + "=" + bundle.FFprobe,
		constants.EnvImg2webp + "=" + bundle.Img2webp,
	}
}

// Spawn starts the worker bound to port, with the resolved tool paths
// handed over via environment variables. The returned handle is retained
// for the application's lifetime.
//
// Cancelling ctx kills the worker; the app passes a context that lives
// until process exit.
func (l *Launcher) Spawn(ctx context.Context, port uint16, bundle resources.Bundle) (*Handle, error) {
	workerPath := l.workerPath
	if workerPath == "" {
		var err error
		workerPath, err = LocateWorker()
		if err != nil {
			return nil, err
		}
	}

	cmd := exec.CommandContext(ctx, workerPath, buildArgs(port)...)
	cmd.Env = append(os.Environ(), bundleEnv(bundle)...)
	setSysProcAttr(cmd)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get worker stdout pipe: %w", err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		stdoutPipe.Close()
		return nil, fmt.Errorf("failed to get worker stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to spawn worker %s: %w", workerPath, err)
	}

	pid := cmd.Process.Pid
	l.logger.Info().
		Str("worker", workerPath).
		Int("pid", pid).
		Uint16("port", port).
		Msg("Worker spawned")

	if err := bindLifetime(cmd.Process); err != nil {
		// The worker still runs; only the parent-death binding is lost.
		l.logger.Warn().Err(err).Int("pid", pid).Msg("Failed to bind worker lifetime to launcher")
	}

	h := &Handle{
		cmd:  cmd,
		port: port,
		done: make(chan struct{}),
	}

	var scanners sync.WaitGroup
	scanners.Add(2)
	go func() {
		defer scanners.Done()
		scanner := bufio.NewScanner(stdoutPipe)
		for scanner.Scan() {
			line := scanner.Text()
			l.logger.Info().Int("pid", pid).Str("stream", "stdout").Msg(line)
			if l.bus != nil {
				l.bus.PublishSidecarLog(events.InfoLevel, "stdout", line, pid)
			}
		}
	}()
	go func() {
		defer scanners.Done()
		scanner := bufio.NewScanner(stderrPipe)
		for scanner.Scan() {
			line := scanner.Text()
			l.logger.Error().Int("pid", pid).Str("stream", "stderr").Msg(line)
			if l.bus != nil {
				l.bus.PublishSidecarLog(events.ErrorLevel, "stderr", line, pid)
			}
		}
	}()

	go func() {
		scanners.Wait()
		err := cmd.Wait()
		exitCode := cmd.ProcessState.ExitCode()
		h.recordExit(err)

		l.logger.Warn().
			Int("pid", pid).
			Int("exit_code", exitCode).
			Err(err).
			Msg("Worker exited")
		if l.bus != nil {
			l.bus.PublishSidecarExit(pid, exitCode, err)
		}
	}()

	return h, nil
}

// Handle is the live worker process reference. It is retained for the
// application's full lifetime and never released by the launcher; final
// teardown of the child is delegated to the host environment (enforced
// where the OS allows, see the platform bindLifetime implementations).
type Handle struct {
	cmd  *exec.Cmd
	port uint16

	mu      sync.Mutex
	exited  bool
	exitErr error
	done    chan struct{}
}

func (h *Handle) recordExit(err error) {
	h.mu.Lock()
	h.exited = true
	h.exitErr = err
	h.mu.Unlock()
	close(h.done)
}

// PID returns the worker's process ID.
func (h *Handle) PID() int {
	return h.cmd.Process.Pid
}

// Port returns the API port the worker was told to bind.
func (h *Handle) Port() uint16 {
	return h.port
}

// Running reports whether the worker process is still alive.
func (h *Handle) Running() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.exited
}

// Done is closed once the worker process has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// ExitError returns the error recorded when the worker exited, or nil
// if it is still running or exited cleanly.
func (h *Handle) ExitError() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.exitErr
}

// Terminate kills the worker. Best effort, used only on the launcher's
// own shutdown path; the primary cleanup mechanism remains the host
// environment's child-process teardown.
func (h *Handle) Terminate() error {
	h.mu.Lock()
	exited := h.exited
	h.mu.Unlock()
	if exited {
		return nil
	}
	if err := h.cmd.Process.Kill(); err != nil {
		return fmt.Errorf("failed to kill worker (PID %d): %w", h.cmd.Process.Pid, err)
	}
	return nil
}
