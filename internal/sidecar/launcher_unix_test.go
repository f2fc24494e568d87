//go:build !windows

package sidecar

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vimix/vimix-desktop/internal/events"
	"github.com/vimix/vimix-desktop/internal/logging"
	"github.com/vimix/vimix-desktop/internal/resources"
)

// writeWorkerScript creates a stand-in worker that prints the tool env
// handoff and stays alive until terminated.
func writeWorkerScript(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vimix-processor")
	script := "#!/bin/sh\necho \"ffmpeg=$FFMPEG_BIN port=$1 $2\"\nsleep 30\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSpawn_EnvAndArgsHandoff(t *testing.T) {
	bus := events.NewEventBus(16)
	defer bus.Close()
	logCh := bus.Subscribe(events.EventSidecarLog)

	launcher := NewLauncher(logging.NewDefaultCLILogger(), bus)
	launcher.SetWorkerPath(writeWorkerScript(t))

	bundle, err := resources.ResolveBundle("/app/res")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handle, err := launcher.Spawn(ctx, 53211, bundle)
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	defer handle.Terminate()

	if handle.PID() <= 0 {
		t.Errorf("expected positive PID, got %d", handle.PID())
	}
	if handle.Port() != 53211 {
		t.Errorf("expected handle port 53211, got %d", handle.Port())
	}
	if !handle.Running() {
		t.Error("expected worker to be running after spawn")
	}

	// The script echoes the env var and its argv, proving both the env
	// handoff and the --port argument reached the child.
	select {
	case ev := <-logCh:
		logEvent := ev.(*events.SidecarLogEvent)
		want := "ffmpeg=" + bundle.FFmpeg + " port=--port 53211"
		if logEvent.Line != want {
			t.Errorf("expected worker output %q, got %q", want, logEvent.Line)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for worker output")
	}
}

func TestHandle_TerminateAndExitEvent(t *testing.T) {
	bus := events.NewEventBus(16)
	defer bus.Close()
	exitCh := bus.Subscribe(events.EventSidecarExit)

	launcher := NewLauncher(logging.NewDefaultCLILogger(), bus)
	launcher.SetWorkerPath(writeWorkerScript(t))

	bundle, err := resources.ResolveBundle("/app/res")
	if err != nil {
		t.Fatal(err)
	}

	handle, err := launcher.Spawn(context.Background(), 50000, bundle)
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	if err := handle.Terminate(); err != nil {
		t.Fatalf("Terminate failed: %v", err)
	}

	select {
	case <-handle.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not exit after Terminate")
	}
	if handle.Running() {
		t.Error("Running() should be false after exit")
	}

	select {
	case ev := <-exitCh:
		exitEvent := ev.(*events.SidecarExitEvent)
		if exitEvent.PID != handle.PID() {
			t.Errorf("exit event PID %d does not match handle PID %d", exitEvent.PID, handle.PID())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for exit event")
	}

	// Terminate on an exited worker is a no-op
	if err := handle.Terminate(); err != nil {
		t.Errorf("second Terminate returned error: %v", err)
	}
}
