package sidecar

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/vimix/vimix-desktop/internal/logging"
	"github.com/vimix/vimix-desktop/internal/resources"
)

func TestBuildArgs(t *testing.T) {
	args := buildArgs(53211)
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d: %v", len(args), args)
	}
	if args[0] != "--port" || args[1] != "53211" {
		t.Errorf(`expected ["--port", "53211"], got %v`, args)
	}
}

func TestBundleEnv(t *testing.T) {
	bundle, err := resources.ResolveBundle("/app/res")
	if err != nil {
		t.Fatal(err)
	}

	env := bundleEnv(bundle)
	if len(env) != 3 {
		t.Fatalf("expected 3 env entries, got %d", len(env))
	}

	want := map[string]string{
		"FFMPEG_BIN":   bundle.FFmpeg,
		"FFPROBE_BIN":  bundle.FFprobe,
		"IMG2WEBP_BIN": bundle.Img2webp,
	}
	got := make(map[string]string)
	for _, entry := range env {
		for k := range want {
			prefix := k + "="
			if len(entry) > len(prefix) && entry[:len(prefix)] == prefix {
				got[k] = entry[len(prefix):]
			}
		}
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s: expected %q, got %q", k, v, got[k])
		}
	}
}

func TestSpawn_MissingWorker(t *testing.T) {
	launcher := NewLauncher(logging.NewDefaultCLILogger(), nil)
	launcher.SetWorkerPath(filepath.Join(t.TempDir(), "vimix-processor"))

	bundle, err := resources.ResolveBundle(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	handle, err := launcher.Spawn(context.Background(), 53211, bundle)
	if err == nil {
		t.Fatal("expected spawn error for missing worker binary")
	}
	if handle != nil {
		t.Error("no handle must be exposed when spawn fails")
	}
}
