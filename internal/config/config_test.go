package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error for missing file: %v", err)
	}
	if cfg.ResourceRoot != "" {
		t.Errorf("expected empty ResourceRoot, got %q", cfg.ResourceRoot)
	}
	if !cfg.Notifications {
		t.Error("expected Notifications enabled by default")
	}
	if cfg.Debug {
		t.Error("expected Debug disabled by default")
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launcher.toml")
	content := "resource_root = \"/opt/vimix\"\ndebug = true\nnotifications = false\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ResourceRoot != "/opt/vimix" {
		t.Errorf("expected /opt/vimix, got %q", cfg.ResourceRoot)
	}
	if !cfg.Debug {
		t.Error("expected Debug true")
	}
	if cfg.Notifications {
		t.Error("expected Notifications false")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launcher.toml")
	if err := os.WriteFile(path, []byte("resource_root = ["), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launcher.toml")
	if err := os.WriteFile(path, []byte("resource_root = \"/from/file\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("VIMIX_RESOURCE_ROOT", "/from/env")
	t.Setenv("VIMIX_DEBUG", "1")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ResourceRoot != "/from/env" {
		t.Errorf("env override lost: got %q", cfg.ResourceRoot)
	}
	if !cfg.Debug {
		t.Error("expected VIMIX_DEBUG to enable Debug")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if path == "" {
		t.Fatal("DefaultConfigPath returned empty string")
	}
	if filepath.Base(path) != "launcher.toml" {
		t.Errorf("expected launcher.toml, got %s", filepath.Base(path))
	}
}
