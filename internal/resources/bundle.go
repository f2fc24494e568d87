// Package resources resolves bundled tool binaries from the packaged
// application's resource directory.
package resources

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/vimix/vimix-desktop/internal/constants"
)

// Bundle maps the three logical tool binaries to absolute paths within
// the packaged application. Resolved once at startup, read-only after.
type Bundle struct {
	FFmpeg   string
	FFprobe  string
	Img2webp string
}

// ResolveBundle constructs the tool binary paths under
// <resourceRoot>/resources with the platform executable suffix.
//
// This is pure path construction: the resolved paths are not checked
// against the filesystem. Existence is verified by the sidecar's own
// startup checks, which produce better diagnostics for a broken bundle
// than a stat here would.
func ResolveBundle(resourceRoot string) (Bundle, error) {
	if resourceRoot == "" {
		return Bundle{}, fmt.Errorf("resource root is not set")
	}
	root, err := filepath.Abs(resourceRoot)
	if err != nil {
		return Bundle{}, fmt.Errorf("failed to resolve resource root %q: %w", resourceRoot, err)
	}

	suffix := ExecutableSuffix(runtime.GOOS)
	dir := filepath.Join(root, constants.ResourcesDirName)
	return Bundle{
		FFmpeg:   filepath.Join(dir, constants.BinFFmpeg+suffix),
		FFprobe:  filepath.Join(dir, constants.BinFFprobe+suffix),
		Img2webp: filepath.Join(dir, constants.BinImg2webp+suffix),
	}, nil
}

// ExecutableSuffix returns the platform executable suffix for goos:
// ".exe" on Windows, empty elsewhere.
func ExecutableSuffix(goos string) string {
	if goos == "windows" {
		return ".exe"
	}
	return ""
}

// Paths returns the resolved paths in a fixed order, for diagnostics.
func (b Bundle) Paths() []string {
	return []string{b.FFmpeg, b.FFprobe, b.Img2webp}
}
