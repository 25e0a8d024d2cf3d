// Package fs provides file system backed document loading and analysis caching.
package fs

import (
	"os"
	"path/filepath"
)

// DefaultCacheDir returns the default cache directory for redline.
// Uses XDG_CACHE_HOME if set, otherwise falls back to ~/.cache/redline,
// or system temp directory if home is unavailable.
func DefaultCacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "redline")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "redline")
	}
	return filepath.Join(home, ".cache", "redline")
}
