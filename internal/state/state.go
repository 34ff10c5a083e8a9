// Package state resolves midori's per-user directories and guards the
// files kept in them.
//
// Directories follow the XDG base directory spec. MIDORI_CONFIG_DIR and
// MIDORI_STATE_DIR override the resolved paths wholesale.
package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const appName = "midori"

// ErrLocked indicates another process held a state file lock past the timeout.
var ErrLocked = errors.New("state file is locked by another process")

// lockTimeout bounds how long Lock waits for a competing process.
const lockTimeout = 2 * time.Second

// StateDir returns the directory for history, the daily card, logs and events.
func StateDir() string {
	if dir := os.Getenv("MIDORI_STATE_DIR"); dir != "" {
		return dir
	}
	return xdgDir("XDG_STATE_HOME", ".local", "state")
}

// ConfigDir returns the directory holding settings.toml.
func ConfigDir() string {
	if dir := os.Getenv("MIDORI_CONFIG_DIR"); dir != "" {
		return dir
	}
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

func xdgDir(env string, fallback ...string) string {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName)
	}
	home, _ := os.UserHomeDir()
	parts := append([]string{home}, fallback...)
	return filepath.Join(append(parts, appName)...)
}

// Lock takes an exclusive cross-process lock on path + ".lock", creating
// the parent directory if needed. The caller must call the returned unlock.
func Lock(ctx context.Context, path string) (unlock func(), err error) {
	lockPath := path + ".lock"
	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	fileLock := flock.New(lockPath)

	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrLocked, lockPath)
		}
		return nil, fmt.Errorf("acquiring lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, lockPath)
	}
	return func() { _ = fileLock.Unlock() }, nil
}

// WriteFileAtomic writes data to a temp file beside path and renames it
// into place.
func WriteFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }() // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
