// Package lock implements the single-instance guard.
//
// The guard is an advisory flock on a per-user path. Acquisition is
// non-blocking: a second orchestrator must terminate instead of queueing
// behind the first, since the conflict is structural. The kernel drops the
// lock when the holding process exits, whatever the exit path, so a crash
// or signal never leaves a stale lock behind.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// ErrAlreadyHeld reports that another orchestrator instance holds the lock.
var ErrAlreadyHeld = errors.New("another instance is already running")

// Handle is a held lock. Release it on clean exits; process death releases
// it implicitly otherwise.
type Handle struct {
	path string
	f    *os.File
}

// Acquire takes the exclusive lock at path without blocking. On contention
// the returned error wraps ErrAlreadyHeld.
func Acquire(path string) (*Handle, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, fmt.Errorf("%w (lock file %s)", ErrAlreadyHeld, path)
		}
		return nil, fmt.Errorf("failed to lock %s: %w", path, err)
	}

	// Record the holder's pid for diagnostics. Best effort only; the flock
	// is what matters.
	_ = f.Truncate(0)
	_, _ = fmt.Fprintf(f, "%d\n", os.Getpid())

	return &Handle{path: path, f: f}, nil
}

// Release unlocks and closes the lock file.
func (h *Handle) Release() error {
	if h == nil || h.f == nil {
		return nil
	}
	err := unix.Flock(int(h.f.Fd()), unix.LOCK_UN)
	cerr := h.f.Close()
	h.f = nil
	if err != nil {
		return fmt.Errorf("failed to unlock %s: %w", h.path, err)
	}
	return cerr
}

// Path returns the lock file location.
func (h *Handle) Path() string {
	return h.path
}

// DefaultPath returns the per-user lock location. XDG_RUNTIME_DIR is
// already user-scoped; the temp-dir fallback embeds the uid instead.
func DefaultPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "dusky-setup.lock")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("dusky-setup-%d.lock", os.Getuid()))
}
