// Package filelock coordinates access to the build output directory across
// concurrent buildgate processes. The gate itself is single-threaded; the
// lock only prevents two separate invocations from clobbering each other's
// artifacts.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is the lock file created inside the output directory.
const LockFileName = ".buildgate.lock"

// FileLock wraps a flock file lock for coordinating access to the output
// directory.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewOutputLock creates a lock for the given output directory, creating the
// directory first if needed.
func NewOutputLock(outputDir string) (*FileLock, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	path := filepath.Join(outputDir, LockFileName)
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}, nil
}

// Lock acquires an exclusive lock, blocking until it is available.
func (fl *FileLock) Lock() error {
	if err := fl.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.path, err)
	}
	return nil
}

// TryLock attempts to acquire the lock without blocking. Returns true if the
// lock was acquired, false if another process holds it.
func (fl *FileLock) TryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}
