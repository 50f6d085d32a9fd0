package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 50 * time.Millisecond

// fileGuard holds a cross-process flock for the lifetime of a file-backed
// store. The store assumes exclusive single-context access; a second
// process acquiring the same path gets a clear error instead of silently
// corrupting data.
type fileGuard struct {
	fl *flock.Flock
}

// acquireGuard takes an exclusive lock on <path>.lock, creating the parent
// directory if needed.
func acquireGuard(path string, timeout time.Duration) (*fileGuard, error) {
	lockPath := path + ".lock"
	if err := os.MkdirAll(filepath.Dir(lockPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	fl := flock.New(lockPath)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("storage is locked by another daybook process (%s)", lockPath)
	}
	return &fileGuard{fl: fl}, nil
}

func (g *fileGuard) release() error {
	if g == nil || g.fl == nil {
		return nil
	}
	return g.fl.Unlock()
}
