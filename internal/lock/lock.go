// Package lock guards single-instance startup. Exactly one Inkforge shell
// may supervise the agent for a given data directory; a second instance
// would violate the one-live-child invariant from outside the process.
package lock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/inkforge/inkforge/internal/constants"
)

// ErrHeld is wrapped into the error when another instance owns the lock.
var ErrHeld = errors.New("data directory is locked by another instance")

// Instance is a held single-instance lock.
type Instance struct {
	lock *flock.Flock
}

// Acquire takes the instance lock for a data directory, waiting up to the
// configured timeout before concluding another instance owns it.
func Acquire(dataDir string) (*Instance, error) {
	lockPath := filepath.Join(dataDir, constants.FileInstanceLock)

	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	l := flock.New(lockPath)
	ctx, cancel := context.WithTimeout(context.Background(), constants.InstanceLockTimeout)
	defer cancel()

	locked, err := l.TryLockContext(ctx, 100*time.Millisecond)
	// A context timeout means the retry loop never got the lock: another
	// instance owns it.
	if errors.Is(err, context.DeadlineExceeded) || (err == nil && !locked) {
		return nil, fmt.Errorf("%w: %s", ErrHeld, lockPath)
	}
	if err != nil {
		return nil, fmt.Errorf("acquiring instance lock: %w", err)
	}

	return &Instance{lock: l}, nil
}

// Release drops the lock. Safe to call once at shutdown.
func (i *Instance) Release() error {
	return i.lock.Unlock()
}
