package startup

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"

	"gallery-builder/internal/logging"
)

// ErrAlreadyRunning is returned when another run holds the lock.
var ErrAlreadyRunning = errors.New("another gallery build is already running for this project")

// RunLock is an exclusive lock over one project root.
type RunLock struct {
	lock *flock.Flock
}

// AcquireRunLock takes the lock at path without blocking.
func AcquireRunLock(path string) (*RunLock, error) {
	l := flock.New(path)
	ok, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrAlreadyRunning, path)
	}
	logging.Debug("Acquired run lock %s", path)
	return &RunLock{lock: l}, nil
}

// Release drops the lock. The lock file itself is left in place.
func (r *RunLock) Release() {
	if r == nil {
		return
	}
	if err := r.lock.Unlock(); err != nil {
		logging.Warn("failed to release run lock: %v", err)
	}
}
