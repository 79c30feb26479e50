package ingest

import (
	"errors"
	"os"
	"syscall"
)

// commitLock serializes the commit step across processes with an advisory
// flock on a sidecar file next to the database. The database file and the
// config pointer are shared mutable resources; without this, concurrent runs
// against the same data directory can race.
type commitLock struct {
	file *os.File
}

// acquireCommitLock takes the lock non-blocking. Contention is *LockedError,
// a retryable-by-caller condition rather than a silent race.
func acquireCommitLock(path string) (*commitLock, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o640)
	if err != nil {
		return nil, err
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()
		if errors.Is(err, syscall.EWOULDBLOCK) {
			return nil, &LockedError{Path: path}
		}
		return nil, err
	}
	return &commitLock{file: f}, nil
}

// release unlocks and closes the lock file. The file itself is left in place
// for the next run.
func (l *commitLock) release() error {
	if l.file == nil {
		return nil
	}
	var lastErr error
	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		lastErr = err
	}
	if err := l.file.Close(); err != nil {
		lastErr = err
	}
	l.file = nil
	return lastErr
}
