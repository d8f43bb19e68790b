// Package lock prevents two runs from writing into the same output directory.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// FileName is the lock file created in a locked output directory.
const FileName = ".setmaker.lock"

// ErrLocked is returned when another process holds the directory lock.
var ErrLocked = errors.New("output directory is locked")

// DirLock is an exclusive lock on an output directory. It is backed by an
// OS file lock, so it is released automatically if the process dies.
type DirLock struct {
	path string
	file *os.File
	held bool
}

// NewDirLock creates a lock for dir. The lock is not acquired until
// TryAcquire or AcquireOrFail is called.
func NewDirLock(dir string) *DirLock {
	return &DirLock{path: filepath.Join(dir, FileName)}
}

// TryAcquire attempts to acquire the lock without waiting. It returns false
// if another process holds it. The directory must exist.
func (l *DirLock) TryAcquire() (bool, error) {
	if l.held {
		return true, nil
	}

	f, err := os.OpenFile(l.path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return false, fmt.Errorf("failed to open lock file: %w", err)
	}

	ok, err := tryLock(f)
	if err != nil || !ok {
		f.Close()
		return false, err
	}

	// pid of the holder
	if err := f.Truncate(0); err == nil {
		_, _ = f.WriteAt([]byte(strconv.Itoa(os.Getpid())+"\n"), 0)
	}

	l.file = f
	l.held = true
	return true, nil
}

// AcquireOrFail acquires the lock or returns ErrLocked.
func (l *DirLock) AcquireOrFail() error {
	acquired, err := l.TryAcquire()
	if err != nil {
		return err
	}
	if !acquired {
		return fmt.Errorf("%w: %s is held by another process", ErrLocked, l.path)
	}
	return nil
}

// ReleaseLock releases the lock and removes the lock file. It returns false
// if the lock was not held.
func (l *DirLock) ReleaseLock() (bool, error) {
	if !l.held {
		return false, nil
	}

	l.held = false
	removeErr := os.Remove(l.path)
	unlockErr := unlock(l.file)
	closeErr := l.file.Close()
	l.file = nil

	if err := errors.Join(unlockErr, closeErr); err != nil {
		return false, fmt.Errorf("failed to release lock: %w", err)
	}
	if removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
		return true, fmt.Errorf("lock released but lock file remains: %w", removeErr)
	}
	return true, nil
}

// IsHeld returns true if this lock is currently held by this instance.
func (l *DirLock) IsHeld() bool {
	return l.held
}

// Path returns the lock file path.
func (l *DirLock) Path() string {
	return l.path
}
