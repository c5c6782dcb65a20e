package pid

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"codeberg.org/mutker/ipmictl/internal/errors"
)

const (
	pidFile = "ipmictl.pid"
)

// Lock is a PID file held by a running console.
type Lock struct {
	path string
}

// DefaultPath returns the PID file location in the system temp directory.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), pidFile)
}

// Acquire writes the current process ID to path. A PID file naming a live
// process other than this one yields ErrAlreadyRunning, a stale one is replaced.
func Acquire(path string) (*Lock, error) {
	errFactory := errors.New()

	if running, err := isRunning(path); err != nil {
		return nil, err
	} else if running {
		return nil, errFactory.WithData(errors.ErrAlreadyRunning, path)
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o600); err != nil {
		return nil, errFactory.Wrap(errors.ErrInternal, err)
	}

	return &Lock{path: path}, nil
}

// Path returns the file backing the lock.
func (l *Lock) Path() string {
	return l.path
}

// Release removes the PID file.
func (l *Lock) Release() error {
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		return nil
	}

	if err := os.Remove(l.path); err != nil {
		return errors.New().Wrap(errors.ErrInternal, err)
	}

	return nil
}

func isRunning(path string) (bool, error) {
	bytes, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.New().Wrap(errors.ErrInternal, err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(bytes)))
	if err != nil || pid <= 0 {
		// Unreadable content is treated as stale
		return false, nil
	}

	if pid == os.Getpid() {
		return false, nil
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false, nil
	}

	return process.Signal(syscall.Signal(0)) == nil, nil
}
