package kv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
	"golang.org/x/sys/unix"
)

// locksDirName is the subdirectory for lock files.
const locksDirName = ".locks"

// LockTimeout is the timeout for acquiring a file lock.
const LockTimeout = 2 * time.Second

const (
	dirPerms  = 0o750
	filePerms = 0o600

	lockPollInterval = 5 * time.Millisecond
)

var (
	errLockTimeout  = errors.New("lock timeout")
	errLockFileOpen = errors.New("failed to open lock file")
)

// File stores each key as <dir>/<key>.json.
//
// Writes go through a temp file and rename, so readers never observe a partial
// value. Writers serialize on an flock held on <dir>/.locks/<key>.lock, which
// also covers other processes sharing the directory.
type File struct {
	dir string
}

// OpenFile returns a File store rooted at dir, creating dir if needed.
func OpenFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.New("open file store: directory is empty")
	}

	dir = filepath.Clean(dir)

	err := os.MkdirAll(dir, dirPerms)
	if err != nil {
		return nil, fmt.Errorf("open file store: %w", err)
	}

	return &File{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (f *File) Dir() string {
	return f.dir
}

// Path returns the file a key is stored in.
func (f *File) Path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get implements Store.
func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	err := ValidateKey(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}

		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	return data, nil
}

// Set implements Store.
func (f *File) Set(ctx context.Context, key string, value []byte) error {
	err := ValidateKey(key)
	if err != nil {
		return err
	}

	lock, err := acquireLock(ctx, filepath.Join(f.dir, locksDirName, key+".lock"), LockTimeout)
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}

	defer lock.release()

	err = atomic.WriteFile(f.Path(key), bytes.NewReader(value))
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}

	return nil
}

// Close implements Store. File holds no open handles between calls.
func (*File) Close() error {
	return nil
}

type fileLock struct {
	file *os.File
}

func (l *fileLock) release() {
	if l.file != nil {
		_ = unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
		_ = l.file.Close()
		l.file = nil
	}
}

// acquireLock polls a non-blocking flock until it succeeds, the timeout
// elapses, or ctx is done.
func acquireLock(ctx context.Context, lockPath string, timeout time.Duration) (*fileLock, error) {
	err := os.MkdirAll(filepath.Dir(lockPath), dirPerms)
	if err != nil {
		return nil, fmt.Errorf("creating locks dir: %w", err)
	}

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, filePerms)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errLockFileOpen, err)
	}

	deadline := time.Now().Add(timeout)

	for {
		err = unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return &fileLock{file: file}, nil
		}

		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EINTR) {
			_ = file.Close()

			return nil, fmt.Errorf("flock: %w", err)
		}

		if time.Now().After(deadline) {
			_ = file.Close()

			return nil, fmt.Errorf("%w: %s", errLockTimeout, lockPath)
		}

		select {
		case <-ctx.Done():
			_ = file.Close()

			return nil, ctx.Err()
		case <-time.After(lockPollInterval):
		}
	}
}
