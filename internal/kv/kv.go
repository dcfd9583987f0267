// Package kv provides the durable key-value stores the collection snapshot is
// persisted to.
//
// Every backend stores whole values under a key. A Set replaces the previous
// value atomically from the reader's point of view: a concurrent Get sees
// either the old value or the new one, never a mix.
package kv

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Store is a durable key-value store.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Store interface {
	// Get returns the value stored under key, or an error satisfying
	// errors.Is(err, ErrNotFound) if the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases resources held by the store.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Backends lists every backend name.
var Backends = []string{BackendFile, BackendSQLite, BackendRedis, BackendMemory}

// IsValidBackend reports whether name is a backend Open accepts.
func IsValidBackend(name string) bool {
	return slices.Contains(Backends, name)
}

var (
	// ErrNotFound reports a key that has no value.
	ErrNotFound = errors.New("key not found")

	// ErrInvalidKey reports a key that a backend cannot store.
	ErrInvalidKey = errors.New("invalid key")

	// ErrUnknownBackend reports an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrClosed reports use of a store after Close.
	ErrClosed = errors.New("store closed")
)

// Options selects and configures a backend for Open.
type Options struct {
	Backend string

	// Dir is the data directory used by the file and sqlite backends.
	Dir string

	// RedisAddr and RedisDB configure the redis backend.
	RedisAddr string
	RedisDB   int

	// RedisPrefix is prepended to every key in redis.
	RedisPrefix string
}

// Open returns the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendFile, "":
		return OpenFile(opts.Dir)
	case BackendSQLite:
		return OpenSQLite(ctx, opts.Dir)
	case BackendRedis:
		return OpenRedis(ctx, RedisOptions{Addr: opts.RedisAddr, DB: opts.RedisDB, Prefix: opts.RedisPrefix})
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownBackend, opts.Backend, strings.Join(Backends, ", "))
	}
}

// ValidateKey rejects keys that cannot be used as a single file name. Every
// backend applies it so a key valid for one is valid for all.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}

	if key == "." || key == ".." || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	return nil
}
