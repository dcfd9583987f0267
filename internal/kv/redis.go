package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisOptions configures OpenRedis.
type RedisOptions struct {
	Addr   string
	DB     int
	Prefix string
}

// DefaultRedisPrefix namespaces keys when no prefix is configured.
const DefaultRedisPrefix = "gb:"

const redisDialTimeout = 5 * time.Second

// Redis stores values as plain redis strings.
type Redis struct {
	rdb    *goredis.Client
	prefix string
}

// OpenRedis connects and pings the server before returning.
func OpenRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		return nil, errors.New("open redis store: missing address")
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DB:          opts.DB,
		DialTimeout: redisDialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()

	err := rdb.Ping(pingCtx).Err()
	if err != nil {
		_ = rdb.Close()

		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Redis{rdb: rdb, prefix: prefix}, nil
}

// Get implements Store.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	err := ValidateKey(key)
	if err != nil {
		return nil, err
	}

	value, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}

		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	return value, nil
}

// Set implements Store.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	err := ValidateKey(key)
	if err != nil {
		return err
	}

	err = r.rdb.Set(ctx, r.prefix+key, value, 0).Err()
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

// Close implements Store.
func (r *Redis) Close() error {
	err := r.rdb.Close()
	if err != nil {
		return fmt.Errorf("close redis: %w", err)
	}

	return nil
}
