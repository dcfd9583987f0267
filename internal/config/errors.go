package config

import "errors"

// Sentinel errors for config loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrDataDirEmpty       = errors.New("data_dir cannot be empty")
	ErrInvalidBackend     = errors.New("invalid backend")
	ErrInvalidLogLevel    = errors.New("invalid log_level")
	ErrInvalidLogFormat   = errors.New("invalid log_format")
	ErrInvalidSort        = errors.New("invalid default_sort")
	ErrInvalidTimeout     = errors.New("invalid write_timeout")
	ErrInvalidLocale      = errors.New("invalid locale")
	ErrInvalidKey         = errors.New("invalid key")
	ErrRedisAddrRequired  = errors.New("redis_addr is required for the redis backend")
)
