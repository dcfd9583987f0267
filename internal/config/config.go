// Package config resolves gb settings from defaults, JSONC config files, the
// environment, and command line overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tailscale/hujson"
	"golang.org/x/text/language"

	"github.com/calvinalkan/backlog/internal/game"
	"github.com/calvinalkan/backlog/internal/kv"
)

// FileName is the project config file looked up in the working directory.
const FileName = ".gb.json"

// Defaults.
const (
	DefaultDataDir   = ".gb"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "console"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	DataDir      string `json:"data_dir"`
	Backend      string `json:"backend"`
	RedisAddr    string `json:"redis_addr,omitempty"`
	RedisDB      int    `json:"redis_db,omitempty"`
	Key          string `json:"key"`
	LogLevel     string `json:"log_level"`
	LogFormat    string `json:"log_format"`
	DefaultSort  string `json:"default_sort"`
	WriteTimeout string `json:"write_timeout,omitempty"`
	Locale       string `json:"locale,omitempty"`

	// Resolved values (computed, not serialized)
	EffectiveCwd string `json:"-"`
	DataDirAbs   string `json:"-"`

	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string
	Project string
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		DataDir:     DefaultDataDir,
		Backend:     kv.BackendFile,
		Key:         "games",
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		DefaultSort: string(game.SortPriority),
	}
}

// Overrides holds values given on the command line. Empty means unset.
type Overrides struct {
	DataDir string
	Backend string
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDir    string            // -C/--cwd value; os.Getwd() when empty
	ConfigPath string            // -c/--config value
	Overrides  Overrides         // CLI flags
	Env        map[string]string // environment variables
}

// Load resolves configuration with the following precedence (highest wins):
//  1. Defaults
//  2. Global user config ($XDG_CONFIG_HOME/gb/config.json or ~/.config/gb/config.json)
//  3. Project config (.gb.json in the working directory, if present)
//  4. Explicit config file (-c), which replaces the project lookup
//  5. Environment (GB_BACKEND, GB_REDIS_ADDR)
//  6. CLI overrides
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDir
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	if !filepath.IsAbs(workDir) {
		abs, err := filepath.Abs(workDir)
		if err != nil {
			return Config{}, fmt.Errorf("cannot resolve working directory: %w", err)
		}

		workDir = abs
	}

	cfg := Default()

	globalPath := globalConfigPath(input.Env)
	if globalPath != "" {
		fileCfg, loaded, err := loadFile(globalPath, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg = merge(cfg, fileCfg)
			cfg.Sources.Global = globalPath
		}
	}

	projectPath, mustExist := filepath.Join(workDir, FileName), false

	if input.ConfigPath != "" {
		projectPath, mustExist = input.ConfigPath, true
		if !filepath.IsAbs(projectPath) {
			projectPath = filepath.Join(workDir, projectPath)
		}
	}

	fileCfg, loaded, err := loadFile(projectPath, mustExist)
	if err != nil {
		return Config{}, err
	}

	if loaded {
		cfg = merge(cfg, fileCfg)
		cfg.Sources.Project = projectPath
	}

	if v := input.Env["GB_BACKEND"]; v != "" {
		cfg.Backend = v
	}

	if v := input.Env["GB_REDIS_ADDR"]; v != "" {
		cfg.RedisAddr = v
	}

	if input.Overrides.DataDir != "" {
		cfg.DataDir = input.Overrides.DataDir
	}

	if input.Overrides.Backend != "" {
		cfg.Backend = input.Overrides.Backend
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}

	cfg.EffectiveCwd = workDir

	cfg.DataDirAbs = cfg.DataDir
	if !filepath.IsAbs(cfg.DataDirAbs) {
		cfg.DataDirAbs = filepath.Join(workDir, cfg.DataDir)
	}

	return cfg, nil
}

// Validate checks every field that has a closed set of values.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}

	if !kv.IsValidBackend(c.Backend) {
		return fmt.Errorf("%w: %q (want one of %s)", ErrInvalidBackend, c.Backend, strings.Join(kv.Backends, ", "))
	}

	if c.Backend == kv.BackendRedis && c.RedisAddr == "" {
		return ErrRedisAddrRequired
	}

	if err := kv.ValidateKey(c.Key); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}

	if !game.SortOrder(c.DefaultSort).IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSort, c.DefaultSort)
	}

	if _, err := c.Timeout(); err != nil {
		return err
	}

	if _, err := c.Language(); err != nil {
		return err
	}

	return nil
}

// Timeout parses WriteTimeout. Empty means no timeout.
func (c *Config) Timeout() (time.Duration, error) {
	if c.WriteTimeout == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(c.WriteTimeout)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, c.WriteTimeout)
	}

	return d, nil
}

// Language parses Locale. Empty means the root collation order.
func (c *Config) Language() (language.Tag, error) {
	if c.Locale == "" {
		return language.Und, nil
	}

	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q: %w", ErrInvalidLocale, c.Locale, err)
	}

	return tag, nil
}

// Format renders the resolved configuration as key=value lines.
func Format(cfg Config) string {
	var b strings.Builder

	line := func(k, v string) {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(v)
		b.WriteByte('\n')
	}

	line("effective_cwd", cfg.EffectiveCwd)
	line("data_dir", cfg.DataDirAbs)
	line("backend", cfg.Backend)

	if cfg.Backend == kv.BackendRedis {
		line("redis_addr", cfg.RedisAddr)
		line("redis_db", strconv.Itoa(cfg.RedisDB))
	}

	line("key", cfg.Key)
	line("log_level", cfg.LogLevel)
	line("log_format", cfg.LogFormat)
	line("default_sort", cfg.DefaultSort)

	if cfg.WriteTimeout != "" {
		line("write_timeout", cfg.WriteTimeout)
	}

	if cfg.Locale != "" {
		line("locale", cfg.Locale)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// globalConfigPath returns $XDG_CONFIG_HOME/gb/config.json, falling back to
// ~/.config/gb/config.json. Empty when neither variable is set.
func globalConfigPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "gb", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "gb", "config.json")
	}

	return ""
}

// loadFile reads a config file. A missing optional file is not an error.
func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !mustExist {
			return Config{}, false, nil
		}

		if os.IsNotExist(err) {
			return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}

		return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
	}

	cfg, err := parse(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, true, nil
}

// parse standardizes JSONC and decodes it. An explicitly empty data_dir is
// rejected here since merge cannot tell it apart from an absent one.
func parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	err = json.Unmarshal(standardized, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	if v, ok := raw["data_dir"].(string); ok && v == "" {
		return Config{}, ErrDataDirEmpty
	}

	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.DataDir != "" {
		base.DataDir = overlay.DataDir
	}

	if overlay.Backend != "" {
		base.Backend = overlay.Backend
	}

	if overlay.RedisAddr != "" {
		base.RedisAddr = overlay.RedisAddr
	}

	if overlay.RedisDB != 0 {
		base.RedisDB = overlay.RedisDB
	}

	if overlay.Key != "" {
		base.Key = overlay.Key
	}

	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}

	if overlay.LogFormat != "" {
		base.LogFormat = overlay.LogFormat
	}

	if overlay.DefaultSort != "" {
		base.DefaultSort = overlay.DefaultSort
	}

	if overlay.WriteTimeout != "" {
		base.WriteTimeout = overlay.WriteTimeout
	}

	if overlay.Locale != "" {
		base.Locale = overlay.Locale
	}

	return base
}
