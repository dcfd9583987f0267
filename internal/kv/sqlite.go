package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
)

// SQLiteFileName is the database file created inside the data directory.
const SQLiteFileName = "backlog.sqlite"

// currentSchemaVersion is stored in SQLite's user_version pragma.
const currentSchemaVersion = 1

// sqliteBusyTimeout is the time SQLite waits when the database is locked.
const sqliteBusyTimeout = 10000 // milliseconds

// SQLite stores values in a single kv table.
type SQLite struct {
	sql *sql.DB
}

// OpenSQLite opens (or creates) <dir>/backlog.sqlite.
func OpenSQLite(ctx context.Context, dir string) (*SQLite, error) {
	if ctx == nil {
		return nil, errors.New("open sqlite store: context is nil")
	}

	if dir == "" {
		return nil, errors.New("open sqlite store: directory is empty")
	}

	err := os.MkdirAll(dir, dirPerms)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}

	db, err := openSqlite(ctx, filepath.Join(dir, SQLiteFileName))
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}

	err = ensureSchema(ctx, db)
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("open sqlite store: %w", err)
	}

	return &SQLite{sql: db}, nil
}

// Get implements Store.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	err := ValidateKey(key)
	if err != nil {
		return nil, err
	}

	row := s.sql.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key)

	var value []byte

	err = row.Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}

		return nil, fmt.Errorf("select %s: %w", key, err)
	}

	return value, nil
}

// Set implements Store.
func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	err := ValidateKey(key)
	if err != nil {
		return err
	}

	if value == nil {
		value = []byte{}
	}

	_, err = s.sql.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}

	return nil
}

// Close implements Store.
func (s *SQLite) Close() error {
	if s == nil || s.sql == nil {
		return nil
	}

	err := s.sql.Close()
	if err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}

	return nil
}

// openSqlite opens the database and applies the configured pragmas.
func openSqlite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	err = db.PingContext(ctx)
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		PRAGMA busy_timeout = %d;
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = FULL;
	`, sqliteBusyTimeout))
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	return db, nil
}

// ensureSchema creates the kv table on first open and stamps user_version.
// A database written by a newer schema is rejected rather than modified.
func ensureSchema(ctx context.Context, db *sql.DB) error {
	var version int

	err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version == currentSchemaVersion {
		return nil
	}

	if version > currentSchemaVersion {
		return fmt.Errorf("unsupported schema version %d (max %d)", version, currentSchemaVersion)
	}

	_, err = db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	) WITHOUT ROWID`)
	if err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion))
	if err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}
