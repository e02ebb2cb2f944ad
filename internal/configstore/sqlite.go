package configstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/jviciana84/prod-sub002/pkg/pricing"
)

// SQLiteStore keeps the configuration in a local SQLite key/value table.
type SQLiteStore struct {
	db  *sql.DB
	key string
}

// OpenSQLite opens (or creates) the database at path and prepares the
// config table. An empty key uses DefaultKey.
func OpenSQLite(ctx context.Context, path, key string) (*SQLiteStore, error) {
	if key == "" {
		key = DefaultKey
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating sqlite directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS config (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating config table: %w", err)
	}

	return &SQLiteStore{db: db, key: key}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns the saved configuration or ErrNotFound.
func (s *SQLiteStore) Load(ctx context.Context) (pricing.Config, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return pricing.Config{}, ErrNotFound
	}
	if err != nil {
		return pricing.Config{}, fmt.Errorf("reading config %s: %w", s.key, err)
	}
	return decode([]byte(value))
}

// Save validates and stores cfg, replacing any previous value.
func (s *SQLiteStore) Save(ctx context.Context, cfg pricing.Config) error {
	b, err := encode(cfg)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`,
		s.key, string(b),
	); err != nil {
		return fmt.Errorf("writing config %s: %w", s.key, err)
	}
	return nil
}
