// Package sqlitekv persists the card collection in a local SQLite
// database used as a two-record key-value store.
//
// SQLite (the pure-Go modernc.org/sqlite driver, so no cgo) plays the
// role of the durable client-side store: a single file, no server. The
// schema is managed by embedded goose migrations.
package sqlitekv

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB is a SQLite-backed key-value store. Values are opaque text; the
// collection store above it decides the payload format.
type DB struct {
	conn *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// brings its schema up to date. Use ":memory:" for an ephemeral store
// in tests.
func Open(path string) (*DB, error) {
	if path == "" {
		return nil, errors.New("sqlitekv: database path cannot be empty")
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitekv: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("sqlitekv: pinging database: %w", err)
	}

	// WAL keeps reads open while the autosave writer commits.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("sqlitekv: setting WAL mode: %w", err)
	}

	if err := migrate(conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("sqlitekv: running migrations: %w", err)
	}

	return &DB{conn: conn}, nil
}

// migrate applies the embedded goose migrations.
func migrate(conn *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.Up(conn, "migrations"); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Get reads the value stored under key. The second return is false when
// the key has never been written.
func (db *DB) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := db.conn.QueryRowContext(ctx,
		`SELECT value FROM keyvalue WHERE key = ?`, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlitekv: reading key %q: %w", key, err)
	}

	return value, true, nil
}

// Set writes value under key, replacing any previous value.
func (db *DB) Set(ctx context.Context, key, value string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO keyvalue (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("sqlitekv: writing key %q: %w", key, err)
	}

	return nil
}
