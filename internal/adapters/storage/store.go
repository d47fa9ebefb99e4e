// Package storage provides the relational persistence adapter for quotes.
//
// Two drivers are supported: PostgreSQL through lib/pq and SQLite through the
// pure-Go modernc.org/sqlite driver. The schema is embedded per dialect and
// applied with golang-migrate when the store is opened.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds database connection settings.
type Config struct {
	// Driver selects the database dialect: "postgres" or "sqlite".
	Driver string

	// DSN is the driver-specific connection string.
	// For SQLite this is a file path, a file: URI or ":memory:".
	DSN string

	// MaxOpenConns limits open connections. Ignored for SQLite, which always uses one.
	MaxOpenConns int

	// MaxIdleConns limits idle connections kept in the pool.
	MaxIdleConns int

	// ConnMaxLifetime is the maximum time a connection may be reused.
	// Zero means connections are reused forever.
	ConnMaxLifetime time.Duration
}

// Open connects to the configured database, applies pending migrations and
// returns a ready-to-use QuoteStore. The caller owns the store and must Close it.
func Open(ctx context.Context, cfg Config) (*QuoteStore, error) {
	if cfg.Driver != DriverPostgres && cfg.Driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	if cfg.Driver == DriverSQLite {
		if err := ensureSQLiteDir(cfg.DSN); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	configurePool(db, cfg)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("setting busy timeout: %w", err)
		}
	}

	if err := migrateUp(ctx, db.DB, cfg.Driver); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return NewQuoteStore(db), nil
}

func configurePool(db *sqlx.DB, cfg Config) {
	if cfg.Driver == DriverSQLite {
		// A single connection avoids "database is locked" errors and keeps
		// an in-memory database alive for the lifetime of the pool.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		return
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
}

// ensureSQLiteDir creates the parent directory of a file-backed SQLite DSN.
func ensureSQLiteDir(dsn string) error {
	path, _, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if path == "" || strings.HasPrefix(path, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}

	return nil
}
