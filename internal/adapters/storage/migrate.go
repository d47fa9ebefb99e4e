package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// migrateUp applies every pending migration for the given dialect.
// The pool stays open afterwards.
func migrateUp(ctx context.Context, db *sql.DB, driver string) error {
	src, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("loading embedded migrations: %w", err)
	}

	target, release, err := migrationTarget(ctx, db, driver)
	if err != nil {
		_ = src.Close()
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		_ = src.Close()
		release()
		return fmt.Errorf("creating migrator: %w", err)
	}

	upErr := m.Up()

	// Migrate.Close would also close the shared pool for SQLite, so only
	// the source and the dedicated connection are released here.
	_ = src.Close()
	release()

	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", upErr)
	}

	return nil
}

// migrationTarget builds the golang-migrate database driver for the dialect.
// The returned release func frees any connection reserved for migrating.
func migrationTarget(ctx context.Context, db *sql.DB, driver string) (database.Driver, func(), error) {
	switch driver {
	case DriverPostgres:
		conn, err := db.Conn(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("reserving migration connection: %w", err)
		}

		target, err := migratepg.WithConnection(ctx, conn, &migratepg.Config{})
		if err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("creating postgres migration driver: %w", err)
		}

		return target, func() { _ = conn.Close() }, nil

	case DriverSQLite:
		target, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
		if err != nil {
			return nil, nil, fmt.Errorf("creating sqlite migration driver: %w", err)
		}

		return target, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
