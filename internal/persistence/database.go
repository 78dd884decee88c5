package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/ticketing-api/internal/config"
)

// Database is the relational store selected by DB_DRIVER. Exactly one of
// Postgres and SQLite is set.
type Database struct {
	Driver   string
	Postgres *Postgres
	SQLite   *SQLite
}

// OpenDatabase connects to the configured driver.
func OpenDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Database, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pg, err := NewPostgres(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &Database{Driver: cfg.Driver, Postgres: pg}, nil
	case config.DriverSQLite:
		lite, err := NewSQLite(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return &Database{Driver: cfg.Driver, SQLite: lite}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Migrate applies the schema for the active driver.
func (d *Database) Migrate(ctx context.Context, logger *zap.Logger) error {
	if d.SQLite != nil {
		return RunSQLiteMigrations(ctx, d.SQLite.DB, logger)
	}
	return RunMigrations(ctx, d.Postgres.PoolHandle(), logger)
}

// Ping verifies connectivity of the active driver.
func (d *Database) Ping(ctx context.Context) error {
	if d.SQLite != nil {
		return d.SQLite.Ping(ctx)
	}
	return d.Postgres.Ping(ctx)
}

// Close releases the active driver's resources.
func (d *Database) Close() {
	d.Postgres.Close()
	d.SQLite.Close()
}
