package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/spec-kit/ticketing-api/internal/config"
)

// DefaultSQLiteDSN enables foreign keys and takes the write lock when a
// transaction begins.
const DefaultSQLiteDSN = "file:ticketing.db?_foreign_keys=on&_txlock=immediate"

// SQLite wraps a database/sql handle backed by go-sqlite3.
type SQLite struct {
	DB *sql.DB
}

// NewSQLite opens the configured SQLite database.
func NewSQLite(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*SQLite, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = DefaultSQLiteDSN
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// a single writer avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)
	if cfg.ConnMaxLifeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifeSec) * time.Second)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("opened sqlite database", zap.String("dsn", dsn))
	return &SQLite{DB: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() {
	if s != nil && s.DB != nil {
		_ = s.DB.Close()
	}
}

// Ping verifies the database is reachable.
func (s *SQLite) Ping(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("sqlite database not configured")
	}
	return s.DB.PingContext(ctx)
}
