package persistence

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationFiles embed.FS

type execFunc func(ctx context.Context, statement string) error

// RunMigrations executes the embedded Postgres migrations in filename order.
// Every migration is written to be safe to re-apply.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping migrations")
		return nil
	}
	return applyMigrations(ctx, "migrations/postgres", func(ctx context.Context, statement string) error {
		_, err := pool.Exec(ctx, statement)
		return err
	}, logger)
}

// RunSQLiteMigrations executes the embedded SQLite migrations in filename order.
func RunSQLiteMigrations(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	if db == nil {
		logger.Warn("no sqlite handle available; skipping migrations")
		return nil
	}
	return applyMigrations(ctx, "migrations/sqlite", func(ctx context.Context, statement string) error {
		_, err := db.ExecContext(ctx, statement)
		return err
	}, logger)
}

// SQLiteSchema returns the concatenated SQLite migrations.
func SQLiteSchema() (string, error) {
	names, err := migrationNames("migrations/sqlite")
	if err != nil {
		return "", err
	}
	var schema string
	for _, name := range names {
		content, err := migrationFiles.ReadFile(path.Join("migrations/sqlite", name))
		if err != nil {
			return "", err
		}
		schema += string(content) + "\n"
	}
	return schema, nil
}

func applyMigrations(ctx context.Context, dir string, exec execFunc, logger *zap.Logger) error {
	filenames, err := migrationNames(dir)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	for _, name := range filenames {
		content, err := migrationFiles.ReadFile(path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}

		logger.Info("applying migration", zap.String("file", name))
		if err := exec(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}

	logger.Info("migrations applied", zap.Int("count", len(filenames)))
	return nil
}

func migrationNames(dir string) ([]string, error) {
	entries, err := fs.ReadDir(migrationFiles, dir)
	if err != nil {
		return nil, err
	}
	filenames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		filenames = append(filenames, entry.Name())
	}
	sort.Strings(filenames)
	return filenames, nil
}
