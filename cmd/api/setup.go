package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spec-kit/ticketing-api/internal/config"
	"github.com/spec-kit/ticketing-api/internal/observability"
	"github.com/spec-kit/ticketing-api/internal/persistence"
	"github.com/spec-kit/ticketing-api/internal/repository"
	sqliterepo "github.com/spec-kit/ticketing-api/internal/repository/sqlite"
)

const configFlag = "config"

func addConfigFlag(flags *pflag.FlagSet) {
	flags.StringP(configFlag, "c", "", "path to a YAML config file (overrides CONFIG_FILE)")
}

// loadConfig resolves the config file from --config, falling back to CONFIG_FILE.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString(configFlag)
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger.With(zap.String("service", cfg.App.Name), zap.String("env", cfg.App.Env)), nil
}

// openStore connects to the configured database, applies migrations when
// enabled and returns repositories for the active driver.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*persistence.Database, repository.Repositories, error) {
	db, err := persistence.OpenDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return nil, repository.Repositories{}, err
	}

	if cfg.Database.RunMigrations {
		if err := db.Migrate(ctx, logger); err != nil {
			db.Close()
			return nil, repository.Repositories{}, fmt.Errorf("run migrations: %w", err)
		}
	}

	var repos repository.Repositories
	switch {
	case db.SQLite != nil:
		repos = sqliterepo.NewRepositories(db.SQLite.DB)
	default:
		repos = repository.NewPostgresRepositories(db.Postgres.PoolHandle())
	}
	return db, repos, nil
}
