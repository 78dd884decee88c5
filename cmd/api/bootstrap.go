package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spec-kit/ticketing-api/internal/service"
)

// BootstrapCmd returns the command that seeds the administrator account.
func BootstrapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Apply migrations and create the admin account",
		Long: `Connects to the configured database, applies the schema and creates the
administrator account from BOOTSTRAP_ADMIN_USERNAME / BOOTSTRAP_ADMIN_PASSWORD.

Existing accounts are left untouched, so the command can be run repeatedly.`,
		RunE: runBootstrap,
	}
	return cmd
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx := cmd.Context()
	cfg.Database.RunMigrations = true
	db, repos, err := openStore(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", color.New(color.FgRed).Sprint("FAILED"), err)
		return err
	}
	defer db.Close()

	created, err := service.NewBootstrapService(repos.Users, cfg.Auth.BcryptCost, logger).EnsureAdmin(ctx, cfg.Bootstrap)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", color.New(color.FgRed).Sprint("FAILED"), err)
		return err
	}

	status := color.New(color.FgBlue).Sprint("EXISTS ")
	if created {
		status = color.New(color.FgGreen).Sprint("CREATE ")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s admin account %q (%s)\n", status, cfg.Bootstrap.AdminUsername, db.Driver)
	return nil
}
