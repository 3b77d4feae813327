package main

import (
	"context"

	"github.com/ecotrack-service/internal/repository/sqlstore"
	"github.com/spf13/cobra"
)

// getMigrateCmd returns the migrate command with its up/down/status
// subcommands.
func getMigrateCmd(a *app) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long: `Migrate applies or rolls back the embedded SQL migrations.

Subcommands:
  up      apply every pending migration (also seeds report categories and severities)
  down    roll back the most recent migration
  status  print the applied state of every migration`,
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(cmd.Context(), sqlstore.Migrate)
		},
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(cmd.Context(), sqlstore.MigrateDown)
		},
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(cmd.Context(), sqlstore.MigrationStatus)
		},
	})

	return migrateCmd
}

func (a *app) withDB(ctx context.Context, fn func(context.Context, *sqlstore.DB) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := a.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(ctx, db)
}
