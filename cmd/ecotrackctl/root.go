package main

import (
	"fmt"

	"github.com/ecotrack-service/internal/config"
	"github.com/ecotrack-service/internal/pkg/logger"
	"github.com/ecotrack-service/internal/repository/sqlstore"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app - состояние, общее для всех подкоманд
type app struct {
	cfg *config.Config
	log *zap.Logger
}

func getRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "ecotrackctl",
		Short: "Administrative tasks for the EcoTrack database",
		Long: `ecotrackctl manages the EcoTrack database outside the API process.

It reads the same .env file and environment variables as the API
(DB_DRIVER, DB_PATH, DB_HOST, ...).

Examples:
  ecotrackctl migrate up
  ecotrackctl create-user --username admin --full-name "Site Admin" --password s3cret! --admin`,
		PersistentPreRunE: a.bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	rootCmd.AddCommand(getMigrateCmd(a))
	rootCmd.AddCommand(getCreateUserCmd(a))

	return rootCmd
}

func (a *app) bootstrap(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	a.cfg = cfg
	a.log = log
	return nil
}

// openDB opens the configured database; the caller closes it.
func (a *app) openDB() (*sqlstore.DB, error) {
	db, err := sqlstore.New(&a.cfg.Database, a.log)
	if err != nil {
		return nil, err
	}
	a.log.Info("Connected to database",
		zap.String("driver", a.cfg.Database.Driver),
		zap.String("database", a.databaseName()))
	return db, nil
}

func (a *app) databaseName() string {
	if a.cfg.Database.Driver == config.DriverSQLite {
		return a.cfg.Database.Path
	}
	return fmt.Sprintf("%s@%s:%d/%s", a.cfg.Database.User, a.cfg.Database.Host, a.cfg.Database.Port, a.cfg.Database.DBName)
}
