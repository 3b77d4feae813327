package sqlstore

import (
	"context"
	"embed"
	"fmt"
	"sync"

	"github.com/ecotrack-service/internal/config"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// goose keeps its dialect and filesystem in package state.
var gooseMu sync.Mutex

func gooseSetup(db *DB) (string, error) {
	dialect, dir := "postgres", "migrations/postgres"
	if db.dialect == config.DriverSQLite {
		dialect, dir = "sqlite3", "migrations/sqlite"
	}

	if err := goose.SetDialect(dialect); err != nil {
		return "", err
	}
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{db.logger.Sugar()})
	return dir, nil
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, db *DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	dir, err := gooseSetup(db)
	if err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db.DB.DB, dir); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(ctx context.Context, db *DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	dir, err := gooseSetup(db)
	if err != nil {
		return err
	}
	if err := goose.DownContext(ctx, db.DB.DB, dir); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// MigrationStatus logs the applied state of every migration.
func MigrationStatus(ctx context.Context, db *DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	dir, err := gooseSetup(db)
	if err != nil {
		return err
	}
	return goose.StatusContext(ctx, db.DB.DB, dir)
}
