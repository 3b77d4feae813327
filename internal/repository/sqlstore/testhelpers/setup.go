package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ecotrack-service/internal/config"
	"github.com/ecotrack-service/internal/domain/repository"
	"github.com/ecotrack-service/internal/repository/sqlstore"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// TestDB is a migrated database plus the store over it.
type TestDB struct {
	DB     *sqlstore.DB
	Store  repository.Store
	Logger *zap.Logger
}

// SetupSQLite opens a migrated SQLite database in a temp dir. It is closed
// when the test ends.
func SetupSQLite(t testing.TB) *TestDB {
	t.Helper()

	logger := zap.NewNop()
	cfg := &config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "ecotrack_test.db"),
	}

	db, err := sqlstore.New(cfg, logger)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := sqlstore.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return &TestDB{
		DB:     db,
		Store:  sqlstore.NewStore(db, logger),
		Logger: logger,
	}
}

// SetupPostgres connects to the integration database through lib/pq and
// migrates it. Skips the test unless TEST_DB_HOST is set.
func SetupPostgres(t testing.TB) *TestDB {
	t.Helper()

	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping PostgreSQL integration test")
	}

	port := getEnv("TEST_DB_PORT", "5433")
	user := getEnv("TEST_DB_USER", "postgres")
	password := getEnv("TEST_DB_PASSWORD", "postgres")
	dbname := getEnv("TEST_DB_NAME", "ecotrack_test")
	sslmode := getEnv("TEST_DB_SSLMODE", "disable")

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	// Retry connection with exponential backoff to wait for DB recovery
	var db *sqlx.DB
	var err error
	maxRetries := 10
	retryDelay := 500 * time.Millisecond

	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect("postgres", connStr)
		if err == nil {
			break
		}

		if i < maxRetries-1 {
			t.Logf("Database not ready (attempt %d/%d), waiting %v...", i+1, maxRetries, retryDelay)
			time.Sleep(retryDelay)
			retryDelay *= 2
		}
	}
	if err != nil {
		t.Fatalf("Failed to connect to test database after %d attempts: %v", maxRetries, err)
	}

	logger := zap.NewNop()
	wrapped := sqlstore.NewDBForTest(db, config.DriverPostgres, logger)
	t.Cleanup(func() { _ = wrapped.Close() })

	ctx := context.Background()
	if err := sqlstore.Migrate(ctx, wrapped); err != nil {
		t.Fatalf("migrate postgres: %v", err)
	}

	tdb := &TestDB{
		DB:     wrapped,
		Store:  sqlstore.NewStore(wrapped, logger),
		Logger: logger,
	}
	if err := tdb.Cleanup(ctx); err != nil {
		t.Fatalf("cleanup postgres: %v", err)
	}
	return tdb
}

// Cleanup empties every data table, keeping the seeded lookups.
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	// Children first
	tables := []string{
		"activity_log",
		"dashboard_stats",
		"sightings",
		"environmental_reports",
		"users",
		"locations",
		"species",
	}

	for _, table := range tables {
		if _, err := tdb.DB.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clean %s: %w", table, err)
		}
	}
	return nil
}

// getEnv gets environment variable or returns default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
