package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/ecotrack-service/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const (
	driverPgx    = "pgx"
	driverSQLite = "sqlite"
)

func init() {
	sqlx.BindDriver(driverSQLite, sqlx.QUESTION)
}

type DB struct {
	*sqlx.DB
	dialect string
	logger  *zap.Logger
}

// New opens the configured database. SQLite is limited to one open
// connection, so callers must not query the pool while a transaction is open.
func New(cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	var (
		driverName string
		dsn        string
	)

	switch cfg.Driver {
	case config.DriverPostgres:
		driverName = driverPgx
		dsn = fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
		)
	case config.DriverSQLite:
		driverName = driverSQLite
		dsn = config.SQLiteDSN(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sqlx.Connect(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Connection pool settings
	if cfg.Driver == config.DriverSQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		logger.Info("SQLite opened", zap.String("path", cfg.Path))
	} else {
		logger.Info("PostgreSQL connected",
			zap.String("host", cfg.Host),
			zap.Int("port", cfg.Port),
			zap.String("database", cfg.DBName),
		)
	}

	return &DB{DB: db, dialect: cfg.Driver, logger: logger}, nil
}

// Dialect returns config.DriverPostgres or config.DriverSQLite.
func (db *DB) Dialect() string {
	return db.dialect
}

func (db *DB) Close() error {
	db.logger.Info("Closing database connection", zap.String("dialect", db.dialect))
	return db.DB.Close()
}

func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// NewDBForTest wraps an already opened connection.
func NewDBForTest(sqlxDB *sqlx.DB, dialect string, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{
		DB:      sqlxDB,
		dialect: dialect,
		logger:  logger,
	}
}
