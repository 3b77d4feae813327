package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ecotrack-service/internal/domain/repository"
	pkgerrors "github.com/ecotrack-service/internal/pkg/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type store struct {
	db     *DB
	logger *zap.Logger
}

// NewStore returns the unit of work over db.
func NewStore(db *DB, logger *zap.Logger) repository.Store {
	return &store{db: db, logger: logger}
}

func (s *store) Repos() repository.Repositories {
	return s.bind(s.db.DB, true)
}

func (s *store) WithinTx(ctx context.Context, fn func(tx repository.Repositories) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(s.bind(tx, false)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *store) Health(ctx context.Context) error {
	return s.db.Health(ctx)
}

// bind builds repositories over q. pooled reports whether q is the pool,
// which allows concurrent queries.
func (s *store) bind(q sqlx.ExtContext, pooled bool) repository.Repositories {
	return repository.Repositories{
		Species:   &speciesRepository{q: q, logger: s.logger},
		Locations: &locationRepository{q: q, logger: s.logger},
		Sightings: &sightingRepository{q: q, logger: s.logger},
		Reports:   &reportRepository{q: q, logger: s.logger},
		Users:     &userRepository{q: q, logger: s.logger},
		Activity:  &activityRepository{q: q, logger: s.logger},
		Dashboard: &dashboardRepository{q: q, logger: s.logger, concurrent: pooled},
		Lookups:   &lookupRepository{q: q},
	}
}

// notFound maps sql.ErrNoRows to the repository sentinel.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return pkgerrors.ErrNotFound
	}
	return err
}

// affected returns ErrNotFound when a write touched no row.
func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
	}
	return false
}

// columns renders "alias.col AS "prefix.col"" lists so sqlx can fill nested
// structs from a join.
func columns(alias, prefix string, cols []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		if prefix == "" {
			parts[i] = alias + "." + c
			continue
		}
		parts[i] = fmt.Sprintf(`%s.%s AS "%s%s"`, alias, c, prefix, c)
	}
	return strings.Join(parts, ", ")
}

// likePattern escapes LIKE metacharacters and wraps q for substring search.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(q)) + "%"
}

// where accumulates AND-ed predicates with their arguments.
type where struct {
	clauses []string
	args    []interface{}
}

func (w *where) add(clause string, arg interface{}) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, arg)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}
