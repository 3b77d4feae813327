package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/ecotrack-service/internal/domain"
	pkgerrors "github.com/ecotrack-service/internal/pkg/errors"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

var locationColumns = []string{
	"location_id", "city_name", "location_type", "latitude", "longitude",
	"severity_level", "total_reports", "created_at", "updated_at",
}

type locationRepository struct {
	q      sqlx.ExtContext
	logger *zap.Logger
}

func (r *locationRepository) List(ctx context.Context, filter domain.LocationFilter) ([]domain.Location, error) {
	w := &where{}
	if filter.Severity != nil {
		w.add("severity_level = ?", *filter.Severity)
	}
	if filter.LocationType != nil {
		w.add("location_type = ?", *filter.LocationType)
	}

	query := "SELECT " + columns("locations", "", locationColumns) + " FROM locations" + w.String() + " ORDER BY city_name"

	locations := []domain.Location{}
	if err := sqlx.SelectContext(ctx, r.q, &locations, r.q.Rebind(query), w.args...); err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}

func (r *locationRepository) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	query := "SELECT " + columns("locations", "", locationColumns) + " FROM locations WHERE location_id = ?"

	var l domain.Location
	if err := sqlx.GetContext(ctx, r.q, &l, r.q.Rebind(query), id); err != nil {
		return nil, notFound(err)
	}
	return &l, nil
}

func (r *locationRepository) Create(ctx context.Context, l *domain.Location) error {
	now := time.Now().UTC()
	l.CreatedAt, l.UpdatedAt = now, now

	query := `
		INSERT INTO locations (
			city_name, location_type, latitude, longitude, severity_level,
			total_reports, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING location_id`

	err := r.q.QueryRowxContext(ctx, r.q.Rebind(query),
		l.CityName, l.LocationType, l.Latitude, l.Longitude, l.SeverityLevel,
		l.TotalReports, l.CreatedAt, l.UpdatedAt,
	).Scan(&l.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert location %q: %w", l.CityName, pkgerrors.ErrDuplicate)
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (r *locationRepository) IncrementReports(ctx context.Context, id int64) error {
	query := "UPDATE locations SET total_reports = total_reports + 1, updated_at = ? WHERE location_id = ?"

	res, err := r.q.ExecContext(ctx, r.q.Rebind(query), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("increment location reports: %w", err)
	}
	return affected(res)
}
