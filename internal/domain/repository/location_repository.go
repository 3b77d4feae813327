package repository

import (
	"context"

	"github.com/ecotrack-service/internal/domain"
)

type LocationRepository interface {
	List(ctx context.Context, filter domain.LocationFilter) ([]domain.Location, error)
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
	Create(ctx context.Context, l *domain.Location) error

	// IncrementReports bumps total_reports by one. Returns ErrNotFound when
	// no location has that id.
	IncrementReports(ctx context.Context, id int64) error
}
