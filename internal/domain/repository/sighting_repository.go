package repository

import (
	"context"

	"github.com/ecotrack-service/internal/domain"
)

type SightingRepository interface {
	// List returns sightings newest first (sighting_date, then created_at).
	List(ctx context.Context, filter domain.SightingFilter) ([]domain.SightingDetail, error)
	GetByID(ctx context.Context, id int64) (*domain.SightingDetail, error)
	Create(ctx context.Context, s *domain.Sighting) error
	UpdateStatus(ctx context.Context, id int64, status domain.VerificationStatus) error
	Delete(ctx context.Context, id int64) error

	// CountByLocation groups sightings of one species category per city,
	// busiest first.
	CountByLocation(ctx context.Context, category domain.Category, limit int) ([]domain.SightingsByLocation, error)
}
