package repository

import (
	"context"

	"github.com/ecotrack-service/internal/domain"
)

type SpeciesRepository interface {
	List(ctx context.Context, filter domain.SpeciesFilter) ([]domain.Species, error)

	// Search matches q case-insensitively against common and scientific names.
	Search(ctx context.Context, q string) ([]domain.Species, error)

	GetByID(ctx context.Context, id int64) (*domain.Species, error)
	Create(ctx context.Context, s *domain.Species) error

	// RefreshStats recomputes the derived fields of one species from its
	// verified sightings.
	RefreshStats(ctx context.Context, id int64) error

	// RefreshAllStats does the same for every species and returns how many
	// rows were refreshed.
	RefreshAllStats(ctx context.Context) (int64, error)
}
