package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/ecotrack-service/internal/domain"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

var speciesColumns = []string{
	"species_id", "common_name", "scientific_name", "category", "species_type",
	"conservation_status", "status_trend", "total_sightings_estimate",
	"description", "habitat_info", "diet_info", "verified_sightings",
	"individuals_observed", "last_sighted_on", "created_at", "updated_at",
}

// Derived fields come from verified sightings only.
const refreshSpeciesStatsSQL = `
	UPDATE species SET
		verified_sightings = (
			SELECT COUNT(*) FROM sightings s
			WHERE s.species_id = species.species_id AND s.verification_status = 'verified'
		),
		individuals_observed = (
			SELECT COALESCE(SUM(s.number_observed), 0) FROM sightings s
			WHERE s.species_id = species.species_id AND s.verification_status = 'verified'
		),
		last_sighted_on = (
			SELECT s.sighting_date FROM sightings s
			WHERE s.species_id = species.species_id AND s.verification_status = 'verified'
			ORDER BY s.sighting_date DESC
			LIMIT 1
		),
		updated_at = ?`

type speciesRepository struct {
	q      sqlx.ExtContext
	logger *zap.Logger
}

func (r *speciesRepository) List(ctx context.Context, filter domain.SpeciesFilter) ([]domain.Species, error) {
	w := &where{}
	if filter.Category != nil {
		w.add("category = ?", *filter.Category)
	}
	if filter.SpeciesType != nil {
		w.add("species_type = ?", *filter.SpeciesType)
	}
	if filter.Query != "" {
		p := likePattern(filter.Query)
		w.clauses = append(w.clauses, `(LOWER(common_name) LIKE ? ESCAPE '\' OR LOWER(scientific_name) LIKE ? ESCAPE '\')`)
		w.args = append(w.args, p, p)
	}

	query := "SELECT " + columns("species", "", speciesColumns) + " FROM species" + w.String() + " ORDER BY common_name"

	species := []domain.Species{}
	if err := sqlx.SelectContext(ctx, r.q, &species, r.q.Rebind(query), w.args...); err != nil {
		return nil, fmt.Errorf("list species: %w", err)
	}
	return species, nil
}

func (r *speciesRepository) Search(ctx context.Context, q string) ([]domain.Species, error) {
	return r.List(ctx, domain.SpeciesFilter{Query: q})
}

func (r *speciesRepository) GetByID(ctx context.Context, id int64) (*domain.Species, error) {
	query := "SELECT " + columns("species", "", speciesColumns) + " FROM species WHERE species_id = ?"

	var s domain.Species
	if err := sqlx.GetContext(ctx, r.q, &s, r.q.Rebind(query), id); err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *speciesRepository) Create(ctx context.Context, s *domain.Species) error {
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	if s.StatusTrend == "" {
		s.StatusTrend = domain.TrendUnknown
	}
	if s.SpeciesType == "" {
		s.SpeciesType = domain.SpeciesOther
	}

	query := `
		INSERT INTO species (
			common_name, scientific_name, category, species_type, conservation_status,
			status_trend, total_sightings_estimate, description, habitat_info, diet_info,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING species_id`

	err := r.q.QueryRowxContext(ctx, r.q.Rebind(query),
		s.CommonName, s.ScientificName, s.Category, s.SpeciesType, s.ConservationStatus,
		s.StatusTrend, s.TotalSightingsEstimate, s.Description, s.HabitatInfo, s.DietInfo,
		s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert species: %w", err)
	}
	return nil
}

func (r *speciesRepository) RefreshStats(ctx context.Context, id int64) error {
	query := refreshSpeciesStatsSQL + " WHERE species_id = ?"

	res, err := r.q.ExecContext(ctx, r.q.Rebind(query), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("refresh species stats: %w", err)
	}
	return affected(res)
}

func (r *speciesRepository) RefreshAllStats(ctx context.Context) (int64, error) {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(refreshSpeciesStatsSQL), time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("refresh all species stats: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	r.logger.Debug("species stats refreshed", zap.Int64("species", n))
	return n, nil
}
