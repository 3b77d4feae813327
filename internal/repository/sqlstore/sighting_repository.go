package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/ecotrack-service/internal/domain"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

var sightingColumns = []string{
	"sighting_id", "species_id", "location_id", "sighting_date", "sighting_time",
	"number_observed", "observer_name", "observer_contact", "verification_status",
	"notes", "photo_url", "created_at",
}

var sightingDetailSelect = "SELECT " +
	columns("s", "", sightingColumns) + ", " +
	columns("sp", "species.", speciesColumns) + ", " +
	columns("l", "location.", locationColumns) + `
	FROM sightings s
	JOIN species sp ON sp.species_id = s.species_id
	JOIN locations l ON l.location_id = s.location_id`

type sightingRepository struct {
	q      sqlx.ExtContext
	logger *zap.Logger
}

func (r *sightingRepository) List(ctx context.Context, filter domain.SightingFilter) ([]domain.SightingDetail, error) {
	w := &where{}
	if filter.SpeciesID != nil {
		w.add("s.species_id = ?", *filter.SpeciesID)
	}
	if filter.LocationID != nil {
		w.add("s.location_id = ?", *filter.LocationID)
	}
	if filter.Status != nil {
		w.add("s.verification_status = ?", *filter.Status)
	}

	query := sightingDetailSelect + w.String() +
		" ORDER BY s.sighting_date DESC, s.created_at DESC, s.sighting_id DESC LIMIT ?"
	args := append(w.args, domain.ClampLimit(filter.Limit))

	sightings := []domain.SightingDetail{}
	if err := sqlx.SelectContext(ctx, r.q, &sightings, r.q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list sightings: %w", err)
	}
	return sightings, nil
}

func (r *sightingRepository) GetByID(ctx context.Context, id int64) (*domain.SightingDetail, error) {
	query := sightingDetailSelect + " WHERE s.sighting_id = ?"

	var s domain.SightingDetail
	if err := sqlx.GetContext(ctx, r.q, &s, r.q.Rebind(query), id); err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *sightingRepository) Create(ctx context.Context, s *domain.Sighting) error {
	s.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO sightings (
			species_id, location_id, sighting_date, sighting_time, number_observed,
			observer_name, observer_contact, verification_status, notes, photo_url, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING sighting_id`

	err := r.q.QueryRowxContext(ctx, r.q.Rebind(query),
		s.SpeciesID, s.LocationID, s.SightingDate, s.SightingTime, s.NumberObserved,
		s.ObserverName, s.ObserverContact, s.VerificationStatus, s.Notes, s.PhotoURL, s.CreatedAt,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert sighting: %w", err)
	}
	return nil
}

func (r *sightingRepository) UpdateStatus(ctx context.Context, id int64, status domain.VerificationStatus) error {
	query := "UPDATE sightings SET verification_status = ? WHERE sighting_id = ?"

	res, err := r.q.ExecContext(ctx, r.q.Rebind(query), status, id)
	if err != nil {
		return fmt.Errorf("update sighting status: %w", err)
	}
	return affected(res)
}

func (r *sightingRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind("DELETE FROM sightings WHERE sighting_id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete sighting: %w", err)
	}
	return affected(res)
}

func (r *sightingRepository) CountByLocation(ctx context.Context, category domain.Category, limit int) ([]domain.SightingsByLocation, error) {
	query := `
		SELECT l.location_id, l.city_name, COUNT(s.sighting_id) AS sighting_count
		FROM locations l
		JOIN sightings s ON s.location_id = l.location_id
		JOIN species sp ON sp.species_id = s.species_id
		WHERE sp.category = ?
		GROUP BY l.location_id, l.city_name
		ORDER BY sighting_count DESC, l.city_name
		LIMIT ?`

	rows := []domain.SightingsByLocation{}
	if err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(query), category, limit); err != nil {
		return nil, fmt.Errorf("count sightings by location: %w", err)
	}
	return rows, nil
}
