package domain

import "time"

// Species is a catalog entry. VerifiedSightings, IndividualsObserved and
// LastSightedOn are derived from verified sightings and only written by the
// stats refresh.
type Species struct {
	ID                     int64       `db:"species_id" json:"species_id"`
	CommonName             string      `db:"common_name" json:"common_name"`
	ScientificName         string      `db:"scientific_name" json:"scientific_name"`
	Category               Category    `db:"category" json:"category"`
	SpeciesType            SpeciesType `db:"species_type" json:"species_type"`
	ConservationStatus     string      `db:"conservation_status" json:"conservation_status"`
	StatusTrend            StatusTrend `db:"status_trend" json:"status_trend"`
	TotalSightingsEstimate string      `db:"total_sightings_estimate" json:"total_sightings_estimate"`
	Description            string      `db:"description" json:"description"`
	HabitatInfo            string      `db:"habitat_info" json:"habitat_info"`
	DietInfo               string      `db:"diet_info" json:"diet_info"`
	VerifiedSightings      int         `db:"verified_sightings" json:"verified_sightings"`
	IndividualsObserved    int         `db:"individuals_observed" json:"individuals_observed"`
	LastSightedOn          *Date       `db:"last_sighted_on" json:"last_sighted_on"`
	CreatedAt              time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time   `db:"updated_at" json:"updated_at"`
}

// SpeciesStats is the derived part of a Species.
type SpeciesStats struct {
	SpeciesID           int64 `db:"species_id" json:"species_id"`
	VerifiedSightings   int   `db:"verified_sightings" json:"verified_sightings"`
	IndividualsObserved int   `db:"individuals_observed" json:"individuals_observed"`
	LastSightedOn       *Date `db:"last_sighted_on" json:"last_sighted_on"`
}

type SpeciesFilter struct {
	Category    *Category
	SpeciesType *SpeciesType
	Query       string
}
