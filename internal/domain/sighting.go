package domain

import "time"

type Sighting struct {
	ID                 int64              `db:"sighting_id" json:"sighting_id"`
	SpeciesID          int64              `db:"species_id" json:"species_id"`
	LocationID         int64              `db:"location_id" json:"location_id"`
	SightingDate       Date               `db:"sighting_date" json:"sighting_date"`
	SightingTime       *string            `db:"sighting_time" json:"sighting_time"`
	NumberObserved     int                `db:"number_observed" json:"number_observed"`
	ObserverName       string             `db:"observer_name" json:"observer_name"`
	ObserverContact    string             `db:"observer_contact" json:"observer_contact"`
	VerificationStatus VerificationStatus `db:"verification_status" json:"verification_status"`
	Notes              *string            `db:"notes" json:"notes"`
	PhotoURL           *string            `db:"photo_url" json:"photo_url"`
	CreatedAt          time.Time          `db:"created_at" json:"created_at"`
}

// SightingDetail is a sighting with its species and location joined in.
type SightingDetail struct {
	Sighting
	Species  Species  `db:"species" json:"species"`
	Location Location `db:"location" json:"location"`
}

type SightingFilter struct {
	SpeciesID  *int64
	LocationID *int64
	Status     *VerificationStatus
	Limit      int
}

// SightingsByLocation is one row of the per-city sighting breakdown.
type SightingsByLocation struct {
	LocationID int64  `db:"location_id" json:"location_id"`
	City       string `db:"city_name" json:"city"`
	Sightings  int    `db:"sighting_count" json:"sightings"`
}
