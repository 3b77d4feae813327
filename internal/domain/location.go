package domain

import "time"

// Location is a city or municipality. TotalReports counts every report ever
// filed against it; deleting a report does not decrement it.
type Location struct {
	ID            int64        `db:"location_id" json:"location_id"`
	CityName      string       `db:"city_name" json:"city_name"`
	LocationType  LocationType `db:"location_type" json:"location_type"`
	Latitude      float64      `db:"latitude" json:"latitude"`
	Longitude     float64      `db:"longitude" json:"longitude"`
	SeverityLevel Severity     `db:"severity_level" json:"severity_level"`
	TotalReports  int          `db:"total_reports" json:"total_reports"`
	CreatedAt     time.Time    `db:"created_at" json:"-"`
	UpdatedAt     time.Time    `db:"updated_at" json:"-"`
}

type LocationFilter struct {
	Severity     *Severity
	LocationType *LocationType
}
