package domain

import "time"

// DashboardStats is the snapshot for one calendar day. It is created on the
// first read of the day and only patched by report creation afterwards.
type DashboardStats struct {
	ID                int64     `db:"stat_id" json:"stat_id"`
	StatDate          Date      `db:"stat_date" json:"stat_date"`
	TotalReports      int       `db:"total_reports" json:"total_reports"`
	PendingReports    int       `db:"pending_reports" json:"pending_reports"`
	CompletedReports  int       `db:"completed_reports" json:"completed_reports"`
	CriticalReports   int       `db:"critical_reports" json:"critical_reports"`
	TotalSightings    int       `db:"total_sightings" json:"total_sightings"`
	VerifiedSightings int       `db:"verified_sightings" json:"verified_sightings"`
	LandSpeciesCount  int       `db:"land_species_count" json:"land_species_count"`
	WaterSpeciesCount int       `db:"water_species_count" json:"water_species_count"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// StatsIncrement is the patch applied to today's row after a report commit.
type StatsIncrement struct {
	Reports  int
	Pending  int
	Critical int
}

func IncrementFor(r *EnvironmentalReport) StatsIncrement {
	inc := StatsIncrement{Reports: 1}
	if r.Status == ReportStatusPending {
		inc.Pending = 1
	}
	if r.Severity == SeverityCritical {
		inc.Critical = 1
	}
	return inc
}
