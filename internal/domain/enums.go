package domain

import "strings"

// Category is the habitat a species belongs to.
type Category string

const (
	CategoryLand  Category = "land"
	CategoryWater Category = "water"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryLand, CategoryWater:
		return true
	}
	return false
}

func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

// SpeciesType is the taxonomic group shown in the catalog.
type SpeciesType string

const (
	SpeciesBird      SpeciesType = "bird"
	SpeciesMammal    SpeciesType = "mammal"
	SpeciesReptile   SpeciesType = "reptile"
	SpeciesAmphibian SpeciesType = "amphibian"
	SpeciesFish      SpeciesType = "fish"
	SpeciesInsect    SpeciesType = "insect"
	SpeciesPlant     SpeciesType = "plant"
	SpeciesOther     SpeciesType = "other"
)

func (t SpeciesType) Valid() bool {
	switch t {
	case SpeciesBird, SpeciesMammal, SpeciesReptile, SpeciesAmphibian,
		SpeciesFish, SpeciesInsect, SpeciesPlant, SpeciesOther:
		return true
	}
	return false
}

func ParseSpeciesType(s string) (SpeciesType, bool) {
	t := SpeciesType(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

type StatusTrend string

const (
	TrendStable     StatusTrend = "stable"
	TrendIncreasing StatusTrend = "increasing"
	TrendDecreasing StatusTrend = "decreasing"
	TrendUnknown    StatusTrend = "unknown"
)

func (t StatusTrend) Valid() bool {
	switch t {
	case TrendStable, TrendIncreasing, TrendDecreasing, TrendUnknown:
		return true
	}
	return false
}

func ParseStatusTrend(s string) (StatusTrend, bool) {
	t := StatusTrend(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

type LocationType string

const (
	LocationCity         LocationType = "city"
	LocationMunicipality LocationType = "municipality"
)

func (t LocationType) Valid() bool {
	switch t {
	case LocationCity, LocationMunicipality:
		return true
	}
	return false
}

func ParseLocationType(s string) (LocationType, bool) {
	t := LocationType(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

// Severity is shared by locations and environmental reports. Values are
// capitalized on the wire.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

var severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// ParseSeverity accepts any casing and normalizes to the canonical form.
func ParseSeverity(s string) (Severity, bool) {
	v := strings.TrimSpace(s)
	for _, sev := range severities {
		if strings.EqualFold(v, string(sev)) {
			return sev, true
		}
	}
	return Severity(v), false
}

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

func (v VerificationStatus) Valid() bool {
	switch v {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return true
	}
	return false
}

func ParseVerificationStatus(s string) (VerificationStatus, bool) {
	v := VerificationStatus(strings.ToLower(strings.TrimSpace(s)))
	return v, v.Valid()
}

type ReportType string

const (
	ReportPollution        ReportType = "pollution"
	ReportHabitatLoss      ReportType = "habitat_loss"
	ReportIllegalActivity  ReportType = "illegal_activity"
	ReportWildlifeIncident ReportType = "wildlife_incident"
	ReportOther            ReportType = "other"
)

func (t ReportType) Valid() bool {
	switch t {
	case ReportPollution, ReportHabitatLoss, ReportIllegalActivity, ReportWildlifeIncident, ReportOther:
		return true
	}
	return false
}

func ParseReportType(s string) (ReportType, bool) {
	t := ReportType(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusInProgress ReportStatus = "in_progress"
	ReportStatusCompleted  ReportStatus = "completed"
	ReportStatusClosed     ReportStatus = "closed"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportStatusPending, ReportStatusInProgress, ReportStatusCompleted, ReportStatusClosed:
		return true
	}
	return false
}

func ParseReportStatus(s string) (ReportStatus, bool) {
	v := ReportStatus(strings.ToLower(strings.TrimSpace(s)))
	return v, v.Valid()
}

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleObserver  Role = "observer"
	RolePublic    Role = "public"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleObserver, RolePublic:
		return true
	}
	return false
}

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}
