package testhelpers

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ecotrack-service/internal/domain"
	"github.com/ecotrack-service/internal/pkg/password"
)

var seq atomic.Int64

func next() int64 {
	return seq.Add(1)
}

// CreateSpecies inserts a species of the given category.
func (tdb *TestDB) CreateSpecies(t testing.TB, name string, category domain.Category) *domain.Species {
	t.Helper()

	s := &domain.Species{
		CommonName:     name,
		ScientificName: fmt.Sprintf("Species %s %d", name, next()),
		Category:       category,
		SpeciesType:    domain.SpeciesBird,
		StatusTrend:    domain.TrendStable,
	}
	if err := tdb.Store.Repos().Species.Create(context.Background(), s); err != nil {
		t.Fatalf("create species: %v", err)
	}
	return s
}

// CreateLocation inserts a city with a unique name.
func (tdb *TestDB) CreateLocation(t testing.TB, name string, severity domain.Severity) *domain.Location {
	t.Helper()

	l := &domain.Location{
		CityName:      fmt.Sprintf("%s %d", name, next()),
		LocationType:  domain.LocationCity,
		Latitude:      13.7565,
		Longitude:     121.0583,
		SeverityLevel: severity,
	}
	if err := tdb.Store.Repos().Locations.Create(context.Background(), l); err != nil {
		t.Fatalf("create location: %v", err)
	}
	return l
}

// CreateSighting inserts a sighting observed on the given day.
func (tdb *TestDB) CreateSighting(t testing.TB, speciesID, locationID int64, status domain.VerificationStatus, count int, day domain.Date) *domain.Sighting {
	t.Helper()

	s := &domain.Sighting{
		SpeciesID:          speciesID,
		LocationID:         locationID,
		SightingDate:       day,
		NumberObserved:     count,
		ObserverName:       "Observer",
		ObserverContact:    "observer@example.com",
		VerificationStatus: status,
	}
	if err := tdb.Store.Repos().Sightings.Create(context.Background(), s); err != nil {
		t.Fatalf("create sighting: %v", err)
	}
	return s
}

// CreateReport inserts a report without touching counters.
func (tdb *TestDB) CreateReport(t testing.TB, locationID int64, severity domain.Severity, status domain.ReportStatus) *domain.EnvironmentalReport {
	t.Helper()

	r := &domain.EnvironmentalReport{
		LocationID:      locationID,
		ReportType:      domain.ReportPollution,
		Severity:        severity,
		Status:          status,
		Title:           "Oil spill",
		Description:     "Oil on the shore",
		ReporterName:    "Reporter",
		ReporterContact: "reporter@example.com",
		ReportDate:      domain.Today(),
	}
	if err := tdb.Store.Repos().Reports.Create(context.Background(), r); err != nil {
		t.Fatalf("create report: %v", err)
	}
	return r
}

// CreateUser inserts an active user whose password is "password".
func (tdb *TestDB) CreateUser(t testing.TB, username string, role domain.Role) *domain.User {
	t.Helper()

	hash, err := password.Hash("password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	u := &domain.User{
		Username:     username,
		PasswordHash: hash,
		FullName:     username + " Tester",
		Role:         role,
		IsActive:     true,
	}
	if err := tdb.Store.Repos().Users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// Day parses a YYYY-MM-DD literal.
func Day(t testing.TB, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return d
}

// DaysAgo returns the calendar day n days before today.
func DaysAgo(n int) domain.Date {
	return domain.NewDate(time.Now().AddDate(0, 0, -n))
}
