package sqlstore_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ecotrack-service/internal/domain"
	"github.com/ecotrack-service/internal/domain/repository"
	pkgerrors "github.com/ecotrack-service/internal/pkg/errors"
	"github.com/ecotrack-service/internal/repository/sqlstore/testhelpers"
)

// StoreTestSuite exercises the repositories against a migrated database.
// SetupDB picks the backend so the same cases run on SQLite and PostgreSQL.
type StoreTestSuite struct {
	suite.Suite
	setupDB func(t testing.TB) *testhelpers.TestDB
	db      *testhelpers.TestDB
	repos   repository.Repositories
	ctx     context.Context
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = s.setupDB(s.T())
	if err := s.db.Cleanup(s.ctx); err != nil {
		s.T().Fatalf("cleanup: %v", err)
	}
	s.repos = s.db.Store.Repos()
}

func TestStoreSQLite(t *testing.T) {
	suite.Run(t, &StoreTestSuite{setupDB: testhelpers.SetupSQLite})
}

func TestStorePostgres(t *testing.T) {
	if os.Getenv("TEST_DB_HOST") == "" {
		t.Skip("TEST_DB_HOST not set, skipping PostgreSQL integration test")
	}
	suite.Run(t, &StoreTestSuite{setupDB: testhelpers.SetupPostgres})
}

// ============================================================================
// Species
// ============================================================================

func (s *StoreTestSuite) TestSpecies_ListFilters() {
	s.db.CreateSpecies(s.T(), "Philippine Eagle", domain.CategoryLand)
	s.db.CreateSpecies(s.T(), "Whale Shark", domain.CategoryWater)

	// Act
	water := domain.CategoryWater
	got, err := s.repos.Species.List(s.ctx, domain.SpeciesFilter{Category: &water})

	// Assert
	s.NoError(err)
	s.Len(got, 1)
	s.Equal("Whale Shark", got[0].CommonName)

	all, err := s.repos.Species.List(s.ctx, domain.SpeciesFilter{})
	s.NoError(err)
	s.Len(all, 2)
}

func (s *StoreTestSuite) TestSpecies_SearchIsCaseInsensitive() {
	s.db.CreateSpecies(s.T(), "Philippine Eagle", domain.CategoryLand)
	s.db.CreateSpecies(s.T(), "Whale Shark", domain.CategoryWater)

	got, err := s.repos.Species.Search(s.ctx, "EAGLE")
	s.NoError(err)
	s.Len(got, 1)

	// scientific names match too
	got, err = s.repos.Species.Search(s.ctx, "species whale")
	s.NoError(err)
	s.Len(got, 1)

	// LIKE metacharacters are literal
	got, err = s.repos.Species.Search(s.ctx, "%")
	s.NoError(err)
	s.Empty(got)
}

func (s *StoreTestSuite) TestSpecies_GetByIDNotFound() {
	_, err := s.repos.Species.GetByID(s.ctx, 999999)
	s.True(errors.Is(err, pkgerrors.ErrNotFound))
}

func (s *StoreTestSuite) TestSpecies_RefreshStatsUsesVerifiedSightingsOnly() {
	sp := s.db.CreateSpecies(s.T(), "Tamaraw", domain.CategoryLand)
	loc := s.db.CreateLocation(s.T(), "Lipa", domain.SeverityLow)

	s.db.CreateSighting(s.T(), sp.ID, loc.ID, domain.VerificationVerified, 2, testhelpers.Day(s.T(), "2024-01-10"))
	s.db.CreateSighting(s.T(), sp.ID, loc.ID, domain.VerificationVerified, 3, testhelpers.Day(s.T(), "2024-02-20"))
	s.db.CreateSighting(s.T(), sp.ID, loc.ID, domain.VerificationPending, 9, testhelpers.Day(s.T(), "2024-03-30"))

	// Act
	s.NoError(s.repos.Species.RefreshStats(s.ctx, sp.ID))

	// Assert
	got, err := s.repos.Species.GetByID(s.ctx, sp.ID)
	s.NoError(err)
	s.Equal(2, got.VerifiedSightings)
	s.Equal(5, got.IndividualsObserved)
	s.Require().NotNil(got.LastSightedOn)
	s.Equal("2024-02-20", got.LastSightedOn.String())

	// idempotent
	s.NoError(s.repos.Species.RefreshStats(s.ctx, sp.ID))
	again, err := s.repos.Species.GetByID(s.ctx, sp.ID)
	s.NoError(err)
	s.Equal(got.VerifiedSightings, again.VerifiedSightings)
	s.Equal(got.IndividualsObserved, again.IndividualsObserved)
	s.Equal(got.LastSightedOn.String(), again.LastSightedOn.String())
}

func (s *StoreTestSuite) TestSpecies_RefreshAllStats() {
	a := s.db.CreateSpecies(s.T(), "Tarsier", domain.CategoryLand)
	b := s.db.CreateSpecies(s.T(), "Dugong", domain.CategoryWater)
	loc := s.db.CreateLocation(s.T(), "Nasugbu", domain.SeverityMedium)
	s.db.CreateSighting(s.T(), a.ID, loc.ID, domain.VerificationVerified, 1, domain.Today())

	n, err := s.repos.Species.RefreshAllStats(s.ctx)
	s.NoError(err)
	s.Equal(int64(2), n)

	got, err := s.repos.Species.GetByID(s.ctx, b.ID)
	s.NoError(err)
	s.Zero(got.VerifiedSightings)
	s.Nil(got.LastSightedOn)
}

// ============================================================================
// Locations
// ============================================================================

func (s *StoreTestSuite) TestLocations_IncrementReports() {
	loc := s.db.CreateLocation(s.T(), "Batangas City", domain.SeverityHigh)

	s.NoError(s.repos.Locations.IncrementReports(s.ctx, loc.ID))
	s.NoError(s.repos.Locations.IncrementReports(s.ctx, loc.ID))

	got, err := s.repos.Locations.GetByID(s.ctx, loc.ID)
	s.NoError(err)
	s.Equal(2, got.TotalReports)

	err = s.repos.Locations.IncrementReports(s.ctx, 999999)
	s.True(errors.Is(err, pkgerrors.ErrNotFound))
}

func (s *StoreTestSuite) TestLocations_FilterBySeverity() {
	s.db.CreateLocation(s.T(), "Taal", domain.SeverityCritical)
	s.db.CreateLocation(s.T(), "Lemery", domain.SeverityLow)

	critical := domain.SeverityCritical
	got, err := s.repos.Locations.List(s.ctx, domain.LocationFilter{Severity: &critical})
	s.NoError(err)
	s.Len(got, 1)
	s.Equal(domain.SeverityCritical, got[0].SeverityLevel)
}

func (s *StoreTestSuite) TestLocations_DuplicateCityName() {
	loc := s.db.CreateLocation(s.T(), "Tanauan", domain.SeverityLow)

	dup := &domain.Location{
		CityName:      loc.CityName,
		LocationType:  domain.LocationCity,
		SeverityLevel: domain.SeverityLow,
	}
	err := s.repos.Locations.Create(s.ctx, dup)
	s.True(errors.Is(err, pkgerrors.ErrDuplicate))
}

// ============================================================================
// Sightings
// ============================================================================

func (s *StoreTestSuite) TestSightings_ListNewestFirstWithJoins() {
	sp := s.db.CreateSpecies(s.T(), "Hornbill", domain.CategoryLand)
	loc := s.db.CreateLocation(s.T(), "Calaca", domain.SeverityLow)
	old := s.db.CreateSighting(s.T(), sp.ID, loc.ID, domain.VerificationPending, 1, testhelpers.Day(s.T(), "2023-12-31"))
	recent := s.db.CreateSighting(s.T(), sp.ID, loc.ID, domain.VerificationVerified, 4, testhelpers.Day(s.T(), "2024-06-01"))

	got, err := s.repos.Sightings.List(s.ctx, domain.SightingFilter{})
	s.NoError(err)
	s.Require().Len(got, 2)
	s.Equal(recent.ID, got[0].ID)
	s.Equal(old.ID, got[1].ID)
	s.Equal("Hornbill", got[0].Species.CommonName)
	s.Equal(loc.CityName, got[0].Location.CityName)
	s.Equal("2024-06-01", got[0].SightingDate.String())

	verified := domain.VerificationVerified
	got, err = s.repos.Sightings.List(s.ctx, domain.SightingFilter{Status: &verified, SpeciesID: &sp.ID})
	s.NoError(err)
	s.Len(got, 1)

	got, err = s.repos.Sightings.List(s.ctx, domain.SightingFilter{Limit: 1})
	s.NoError(err)
	s.Len(got, 1)
}

func (s *StoreTestSuite) TestSightings_UpdateAndDelete() {
	sp := s.db.CreateSpecies(s.T(), "Pangolin", domain.CategoryLand)
	loc := s.db.CreateLocation(s.T(), "Rosario", domain.SeverityLow)
	sg := s.db.CreateSighting(s.T(), sp.ID, loc.ID, domain.VerificationPending, 1, domain.Today())

	s.NoError(s.repos.Sightings.UpdateStatus(s.ctx, sg.ID, domain.VerificationRejected))
	got, err := s.repos.Sightings.GetByID(s.ctx, sg.ID)
	s.NoError(err)
	s.Equal(domain.VerificationRejected, got.VerificationStatus)

	s.NoError(s.repos.Sightings.Delete(s.ctx, sg.ID))
	_, err = s.repos.Sightings.GetByID(s.ctx, sg.ID)
	s.True(errors.Is(err, pkgerrors.ErrNotFound))
	s.True(errors.Is(s.repos.Sightings.Delete(s.ctx, sg.ID), pkgerrors.ErrNotFound))
}

func (s *StoreTestSuite) TestSightings_CountByLocation() {
	land := s.db.CreateSpecies(s.T(), "Civet", domain.CategoryLand)
	water := s.db.CreateSpecies(s.T(), "Turtle", domain.CategoryWater)
	a := s.db.CreateLocation(s.T(), "Bauan", domain.SeverityLow)
	b := s.db.CreateLocation(s.T(), "Mabini", domain.SeverityLow)

	s.db.CreateSighting(s.T(), land.ID, a.ID, domain.VerificationPending, 1, domain.Today())
	s.db.CreateSighting(s.T(), land.ID, b.ID, domain.VerificationPending, 1, domain.Today())
	s.db.CreateSighting(s.T(), land.ID, b.ID, domain.VerificationPending, 1, domain.Today())
	s.db.CreateSighting(s.T(), water.ID, a.ID, domain.VerificationPending, 1, domain.Today())

	got, err := s.repos.Sightings.CountByLocation(s.ctx, domain.CategoryLand, 10)
	s.NoError(err)
	s.Require().Len(got, 2)
	s.Equal(b.CityName, got[0].City)
	s.Equal(2, got[0].Sightings)
	s.Equal(1, got[1].Sightings)
}

// ============================================================================
// Reports
// ============================================================================

func (s *StoreTestSuite) TestReports_UpdateKeepsResolutionDate() {
	loc := s.db.CreateLocation(s.T(), "Balayan", domain.SeverityLow)
	r := s.db.CreateReport(s.T(), loc.ID, domain.SeverityHigh, domain.ReportStatusPending)

	day := testhelpers.Day(s.T(), "2024-04-01")
	r.ApplyStatus(domain.ReportStatusCompleted, day)
	s.NoError(s.repos.Reports.Update(s.ctx, r))

	got, err := s.repos.Reports.GetByID(s.ctx, r.ID)
	s.NoError(err)
	s.Equal(domain.ReportStatusCompleted, got.Status)
	s.Require().NotNil(got.ResolutionDate)
	s.Equal("2024-04-01", got.ResolutionDate.String())
	s.Equal(loc.CityName, got.Location.CityName)
}

func (s *StoreTestSuite) TestReports_ListFiltersAndCountByType() {
	loc := s.db.CreateLocation(s.T(), "Lian", domain.SeverityLow)
	s.db.CreateReport(s.T(), loc.ID, domain.SeverityCritical, domain.ReportStatusPending)
	s.db.CreateReport(s.T(), loc.ID, domain.SeverityLow, domain.ReportStatusClosed)

	critical := domain.SeverityCritical
	got, err := s.repos.Reports.List(s.ctx, domain.ReportFilter{Severity: &critical})
	s.NoError(err)
	s.Len(got, 1)

	counts, err := s.repos.Reports.CountByType(s.ctx)
	s.NoError(err)
	s.Require().Len(counts, 1)
	s.Equal(domain.ReportPollution, counts[0].ReportType)
	s.Equal(2, counts[0].Count)
}

func (s *StoreTestSuite) TestReports_DeleteLeavesLocationCounter() {
	loc := s.db.CreateLocation(s.T(), "Agoncillo", domain.SeverityLow)
	r := s.db.CreateReport(s.T(), loc.ID, domain.SeverityLow, domain.ReportStatusPending)
	s.NoError(s.repos.Locations.IncrementReports(s.ctx, loc.ID))

	s.NoError(s.repos.Reports.Delete(s.ctx, r.ID))

	got, err := s.repos.Locations.GetByID(s.ctx, loc.ID)
	s.NoError(err)
	s.Equal(1, got.TotalReports)
}

// ============================================================================
// Users & activity
// ============================================================================

func (s *StoreTestSuite) TestUsers_DuplicateUsername() {
	s.db.CreateUser(s.T(), "juan", domain.RolePublic)

	err := s.repos.Users.Create(s.ctx, &domain.User{Username: "juan", PasswordHash: "x", Role: domain.RolePublic, IsActive: true})
	s.True(errors.Is(err, pkgerrors.ErrDuplicate))
}

func (s *StoreTestSuite) TestUsers_DeleteKeepsDetachedActivity() {
	u := s.db.CreateUser(s.T(), "maria", domain.RoleObserver)
	s.NoError(s.repos.Activity.Create(s.ctx, &domain.ActivityLog{UserID: &u.ID, ActionType: domain.ActionUserLogin, Description: "login"}))

	err := s.db.Store.WithinTx(s.ctx, func(tx repository.Repositories) error {
		if err := tx.Activity.DetachUser(s.ctx, u.ID); err != nil {
			return err
		}
		return tx.Users.Delete(s.ctx, u.ID)
	})
	s.NoError(err)

	entries, err := s.repos.Activity.List(s.ctx, domain.ActivityFilter{})
	s.NoError(err)
	s.Require().Len(entries, 1)
	s.Nil(entries[0].UserID)
}

func (s *StoreTestSuite) TestActivity_UnknownUser() {
	missing := int64(424242)
	err := s.repos.Activity.Create(s.ctx, &domain.ActivityLog{UserID: &missing, ActionType: domain.ActionUserLogin, Description: "login"})
	s.True(errors.Is(err, pkgerrors.ErrMissingReference))
}

func (s *StoreTestSuite) TestUsers_UpdateLastLogin() {
	u := s.db.CreateUser(s.T(), "pedro", domain.RolePublic)
	at := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

	s.NoError(s.repos.Users.UpdateLastLogin(s.ctx, u.ID, at))

	got, err := s.repos.Users.GetByUsername(s.ctx, "pedro")
	s.NoError(err)
	s.Require().NotNil(got.LastLogin)
	s.True(at.Equal(*got.LastLogin))
	s.True(got.IsActive)
}

// ============================================================================
// Unit of work
// ============================================================================

func (s *StoreTestSuite) TestWithinTx_RollbackOnError() {
	loc := s.db.CreateLocation(s.T(), "Ibaan", domain.SeverityLow)
	boom := errors.New("boom")

	err := s.db.Store.WithinTx(s.ctx, func(tx repository.Repositories) error {
		if err := tx.Locations.IncrementReports(s.ctx, loc.ID); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	got, err := s.repos.Locations.GetByID(s.ctx, loc.ID)
	s.NoError(err)
	s.Zero(got.TotalReports)
}

func (s *StoreTestSuite) TestWithinTx_RollbackOnPanic() {
	loc := s.db.CreateLocation(s.T(), "Padre Garcia", domain.SeverityLow)

	s.Panics(func() {
		_ = s.db.Store.WithinTx(s.ctx, func(tx repository.Repositories) error {
			_ = tx.Locations.IncrementReports(s.ctx, loc.ID)
			panic("boom")
		})
	})

	got, err := s.repos.Locations.GetByID(s.ctx, loc.ID)
	s.NoError(err)
	s.Zero(got.TotalReports)
}

// ============================================================================
// Dashboard & lookups
// ============================================================================

func (s *StoreTestSuite) TestDashboard_RecountInsertIncrement() {
	sp := s.db.CreateSpecies(s.T(), "Egret", domain.CategoryWater)
	loc := s.db.CreateLocation(s.T(), "Calatagan", domain.SeverityLow)
	s.db.CreateSighting(s.T(), sp.ID, loc.ID, domain.VerificationVerified, 1, domain.Today())
	s.db.CreateReport(s.T(), loc.ID, domain.SeverityCritical, domain.ReportStatusPending)
	s.db.CreateReport(s.T(), loc.ID, domain.SeverityLow, domain.ReportStatusCompleted)

	stats, err := s.repos.Dashboard.Recount(s.ctx)
	s.NoError(err)
	s.Equal(2, stats.TotalReports)
	s.Equal(1, stats.PendingReports)
	s.Equal(1, stats.CompletedReports)
	s.Equal(1, stats.CriticalReports)
	s.Equal(1, stats.TotalSightings)
	s.Equal(1, stats.VerifiedSightings)
	s.Equal(0, stats.LandSpeciesCount)
	s.Equal(1, stats.WaterSpeciesCount)

	day := testhelpers.Day(s.T(), "2024-07-04")
	stats.StatDate = day

	created, err := s.repos.Dashboard.Insert(s.ctx, stats)
	s.NoError(err)
	s.True(created)

	created, err = s.repos.Dashboard.Insert(s.ctx, stats)
	s.NoError(err)
	s.False(created)

	updated, err := s.repos.Dashboard.Increment(s.ctx, day, domain.StatsIncrement{Reports: 1, Critical: 1})
	s.NoError(err)
	s.True(updated)

	got, err := s.repos.Dashboard.GetByDate(s.ctx, day)
	s.NoError(err)
	s.Equal(3, got.TotalReports)
	s.Equal(1, got.PendingReports)
	s.Equal(2, got.CriticalReports)

	updated, err = s.repos.Dashboard.Increment(s.ctx, testhelpers.Day(s.T(), "2024-07-05"), domain.StatsIncrement{Reports: 1})
	s.NoError(err)
	s.False(updated)
}

func (s *StoreTestSuite) TestDashboard_RecountInsideTx() {
	s.db.CreateSpecies(s.T(), "Heron", domain.CategoryWater)

	err := s.db.Store.WithinTx(s.ctx, func(tx repository.Repositories) error {
		stats, err := tx.Dashboard.Recount(s.ctx)
		if err != nil {
			return err
		}
		s.Equal(1, stats.WaterSpeciesCount)
		return nil
	})
	s.NoError(err)
}

func (s *StoreTestSuite) TestLookups_Seeded() {
	categories, err := s.repos.Lookups.Categories(s.ctx)
	s.NoError(err)
	s.Len(categories, 5)
	s.Equal("Pollution", categories[0].Name)

	severities, err := s.repos.Lookups.Severities(s.ctx)
	s.NoError(err)
	s.Len(severities, 4)
	s.Equal("Low", severities[0].Level)
}
