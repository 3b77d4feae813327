package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrack-service/internal/domain"
	"github.com/ecotrack-service/internal/repository/sqlstore/testhelpers"
	"github.com/ecotrack-service/internal/usecase"
	"github.com/ecotrack-service/internal/usecase/dto"
)

func TestDashboardUseCase_StatsSnapshot(t *testing.T) {
	ctx := context.Background()
	tdb := testhelpers.SetupSQLite(t)
	loc := tdb.CreateLocation(t, "Rosario", domain.SeverityLow)
	tdb.CreateReport(t, loc.ID, domain.SeverityCritical, domain.ReportStatusPending)
	tdb.CreateReport(t, loc.ID, domain.SeverityLow, domain.ReportStatusCompleted)
	tdb.CreateSpecies(t, "Hawksbill Turtle", domain.CategoryWater)

	uc := usecase.NewDashboardUseCase(tdb.Store, tdb.Logger)

	first, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Today(), first.StatDate)
	assert.Equal(t, 2, first.TotalReports)
	assert.Equal(t, 1, first.PendingReports)
	assert.Equal(t, 1, first.CompletedReports)
	assert.Equal(t, 1, first.CriticalReports)
	assert.Equal(t, 1, first.WaterSpeciesCount)

	// Rows added without going through the report use case do not show up:
	// the snapshot is only patched by report creation.
	tdb.CreateReport(t, loc.ID, domain.SeverityHigh, domain.ReportStatusPending)

	second, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.TotalReports, second.TotalReports)
}

func TestDashboardUseCase_ReportCreationPatchesSnapshot(t *testing.T) {
	ctx := context.Background()
	tdb := testhelpers.SetupSQLite(t)
	loc := tdb.CreateLocation(t, "Mabini", domain.SeverityHigh)

	dashboard := usecase.NewDashboardUseCase(tdb.Store, tdb.Logger)
	reports := usecase.NewReportUseCase(tdb.Store, dashboard, nil, tdb.Logger)

	// No row yet: the first creation materializes it from a recount.
	_, err := reports.Create(ctx, validReportRequest(loc.ID))
	require.NoError(t, err)

	stats, err := tdb.Store.Repos().Dashboard.GetByDate(ctx, domain.Today())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalReports)
	assert.Equal(t, 1, stats.PendingReports)
	assert.Equal(t, 1, stats.CriticalReports)

	// Row exists: the second creation increments it.
	req := validReportRequest(loc.ID)
	req.Severity = ptr("Low")
	_, err = reports.Create(ctx, req)
	require.NoError(t, err)

	stats, err = dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalReports)
	assert.Equal(t, 2, stats.PendingReports)
	assert.Equal(t, 1, stats.CriticalReports)
}

func TestDashboardUseCase_Breakdowns(t *testing.T) {
	ctx := context.Background()
	tdb := testhelpers.SetupSQLite(t)
	land := tdb.CreateSpecies(t, "Civet", domain.CategoryLand)
	water := tdb.CreateSpecies(t, "Whale Shark", domain.CategoryWater)
	busy := tdb.CreateLocation(t, "Busy", domain.SeverityLow)
	quiet := tdb.CreateLocation(t, "Quiet", domain.SeverityLow)

	tdb.CreateSighting(t, land.ID, busy.ID, domain.VerificationPending, 1, domain.Today())
	tdb.CreateSighting(t, land.ID, busy.ID, domain.VerificationPending, 1, domain.Today())
	tdb.CreateSighting(t, land.ID, quiet.ID, domain.VerificationPending, 1, domain.Today())
	tdb.CreateSighting(t, water.ID, quiet.ID, domain.VerificationPending, 1, domain.Today())

	uc := usecase.NewDashboardUseCase(tdb.Store, tdb.Logger)

	category, rows, err := uc.SightingsByLocation(ctx, "", 0)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryLand, category)
	require.Len(t, rows, 2)
	assert.Equal(t, busy.CityName, rows[0].City)
	assert.Equal(t, 2, rows[0].Sightings)

	_, rows, err = uc.SightingsByLocation(ctx, "water", 5)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, quiet.CityName, rows[0].City)

	_, _, err = uc.SightingsByLocation(ctx, "air", 5)
	require.Error(t, err)

	tdb.CreateReport(t, busy.ID, domain.SeverityLow, domain.ReportStatusPending)
	tdb.CreateReport(t, quiet.ID, domain.SeverityLow, domain.ReportStatusPending)

	byType, err := uc.ReportsByType(ctx)
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, domain.ReportPollution, byType[0].ReportType)
	assert.Equal(t, 2, byType[0].Count)

	reports := usecase.NewReportUseCase(tdb.Store, nil, nil, tdb.Logger)
	list, err := reports.List(ctx, dto.ReportListRequest{LocationID: busy.ID})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
