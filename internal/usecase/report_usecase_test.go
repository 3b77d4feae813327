package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ecotrack-service/internal/domain"
	apperrors "github.com/ecotrack-service/internal/pkg/errors"
	"github.com/ecotrack-service/internal/repository/sqlstore/testhelpers"
	"github.com/ecotrack-service/internal/usecase"
	"github.com/ecotrack-service/internal/usecase/dto"
)

func validReportRequest(locationID int64) *dto.CreateReportRequest {
	return &dto.CreateReportRequest{
		LocationID:      ptr(locationID),
		ReportType:      ptr("pollution"),
		Severity:        ptr("critical"),
		Title:           ptr("Oil spill at the pier"),
		Description:     ptr("Black film on the water"),
		ReporterName:    ptr("Ana"),
		ReporterContact: ptr("ana@example.com"),
		ReportDate:      ptr("2024-03-01"),
	}
}

func TestReportUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("increments location counter and records stats", func(t *testing.T) {
		tdb := testhelpers.SetupSQLite(t)
		loc := tdb.CreateLocation(t, "Batangas", domain.SeverityHigh)

		stats := &MockStatsRecorder{}
		stats.On("RecordReport", mock.Anything, mock.AnythingOfType("*domain.EnvironmentalReport")).Return(nil).Once()

		uc := usecase.NewReportUseCase(tdb.Store, stats, nil, tdb.Logger)

		created, err := uc.Create(ctx, validReportRequest(loc.ID))
		require.NoError(t, err)
		assert.Equal(t, domain.ReportStatusPending, created.Status)
		assert.Equal(t, domain.SeverityCritical, created.Severity)
		assert.Nil(t, created.ResolutionDate)
		assert.Equal(t, loc.ID, created.Location.ID)

		reloaded, err := tdb.Store.Repos().Locations.GetByID(ctx, loc.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, reloaded.TotalReports)

		stats.AssertExpectations(t)
	})

	t.Run("stats failure does not fail the request", func(t *testing.T) {
		tdb := testhelpers.SetupSQLite(t)
		loc := tdb.CreateLocation(t, "Lipa", domain.SeverityLow)

		stats := &MockStatsRecorder{}
		stats.On("RecordReport", mock.Anything, mock.Anything).Return(errors.New("stats table locked"))

		uc := usecase.NewReportUseCase(tdb.Store, stats, nil, tdb.Logger)

		created, err := uc.Create(ctx, validReportRequest(loc.ID))
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
	})

	t.Run("unknown location writes nothing", func(t *testing.T) {
		tdb := testhelpers.SetupSQLite(t)
		stats := &MockStatsRecorder{}
		uc := usecase.NewReportUseCase(tdb.Store, stats, nil, tdb.Logger)

		_, err := uc.Create(ctx, validReportRequest(9999))
		require.Error(t, err)

		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)

		list, err := uc.List(ctx, dto.ReportListRequest{})
		require.NoError(t, err)
		assert.Empty(t, list)
		stats.AssertNotCalled(t, "RecordReport", mock.Anything, mock.Anything)
	})

	t.Run("missing field", func(t *testing.T) {
		tdb := testhelpers.SetupSQLite(t)
		uc := usecase.NewReportUseCase(tdb.Store, nil, nil, tdb.Logger)

		req := validReportRequest(1)
		req.Title = nil

		_, err := uc.Create(ctx, req)
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, "Missing required field: title", appErr.Message)
	})

	t.Run("invalid enum", func(t *testing.T) {
		tdb := testhelpers.SetupSQLite(t)
		uc := usecase.NewReportUseCase(tdb.Store, nil, nil, tdb.Logger)

		req := validReportRequest(1)
		req.ReportType = ptr("noise")

		_, err := uc.Create(ctx, req)
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	})
}

func TestReportUseCase_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	tdb := testhelpers.SetupSQLite(t)
	loc := tdb.CreateLocation(t, "Tanauan", domain.SeverityMedium)
	report := tdb.CreateReport(t, loc.ID, domain.SeverityLow, domain.ReportStatusPending)

	uc := usecase.NewReportUseCase(tdb.Store, nil, nil, tdb.Logger)

	_, err := uc.UpdateStatus(ctx, report.ID, &dto.UpdateReportStatusRequest{})
	assert.ErrorIs(t, err, apperrors.ErrNoStatusProvided)

	_, err = uc.UpdateStatus(ctx, report.ID, &dto.UpdateReportStatusRequest{Status: ptr("done")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)

	_, err = uc.UpdateStatus(ctx, 424242, &dto.UpdateReportStatusRequest{Status: ptr("closed")})
	assert.ErrorIs(t, err, apperrors.ErrReportNotFound)

	completed, err := uc.UpdateStatus(ctx, report.ID, &dto.UpdateReportStatusRequest{Status: ptr("completed")})
	require.NoError(t, err)
	require.NotNil(t, completed.ResolutionDate)
	assert.Equal(t, domain.Today(), *completed.ResolutionDate)

	// Leaving and re-entering completed keeps the first resolution date.
	_, err = uc.UpdateStatus(ctx, report.ID, &dto.UpdateReportStatusRequest{Status: ptr("in_progress")})
	require.NoError(t, err)
	again, err := uc.UpdateStatus(ctx, report.ID, &dto.UpdateReportStatusRequest{Status: ptr("completed")})
	require.NoError(t, err)
	require.NotNil(t, again.ResolutionDate)
	assert.Equal(t, *completed.ResolutionDate, *again.ResolutionDate)
}

func TestReportUseCase_AdminEditAndDelete(t *testing.T) {
	ctx := context.Background()
	tdb := testhelpers.SetupSQLite(t)
	admin := tdb.CreateUser(t, "root", domain.RoleAdmin)
	loc := tdb.CreateLocation(t, "Lemery", domain.SeverityHigh)

	rec := directRecorder(t, tdb)
	reports := usecase.NewReportUseCase(tdb.Store, nil, rec, tdb.Logger)

	created, err := reports.Create(ctx, validReportRequest(loc.ID))
	require.NoError(t, err)

	edited, err := reports.AdminUpdate(ctx, admin.Identity(), created.ID, &dto.AdminUpdateReportRequest{
		Title:    ptr("Updated title"),
		Severity: ptr("Low"),
		Status:   ptr("completed"),
	}, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "Updated title", edited.Title)
	assert.Equal(t, domain.SeverityLow, edited.Severity)
	assert.NotNil(t, edited.ResolutionDate)
	assert.Equal(t, "Black film on the water", edited.Description)

	_, err = reports.AdminUpdate(ctx, admin.Identity(), created.ID, &dto.AdminUpdateReportRequest{
		Severity: ptr("apocalyptic"),
	}, "")
	require.Error(t, err)

	require.NoError(t, reports.AdminDelete(ctx, admin.Identity(), created.ID, "10.0.0.1"))
	assert.ErrorIs(t, reports.AdminDelete(ctx, admin.Identity(), created.ID, ""), apperrors.ErrReportNotFound)

	// Deleting a report does not decrement the location counter.
	reloaded, err := tdb.Store.Repos().Locations.GetByID(ctx, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.TotalReports)

	assert.ElementsMatch(t, []string{domain.ActionEditReport, domain.ActionDeleteReport}, activityActions(t, tdb))
}

func TestReportUseCase_ActivityFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	tdb := testhelpers.SetupSQLite(t)
	admin := tdb.CreateUser(t, "boss", domain.RoleAdmin)
	loc := tdb.CreateLocation(t, "Nasugbu", domain.SeverityLow)
	report := tdb.CreateReport(t, loc.ID, domain.SeverityLow, domain.ReportStatusPending)

	rec := &MockActivityRecorder{}
	rec.On("Record", mock.Anything, mock.MatchedBy(func(e domain.ActivityEvent) bool {
		return e.ActionType == domain.ActionDeleteReport && e.UserID != nil && *e.UserID == admin.ID
	})).Return(errors.New("redis down")).Once()

	uc := usecase.NewReportUseCase(tdb.Store, nil, rec, tdb.Logger)
	require.NoError(t, uc.AdminDelete(ctx, admin.Identity(), report.ID, ""))
	rec.AssertExpectations(t)
}

func TestReportUseCase_Lookups(t *testing.T) {
	ctx := context.Background()
	tdb := testhelpers.SetupSQLite(t)
	uc := usecase.NewReportUseCase(tdb.Store, nil, nil, tdb.Logger)

	categories, err := uc.Categories(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, categories)

	severities, err := uc.Severities(ctx)
	require.NoError(t, err)
	assert.Len(t, severities, 4)
}
