package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrack-service/internal/domain"
	apperrors "github.com/ecotrack-service/internal/pkg/errors"
	"github.com/ecotrack-service/internal/repository/sqlstore/testhelpers"
	"github.com/ecotrack-service/internal/usecase"
	"github.com/ecotrack-service/internal/usecase/dto"
)

func TestAdminUseCase_DeleteUser(t *testing.T) {
	ctx := context.Background()
	tdb := testhelpers.SetupSQLite(t)
	admin := tdb.CreateUser(t, "chief", domain.RoleAdmin)
	other := tdb.CreateUser(t, "deputy", domain.RoleAdmin)
	victim := tdb.CreateUser(t, "spammer", domain.RolePublic)

	rec := directRecorder(t, tdb)
	uc := usecase.NewAdminUseCase(tdb.Store, rec, tdb.Logger)

	// Activity written by the user about to be deleted.
	require.NoError(t, tdb.Store.Repos().Activity.Create(ctx, &domain.ActivityLog{
		UserID:      &victim.ID,
		ActionType:  domain.ActionUserLogin,
		Description: "User spammer logged in",
	}))

	_, err := uc.DeleteUser(ctx, admin.Identity(), admin.ID, "")
	assert.ErrorIs(t, err, apperrors.ErrSelfDeletion)

	_, err = uc.DeleteUser(ctx, admin.Identity(), other.ID, "")
	assert.ErrorIs(t, err, apperrors.ErrAdminDeletion)

	_, err = uc.DeleteUser(ctx, admin.Identity(), 777777, "")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	name, err := uc.DeleteUser(ctx, admin.Identity(), victim.ID, "10.0.0.9")
	require.NoError(t, err)
	assert.Equal(t, "spammer", name)

	users, err := uc.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	entries, err := uc.Activity(ctx, dto.ActivityListRequest{Action: domain.ActionUserLogin})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].UserID)

	entries, err = uc.Activity(ctx, dto.ActivityListRequest{UserID: admin.ID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionDeleteUser, entries[0].ActionType)
	assert.Equal(t, "Deleted user: spammer", entries[0].Description)
}

func TestAdminUseCase_RefreshSpeciesStats(t *testing.T) {
	ctx := context.Background()
	tdb := testhelpers.SetupSQLite(t)
	admin := tdb.CreateUser(t, "curator", domain.RoleAdmin)
	sp := tdb.CreateSpecies(t, "Tarsier", domain.CategoryLand)
	tdb.CreateSpecies(t, "Clownfish", domain.CategoryWater)
	loc := tdb.CreateLocation(t, "Bohol", domain.SeverityLow)
	tdb.CreateSighting(t, sp.ID, loc.ID, domain.VerificationVerified, 5, testhelpers.Day(t, "2024-05-01"))
	tdb.CreateSighting(t, sp.ID, loc.ID, domain.VerificationPending, 9, testhelpers.Day(t, "2024-06-01"))

	uc := usecase.NewAdminUseCase(tdb.Store, directRecorder(t, tdb), tdb.Logger)

	n, err := uc.RefreshSpeciesStats(ctx, admin.Identity(), "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	first, err := tdb.Store.Repos().Species.GetByID(ctx, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.VerifiedSightings)
	assert.Equal(t, 5, first.IndividualsObserved)
	require.NotNil(t, first.LastSightedOn)
	assert.Equal(t, "2024-05-01", first.LastSightedOn.String())

	// Idempotent.
	n, err = uc.RefreshSpeciesStats(ctx, admin.Identity(), "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	second, err := tdb.Store.Repos().Species.GetByID(ctx, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, first.VerifiedSightings, second.VerifiedSightings)
	assert.Equal(t, first.IndividualsObserved, second.IndividualsObserved)
	assert.Equal(t, first.LastSightedOn, second.LastSightedOn)
}

func TestAdminUseCase_RefreshSpeciesStatsAfterSightingDelete(t *testing.T) {
	ctx := context.Background()
	tdb := testhelpers.SetupSQLite(t)
	admin := tdb.CreateUser(t, "curator", domain.RoleAdmin)
	sp := tdb.CreateSpecies(t, "Philippine Eagle", domain.CategoryLand)
	loc := tdb.CreateLocation(t, "Mount Apo", domain.SeverityMedium)
	older := tdb.CreateSighting(t, sp.ID, loc.ID, domain.VerificationVerified, 2, testhelpers.Day(t, "2024-03-10"))
	latest := tdb.CreateSighting(t, sp.ID, loc.ID, domain.VerificationVerified, 4, testhelpers.Day(t, "2024-04-20"))

	uc := usecase.NewAdminUseCase(tdb.Store, directRecorder(t, tdb), tdb.Logger)

	_, err := uc.RefreshSpeciesStats(ctx, admin.Identity(), "")
	require.NoError(t, err)

	got, err := tdb.Store.Repos().Species.GetByID(ctx, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.VerifiedSightings)
	assert.Equal(t, 6, got.IndividualsObserved)
	require.NotNil(t, got.LastSightedOn)
	assert.Equal(t, "2024-04-20", got.LastSightedOn.String())

	// Row removed behind the use case's back; only the refresh fixes the stats.
	require.NoError(t, tdb.Store.Repos().Sightings.Delete(ctx, latest.ID))

	_, err = uc.RefreshSpeciesStats(ctx, admin.Identity(), "")
	require.NoError(t, err)

	got, err = tdb.Store.Repos().Species.GetByID(ctx, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.VerifiedSightings)
	assert.Equal(t, 2, got.IndividualsObserved)
	require.NotNil(t, got.LastSightedOn)
	assert.Equal(t, "2024-03-10", got.LastSightedOn.String())

	require.NoError(t, tdb.Store.Repos().Sightings.Delete(ctx, older.ID))

	_, err = uc.RefreshSpeciesStats(ctx, admin.Identity(), "")
	require.NoError(t, err)

	got, err = tdb.Store.Repos().Species.GetByID(ctx, sp.ID)
	require.NoError(t, err)
	assert.Zero(t, got.VerifiedSightings)
	assert.Zero(t, got.IndividualsObserved)
	assert.Nil(t, got.LastSightedOn)
}
