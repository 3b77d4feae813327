package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrack-service/internal/domain"
	apperrors "github.com/ecotrack-service/internal/pkg/errors"
	"github.com/ecotrack-service/internal/pkg/token"
	"github.com/ecotrack-service/internal/repository/cache"
	"github.com/ecotrack-service/internal/repository/sqlstore/testhelpers"
	"github.com/ecotrack-service/internal/usecase"
	"github.com/ecotrack-service/internal/usecase/dto"
)

func newAuthUseCase(t *testing.T, tdb *testhelpers.TestDB) *usecase.AuthUseCase {
	t.Helper()
	return usecase.NewAuthUseCase(
		tdb.Store,
		token.NewManager("test-secret", time.Hour),
		cache.NewMemoryCache(),
		directRecorder(t, tdb),
		tdb.Logger,
	)
}

func TestAuthUseCase_Register(t *testing.T) {
	ctx := context.Background()
	tdb := testhelpers.SetupSQLite(t)
	uc := newAuthUseCase(t, tdb)

	user, err := uc.Register(ctx, &dto.RegisterRequest{
		FullName:        "Maria Clara",
		Username:        "maria",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}, "192.168.1.10")
	require.NoError(t, err)
	assert.Equal(t, domain.RolePublic, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	t.Run("collects every problem", func(t *testing.T) {
		_, err := uc.Register(ctx, &dto.RegisterRequest{
			FullName:        "",
			Username:        "ma",
			Password:        "123",
			ConfirmPassword: "1234",
		}, "")
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, []string{
			"All fields are required",
			"Username must be at least 3 characters",
			"Password must be at least 6 characters",
			"Passwords do not match",
		}, appErr.Errors)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := uc.Register(ctx, &dto.RegisterRequest{
			FullName:        "Another Maria",
			Username:        "maria",
			Password:        "secret1",
			ConfirmPassword: "secret1",
		}, "")
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, []string{"Username already taken"}, appErr.Errors)
	})

	assert.Equal(t, []string{domain.ActionUserRegistration}, activityActions(t, tdb))
}

func TestAuthUseCase_LoginLogout(t *testing.T) {
	ctx := context.Background()
	tdb := testhelpers.SetupSQLite(t)
	user := tdb.CreateUser(t, "juan", domain.RoleObserver)
	uc := newAuthUseCase(t, tdb)

	_, err := uc.Login(ctx, &dto.LoginRequest{Username: "juan", Password: "wrong"}, "")
	assert.ErrorIs(t, err, apperrors.ErrBadCredentials)

	_, err = uc.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "password"}, "")
	assert.ErrorIs(t, err, apperrors.ErrBadCredentials)

	_, err = uc.Login(ctx, &dto.LoginRequest{Username: "juan"}, "")
	require.Error(t, err)

	session, err := uc.Login(ctx, &dto.LoginRequest{Username: "juan", Password: "password"}, "10.1.1.1")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	require.NotNil(t, session.User.LastLogin)

	identity, claims, err := uc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, domain.RoleObserver, identity.Role)
	assert.False(t, identity.IsAdmin())

	me, err := uc.Me(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, "juan", me.Username)

	require.NoError(t, uc.Logout(ctx, claims, "10.1.1.1"))

	_, _, err = uc.Authenticate(ctx, session.Token)
	assert.Error(t, err)

	_, _, err = uc.Authenticate(ctx, "garbage")
	assert.Error(t, err)

	assert.ElementsMatch(t, []string{domain.ActionUserLogin, domain.ActionUserLogout}, activityActions(t, tdb))
}

func TestAuthUseCase_AdminLogin(t *testing.T) {
	ctx := context.Background()
	tdb := testhelpers.SetupSQLite(t)
	tdb.CreateUser(t, "admin", domain.RoleAdmin)
	tdb.CreateUser(t, "visitor", domain.RolePublic)
	uc := newAuthUseCase(t, tdb)

	_, err := uc.AdminLogin(ctx, &dto.LoginRequest{Username: "visitor", Password: "password"}, "")
	assert.ErrorIs(t, err, apperrors.ErrNotAdminAccount)

	session, err := uc.AdminLogin(ctx, &dto.LoginRequest{Username: "admin", Password: "password"}, "")
	require.NoError(t, err)

	identity, _, err := uc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.True(t, identity.IsAdmin())

	assert.ElementsMatch(t, []string{domain.ActionFailedAdminLogin, domain.ActionAdminLogin}, activityActions(t, tdb))
}

func TestAuthUseCase_DeletedUserSessionIsAnonymous(t *testing.T) {
	ctx := context.Background()
	tdb := testhelpers.SetupSQLite(t)
	user := tdb.CreateUser(t, "ghost", domain.RolePublic)
	uc := newAuthUseCase(t, tdb)

	session, err := uc.Login(ctx, &dto.LoginRequest{Username: "ghost", Password: "password"}, "")
	require.NoError(t, err)

	require.NoError(t, tdb.Store.Repos().Users.Delete(ctx, user.ID))

	_, _, err = uc.Authenticate(ctx, session.Token)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Unauthorized", appErr.Message)
}
