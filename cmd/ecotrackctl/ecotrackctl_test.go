package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrack-service/internal/domain"
	"github.com/ecotrack-service/internal/pkg/password"
	"github.com/ecotrack-service/internal/repository/sqlstore/testhelpers"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := getRootCmd()

	migrate, _, err := root.Find([]string{"migrate", "up"})
	require.NoError(t, err)
	assert.Equal(t, "up", migrate.Name())

	for _, name := range []string{"down", "status"} {
		sub, _, err := root.Find([]string{"migrate", name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
		assert.NotNil(t, sub.RunE)
	}

	createUserCmd, _, err := root.Find([]string{"create-user"})
	require.NoError(t, err)
	assert.NotNil(t, createUserCmd.Flags().Lookup("admin"))
	assert.NotNil(t, createUserCmd.Flags().Lookup("full-name"))
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	tdb := testhelpers.SetupSQLite(t)

	admin, err := createUser(ctx, tdb.Store, createUserOptions{
		Username: "root",
		Password: "s3cret!",
		Admin:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.Equal(t, "root", admin.FullName)
	assert.True(t, password.Check(admin.PasswordHash, "s3cret!"))

	stored, err := tdb.Store.Repos().Users.GetByUsername(ctx, "root")
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin())

	t.Run("duplicate", func(t *testing.T) {
		_, err := createUser(ctx, tdb.Store, createUserOptions{Username: "root", Password: "another1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already taken")
	})

	t.Run("short password", func(t *testing.T) {
		_, err := createUser(ctx, tdb.Store, createUserOptions{Username: "maria", Password: "123"})
		assert.Error(t, err)
	})

	t.Run("public by default", func(t *testing.T) {
		u, err := createUser(ctx, tdb.Store, createUserOptions{Username: "maria", FullName: "Maria Clara", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, domain.RolePublic, u.Role)
	})
}
