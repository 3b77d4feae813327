package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_ENV", "development")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, ActivityModeDirect, cfg.Activity.Mode)
	assert.Equal(t, "ecotrack_session", cfg.Session.CookieName)
	assert.Equal(t, "ecotrack-dev-secret", cfg.Session.Secret)
	assert.Equal(t, int64(24), int64(cfg.Session.TTL.Hours()))
	assert.Equal(t, time.Minute, cfg.Worker.ClaimMinIdle)
	assert.False(t, cfg.RedisEnabled())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{Env: "development"},
			Database: DatabaseConfig{Driver: DriverPostgres},
			Activity: ActivityConfig{Mode: ActivityModeDirect},
			Session:  SessionConfig{Secret: "s"},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := base()
		cfg.Database.Driver = "mysql"
		assert.Error(t, cfg.Validate())
	})

	t.Run("stream mode needs redis", func(t *testing.T) {
		cfg := base()
		cfg.Activity.Mode = ActivityModeStream
		assert.Error(t, cfg.Validate())

		cfg.Redis.Host = "localhost"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("production needs a secret", func(t *testing.T) {
		cfg := base()
		cfg.Server.Env = "production"
		cfg.Session.Secret = ""
		assert.Error(t, cfg.Validate())
	})
}

func TestSQLiteDSN(t *testing.T) {
	dsn := SQLiteDSN("/tmp/x.db")
	assert.Contains(t, dsn, "file:/tmp/x.db?")
	assert.Contains(t, dsn, "foreign_keys(1)")
}
