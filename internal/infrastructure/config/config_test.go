package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.False(t, cfg.Compliance.LegacyFallback)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_COMPLIANCE_LEGACY_FALLBACK", "true")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Compliance.LegacyFallback)
}

func TestValidate_Production(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	cfg.App.Environment = "production"

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")

	cfg.JWT.Secret = "short"
	assert.Error(t, cfg.Validate())

	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	require.NoError(t, cfg.Validate())

	cfg.Compliance.LegacyFallback = true
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "legacy_fallback")
}

func TestValidate_Driver(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.Validate())
}

func TestDatabaseDSN(t *testing.T) {
	pg := DatabaseConfig{
		Driver: "postgres", Host: "db", Port: 5432,
		User: "app", Password: "secret", Name: "invoiceflow", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=app password=secret dbname=invoiceflow sslmode=disable",
		pg.DSN())

	sqlite := DatabaseConfig{Driver: "sqlite", Name: "file::memory:?cache=shared"}
	assert.Equal(t, "file::memory:?cache=shared", sqlite.DSN())
}
