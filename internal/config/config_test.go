package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "UTC", cfg.TimeZone)
	assert.False(t, cfg.SeedDemoData)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9000")
	t.Setenv("TIMEZONE", "Europe/Berlin")
	t.Setenv("SEED_DEMO_DATA", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "Europe/Berlin", cfg.Location().String())
	assert.True(t, cfg.SeedDemoData)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.EqualError(t, err, "JWT_SECRET is required")
}

func TestValidate(t *testing.T) {
	base := Config{JWTSecret: "s", TimeZone: "UTC", Environment: EnvProduction}
	require.NoError(t, base.Validate())

	halfKeys := base
	halfKeys.EncryptionKey = "abcd"
	assert.Error(t, halfKeys.Validate())

	badZone := base
	badZone.TimeZone = "Mars/Olympus"
	assert.Error(t, badZone.Validate())

	badEnv := base
	badEnv.Environment = "staging"
	assert.Error(t, badEnv.Validate())
}
