package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeEnvFile(t, `APP_PORT=9090
APP_ENV=test
DB_HOST=db.internal
DB_PORT=5433
DB_NAME=clinic
DB_MIGRATE_ON_START=true
REDIS_HOST=cache.internal
REDIS_DB=2
JWT_SECRET=secret
JWT_ACCESS_EXPIRY=5m
JWT_REFRESH_EXPIRY=48h
`)

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "test", cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "*", cfg.App.CORSOrigin)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "5433", cfg.DB.Port)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.True(t, cfg.DB.MigrateOnStart)
	assert.Equal(t, "cache.internal", cfg.Redis.Host)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 48*time.Hour, cfg.JWT.RefreshExpiry)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeEnvFile(t, "APP_PORT=9090\nJWT_SECRET=secret\n")
	t.Setenv("APP_PORT", "7070")

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.App.Port)
}

func TestLoadConfigMissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("JWT_ACCESS_EXPIRY", "not-a-duration")

	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, defaultAccessExpiry, cfg.JWT.AccessExpiry)
	assert.Equal(t, defaultRefreshExpiry, cfg.JWT.RefreshExpiry)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	path := writeEnvFile(t, "APP_PORT=9090\n")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfigFrom(path)
	assert.Error(t, err)
}
