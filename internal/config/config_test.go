package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.HTTP.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "kunden_rettung.csv", cfg.Import.File)
	assert.False(t, cfg.Postgres.InsecureSkipVerify)
	assert.Greater(t, cfg.Postgres.MaxOpenConns, 0)
	assert.Equal(t, 30*time.Minute, cfg.Postgres.ConnMaxLifetime)
	assert.Equal(t, 5*time.Minute, cfg.Postgres.ConnMaxIdleTime)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("KKARTEI_HTTP_ADDR", ":9999")
	t.Setenv("KKARTEI_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.HTTP.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadHonorsDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/kartei")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost:5432/kartei", cfg.Postgres.DSN)
}
