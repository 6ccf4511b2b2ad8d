package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acaicedo/puntoventa/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "puntoventa", cfg.App.Name)
	assert.Equal(t, "punto_venta.db", cfg.DB.Path)
	assert.Equal(t, 30000, cfg.DB.BusyTimeoutMS)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_PATH", "/var/lib/pos/datos.db")
	t.Setenv("DB_BUSY_TIMEOUT_MS", "1500")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "/var/lib/pos/datos.db", cfg.DB.Path)
	assert.Equal(t, 1500, cfg.DB.BusyTimeoutMS)
	assert.Equal(t, "debug", cfg.Log.Level)
}
