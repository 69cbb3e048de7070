package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/floreria-ops/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.False(t, cfg.Redis.Enabled(), "sin REDIS_ADDR la caché queda desactivada")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{
		Host: "db.local", Port: 5432,
		User: "app", Password: "p@ss:word",
		DBName: "floreria_ops", SSLMode: "require",
	}
	dsn := db.DSN()
	assert.Contains(t, dsn, "db.local:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// La contraseña con caracteres especiales va URL-encoded.
	assert.Contains(t, dsn, "p%40ss%3Aword")

	db.DatabaseURL = "postgresql://full/dsn"
	assert.Equal(t, "postgresql://full/dsn", db.ConnectionString())
}
