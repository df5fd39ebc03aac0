package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, DriverPostgres, cfg.Database.Driver)
	require.Equal(t, 5, cfg.Stock.LowStockThreshold)
	require.Equal(t, 10, cfg.Stock.DefaultPageSize)
	require.Equal(t, 500, cfg.Stock.MaxPageSize)
	require.Equal(t, "page", cfg.Stock.GroupMode)
	require.Empty(t, cfg.Redis.Addr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverMemory)
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := Load()
	require.Equal(t, DriverMemory, cfg.Database.Driver)
	require.Equal(t, 6543, cfg.Database.Port)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestApplyEnvOverrides_IgnoresBadPort(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")

	var cfg Config
	cfg.Database.Port = 5432
	applyEnvOverrides(&cfg)
	require.Equal(t, 5432, cfg.Database.Port)
}
