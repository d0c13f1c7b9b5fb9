package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"usercheck/internal/config"

	"github.com/stretchr/testify/require"
)

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment: production
logLevel: warn
http:
  addr: ":9999"
  pprof: true
catalog:
  defaultLocator: /srv/sites.json
engine:
  workers: 5
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, ":9999", cfg.HTTP.Addr)
	require.True(t, cfg.HTTP.Pprof)
	require.Equal(t, "/metrics", cfg.HTTP.MetricsPath)
	require.Equal(t, "/srv/sites.json", cfg.Catalog.DefaultLocator)
	require.Equal(t, 30*time.Second, cfg.Catalog.FetchTimeout)
	require.Equal(t, 5, cfg.Engine.Workers)
	require.Equal(t, int64(1<<20), cfg.Engine.MaxBodyBytes)
}

func TestLoad_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("ENGINE_WORKERS", "3")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.HTTP.Addr)
	require.Equal(t, 3, cfg.Engine.Workers)
	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, 4*time.Minute, cfg.HTTP.RequestTimeout)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("http: [not, a, map"), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
}
