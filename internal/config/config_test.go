package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Suggest.ExpiryHorizonDays)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9999"
database:
  driver: postgres
  dsn: "host=localhost dbname=larder sslmode=disable"
suggest:
  expiry_horizon_days: 7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 7, cfg.Suggest.ExpiryHorizonDays)
	// Untouched values keep defaults.
	assert.Equal(t, ":9090", cfg.Server.MetricsAddr)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("LARDER_DB_DSN", "/data/larder.db")
	t.Setenv("LARDER_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/data/larder.db", cfg.Database.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidateRejectsBadDriver(t *testing.T) {
	cfg := Default()
	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveHorizon(t *testing.T) {
	cfg := Default()
	cfg.Suggest.ExpiryHorizonDays = 0
	assert.Error(t, cfg.Validate())
}
