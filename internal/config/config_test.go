package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("API_BASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.ListenAddr)
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, 5, cfg.ComparisonCount)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10, cfg.DBMaxConns)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dash.yaml")
	err := os.WriteFile(path, []byte(`
listen_addr: ":9000"
csv_path: /data/train.csv
comparison_count: 8
request_timeout: 3s
allowed_origins: [http://a.example, http://b.example]
`), 0o644)
	require.NoError(t, err)

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("COMPARISON_COUNT", "12")
	t.Setenv("API_BASE_URL", "http://api.internal:8000/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/data/train.csv", cfg.CSVPath)
	assert.Equal(t, 12, cfg.ComparisonCount, "env overrides file")
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "http://api.internal:8000", cfg.APIBaseURL)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("MAX_CONNS", "many")
	t.Setenv("REFRESH_INTERVAL", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_CONNS")
	assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
}

func TestAllowedOriginsList(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ALLOWED_ORIGINS", " http://x.test , ,http://y.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://x.test", "http://y.test"}, cfg.AllowedOrigins)
}

func TestValidateServer(t *testing.T) {
	cfg := defaults()
	assert.Error(t, cfg.ValidateServer())

	cfg.CSVPath = "train.csv"
	assert.NoError(t, cfg.ValidateServer())

	cfg.SeedFromCSV = true
	assert.Error(t, cfg.ValidateServer(), "seeding needs a database")

	cfg.DatabaseURL = "postgres://localhost/dash"
	assert.NoError(t, cfg.ValidateServer())

	cfg.DBMaxConns = 0
	assert.Error(t, cfg.ValidateServer(), "a database needs a pool")
}

func TestDBMaxConnsFromEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_MAX_CONNS", "25")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.DBMaxConns)
}
