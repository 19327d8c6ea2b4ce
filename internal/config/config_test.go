package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "http://localhost:5000", cfg.API.BaseURL)
	assert.Zero(t, cfg.API.Timeout)
	assert.Equal(t, 500*time.Millisecond, cfg.API.AddSettleDelay)
	assert.Equal(t, "/api/image-proxy", cfg.View.ImageProxyPath)
	assert.Equal(t, "aliexpress_orders", cfg.Export.Prefix)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "parceltrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
api:
  base_url: "http://tracker:5000"
  timeout: 15s
log:
  level: debug
  format: json
`), 0o644))

	t.Setenv("PARCELTRACK_EXPORT_PREFIX", "orders")
	t.Setenv("PARCELTRACK_API_BASE_URL", "http://override:5000")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "http://override:5000", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "orders", cfg.Export.Prefix)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{API: APIConfig{BaseURL: "http://x"}, Log: LogConfig{Format: "xml"}}
	assert.EqualError(t, cfg.Validate(), "unsupported log format: xml")

	cfg.Log.Format = "JSON"
	assert.NoError(t, cfg.Validate())

	cfg.API.BaseURL = " "
	assert.Error(t, cfg.Validate())
}
