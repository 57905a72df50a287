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
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "https://www.alphavantage.co", cfg.Provider.BaseURL)
	assert.Equal(t, float64(100000), cfg.Simulation.StartingCapital)
	assert.Equal(t, "info", cfg.LogLevel)

	timeout, err := cfg.Simulation.ParseDecideTimeout()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, timeout)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
provider:
  base_url: "http://feed.local"
  api_key: "k"
database:
  url: "postgresql://localhost/alphaback"
simulation:
  starting_capital: 50000
  decide_timeout: "250ms"
  plugin_dir: "/opt/strategies"
log_level: debug
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "http://feed.local", cfg.Provider.BaseURL)
	assert.Equal(t, "k", cfg.Provider.APIKey)
	assert.Equal(t, "postgresql://localhost/alphaback", cfg.Database.URL)
	assert.Equal(t, float64(50000), cfg.Simulation.StartingCapital)
	assert.Equal(t, "/opt/strategies", cfg.Simulation.PluginDir)
	assert.Equal(t, "debug", cfg.LogLevel)

	timeout, err := cfg.Simulation.ParseDecideTimeout()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, timeout)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ALPHABACK_ADDR", ":7070")
	t.Setenv("ALPHAVANTAGE_API_KEY", "env-key")
	t.Setenv("ALPHABACK_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "env-key", cfg.Provider.APIKey)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
simulation:
  decide_timeout: "soon"
`), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
