package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ZeroDebounce(t *testing.T) {
	cfg, err := Parse([]byte("search:\n  debounce_ms: 0\n"))
	require.NoError(t, err)

	require.NotNil(t, cfg.Search.DebounceMs)
	assert.Equal(t, 0, *cfg.Search.DebounceMs)
	assert.Equal(t, time.Duration(0), cfg.Search.Debounce())
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("http:\n  port: 9000\n"))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, 10, cfg.HTTP.ReadTimeoutSec)
	assert.Equal(t, int64(4<<20), cfg.HTTP.MaxBodyBytes)
	assert.Equal(t, 900, cfg.Sessions.IdleTimeoutSec)
	assert.Equal(t, 60, cfg.Sessions.CleanupIntervalSec)
	assert.Equal(t, "local", cfg.Logging.Env)
	assert.Equal(t, DefaultDebounceMs, *cfg.Search.DebounceMs)
	assert.Equal(t, DefaultMaxSuggestions, cfg.Search.MaxSuggestions)
	assert.Empty(t, cfg.Storage.DataDir)
	assert.Zero(t, cfg.RateLimit.RequestsPerMinute)
}

func TestParse_EmptyDocumentUsesDefaultPort(t *testing.T) {
	cfg, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestParse_FullDocument(t *testing.T) {
	data := `
http:
  port: 8181
search:
  debounce_ms: 150
  max_suggestions: 5
  synonyms:
    soda: [pop, soft-drink]
sessions:
  idle_timeout_sec: 30
storage:
  data_dir: /tmp/catalogs
rate_limit:
  requests_per_minute: 120
logging:
  env: prod
  level: warn
`
	cfg, err := Parse([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.HTTP.Port)
	assert.Equal(t, 150, *cfg.Search.DebounceMs)
	assert.Equal(t, 150*time.Millisecond, cfg.Search.Debounce())
	assert.Equal(t, 5, cfg.Search.MaxSuggestions)
	assert.Equal(t, DefaultMaxPopularCategories, cfg.Search.MaxPopularCategories)
	assert.Equal(t, []string{"pop", "soft-drink"}, cfg.Search.Synonyms["soda"])
	assert.Equal(t, 30, cfg.Sessions.IdleTimeoutSec)
	assert.Equal(t, "/tmp/catalogs", cfg.Storage.DataDir)
	assert.Equal(t, 120, cfg.RateLimit.Burst)
	assert.Equal(t, "prod", cfg.Logging.Env)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestParse_ExpandsEnvVars(t *testing.T) {
	t.Setenv("CATALOG_SEARCH_PORT", "7070")

	cfg, err := Parse([]byte("http:\n  port: ${CATALOG_SEARCH_PORT}\nstorage:\n  data_dir: ${CATALOG_SEARCH_DATA:-./data}\n"))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.HTTP.Port)
	assert.Equal(t, "./data", cfg.Storage.DataDir)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid port", "http:\n  port: 70000\n"},
		{"negative debounce", "search:\n  debounce_ms: -5\n"},
		{"unknown env", "logging:\n  env: staging\n"},
		{"negative rate limit", "rate_limit:\n  requests_per_minute: -1\n"},
		{"malformed yaml", "http: [port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: 8282\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8282, cfg.HTTP.Port)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 8080, cfg.HTTP.Port)
}
