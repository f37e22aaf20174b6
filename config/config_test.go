package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()

	err := applyEnv(&cfg, lookupFrom(map[string]string{
		"PORT":                 "9090",
		"LOG_LEVEL":            "debug",
		"CATALOG_FILE":         "/srv/catalog.yaml",
		"REDIS_ADDR":           "redis:6379",
		"CACHE_TTL":            "30s",
		"RATE_LIMIT_REQUESTS":  "5",
		"RATE_LIMIT_WINDOW":    "2m",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example,",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "/srv/catalog.yaml", cfg.Catalog.File)
	assert.Equal(t, "redis:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
	assert.Equal(t, 2*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	for _, env := range []map[string]string{
		{"CACHE_TTL": "soon"},
		{"RATE_LIMIT_REQUESTS": "many"},
		{"RATE_LIMIT_WINDOW": "1 minute"},
	} {
		cfg := Default()
		assert.Error(t, applyEnv(&cfg, lookupFrom(env)), env)
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())

	cfg := Default()
	cfg.RateLimit.Requests = 0
	assert.ErrorContains(t, cfg.Validate(), "rate_limit.requests")

	cfg = Default()
	cfg.Cache.TTL = 0
	assert.ErrorContains(t, cfg.Validate(), "cache.ttl")
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "7000"
  log_level: warn
cache:
  ttl: 1h
rate_limit:
  requests: 10
  window: 30s
cors:
  allowed_origins: ["https://market.example"]
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7100", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Server.LogLevel)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 10, cfg.RateLimit.Requests)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, []string{"https://market.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "data/catalog.yaml", cfg.Catalog.File)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.ErrorContains(t, err, "read config file")
}
