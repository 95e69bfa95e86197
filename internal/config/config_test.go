package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, SourceMemory, cfg.Source)
	assert.Equal(t, "Default Learning Goal", cfg.Path.DefaultGoal)
	assert.Nil(t, cfg.Path.FallbackModules)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("LEARNPATH_LOG_MODE", "prod")
	t.Setenv("LEARNPATH_LOG_LEVEL", "INFO")
	t.Setenv("LEARNPATH_SOURCE", "SQLite")
	t.Setenv("LEARNPATH_DEFAULT_GOAL", "learn python basics")
	t.Setenv("LEARNPATH_FALLBACK_MODULES", " variables, ,data_types ")
	t.Setenv("LEARNPATH_CACHE_TTL", "30s")
	t.Setenv("LEARNPATH_REDIS_ADDR", "localhost:6379")
	t.Setenv("LEARNPATH_REDIS_DB", "2")
	t.Setenv("NEO4J_DATABASE", "curriculum")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("LEARNPATH_CORS_ORIGINS", "http://a.test,http://b.test")

	cfg := ConfigFromEnv()
	assert.Equal(t, "prod", cfg.LogMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, SourceSQLite, cfg.Source)
	assert.Equal(t, "learn python basics", cfg.Path.DefaultGoal)
	assert.Equal(t, []string{"variables", "data_types"}, cfg.Path.FallbackModules)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "curriculum", cfg.Neo4j.Database)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.AllowedOrigins)
	require.NoError(t, cfg.Validate())
}

func TestConfigFromEnv_EmptyFallbackDisables(t *testing.T) {
	t.Setenv("LEARNPATH_FALLBACK_MODULES", "")
	cfg := ConfigFromEnv()
	require.NotNil(t, cfg.Path.FallbackModules)
	assert.Empty(t, cfg.Path.FallbackModules)
}

func TestConfigFromEnv_BadValuesKeepDefaults(t *testing.T) {
	t.Setenv("LEARNPATH_CACHE_TTL", "soon")
	t.Setenv("LEARNPATH_REDIS_DB", "two")
	t.Setenv("OTEL_ENABLED", "maybe")

	cfg := ConfigFromEnv()
	def := DefaultConfig()
	assert.Equal(t, def.Cache.TTL, cfg.Cache.TTL)
	assert.Equal(t, def.Redis.DB, cfg.Redis.DB)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source = "postgres"
	assert.ErrorContains(t, cfg.Validate(), "unknown knowledge source")

	cfg = DefaultConfig()
	cfg.LogMode = "verbose"
	assert.ErrorContains(t, cfg.Validate(), "unknown log mode")

	cfg = DefaultConfig()
	cfg.LogLevel = "chatty"
	assert.ErrorContains(t, cfg.Validate(), "unknown log level")

	cfg = DefaultConfig()
	cfg.Source = SourceNeo4j
	cfg.Neo4j.URI = ""
	assert.ErrorContains(t, cfg.Validate(), "NEO4J_URI")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("LEARNPATH_TEST_DOTENV=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("LEARNPATH_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("LEARNPATH_TEST_DOTENV"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "absent.env")))
}
