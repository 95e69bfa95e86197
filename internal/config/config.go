// Package config loads application settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Source kinds accepted by Config.Source.
const (
	SourceMemory = "memory"
	SourceSQLite = "sqlite"
	SourceNeo4j  = "neo4j"
)

// Config holds application settings outside the LLM layer.
type Config struct {
	// LogMode is "dev" or "prod".
	LogMode string

	// LogLevel overrides the mode's minimum level (debug, info, warn, error).
	LogLevel string

	// DB is the SQLite database path. Empty means the default data dir.
	DB string

	// Catalog is an optional YAML/JSON catalog file. Empty means the seed catalog.
	Catalog string

	// Source selects the knowledge source: memory, sqlite or neo4j.
	Source string

	Path    PathConfig
	Cache   CacheConfig
	Redis   RedisConfig
	Neo4j   Neo4jConfig
	HTTP    HTTPConfig
	Tracing TracingConfig
}

// PathConfig tunes goal resolution in the path builder.
type PathConfig struct {
	DefaultGoal     string
	FallbackModules []string // nil means use the catalog's own fallback
}

// CacheConfig configures the in-process source cache. Zero TTL disables it.
type CacheConfig struct {
	TTL time.Duration
}

// RedisConfig configures the shared source cache. Empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Neo4jConfig holds graph database connection settings.
type Neo4jConfig struct {
	URI      string
	User     string
	Password string
	Database string
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Addr            string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// TracingConfig configures OpenTelemetry export.
type TracingConfig struct {
	Enabled      bool
	OTLPEndpoint string // empty means stdout exporter
	ServiceName  string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogMode:  "dev",
		LogLevel: "warn",
		Source:   SourceMemory,
		Path: PathConfig{
			DefaultGoal: "Default Learning Goal",
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
		Redis: RedisConfig{
			TTL: 10 * time.Minute,
		},
		Neo4j: Neo4jConfig{
			URI:      "neo4j://localhost:7687",
			User:     "neo4j",
			Database: "neo4j",
		},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: 10 * time.Second,
		},
		Tracing: TracingConfig{
			ServiceName: "learnpath",
		},
	}
}

// LoadDotEnv loads variables from the given .env files (default ".env").
// A missing file is not an error; already-set variables are not overridden.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset or unparsable values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	cfg.LogMode = getEnv("LEARNPATH_LOG_MODE", cfg.LogMode)
	cfg.LogLevel = strings.ToLower(getEnv("LEARNPATH_LOG_LEVEL", cfg.LogLevel))
	cfg.DB = getEnv("LEARNPATH_DB", cfg.DB)
	cfg.Catalog = getEnv("LEARNPATH_CATALOG", cfg.Catalog)
	cfg.Source = strings.ToLower(getEnv("LEARNPATH_SOURCE", cfg.Source))

	cfg.Path.DefaultGoal = getEnv("LEARNPATH_DEFAULT_GOAL", cfg.Path.DefaultGoal)
	if v, ok := os.LookupEnv("LEARNPATH_FALLBACK_MODULES"); ok {
		// Set-but-empty disables the fallback.
		cfg.Path.FallbackModules = splitList(v)
		if cfg.Path.FallbackModules == nil {
			cfg.Path.FallbackModules = []string{}
		}
	}

	cfg.Cache.TTL = getDurationEnv("LEARNPATH_CACHE_TTL", cfg.Cache.TTL)

	cfg.Redis.Addr = getEnv("LEARNPATH_REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("LEARNPATH_REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getIntEnv("LEARNPATH_REDIS_DB", cfg.Redis.DB)
	cfg.Redis.TTL = getDurationEnv("LEARNPATH_REDIS_TTL", cfg.Redis.TTL)

	cfg.Neo4j.URI = getEnv("NEO4J_URI", cfg.Neo4j.URI)
	cfg.Neo4j.User = getEnv("NEO4J_USER", cfg.Neo4j.User)
	cfg.Neo4j.Password = getEnv("NEO4J_PASSWORD", cfg.Neo4j.Password)
	cfg.Neo4j.Database = getEnv("NEO4J_DATABASE", cfg.Neo4j.Database)

	cfg.HTTP.Addr = getEnv("LEARNPATH_HTTP_ADDR", cfg.HTTP.Addr)
	if v := os.Getenv("LEARNPATH_CORS_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}

	cfg.Tracing.Enabled = getBoolEnv("OTEL_ENABLED", cfg.Tracing.Enabled)
	cfg.Tracing.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Tracing.OTLPEndpoint)
	cfg.Tracing.ServiceName = getEnv("OTEL_SERVICE_NAME", cfg.Tracing.ServiceName)

	return cfg
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Source {
	case SourceMemory, SourceSQLite:
	case SourceNeo4j:
		if c.Neo4j.URI == "" {
			return fmt.Errorf("NEO4J_URI is required for the neo4j source")
		}
	default:
		return fmt.Errorf("unknown knowledge source: %q", c.Source)
	}
	switch c.LogMode {
	case "dev", "prod":
	default:
		return fmt.Errorf("unknown log mode: %q", c.LogMode)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %q", c.LogLevel)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
