package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries. Default: 60s.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string // Default: "claude-haiku"
	BaseURL string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-exp"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// envOverrides lists LEARNPATH_* variables and the config field each sets.
func envOverrides(cfg *Config) map[string]*string {
	return map[string]*string{
		"LEARNPATH_LLM_PROVIDER":        &cfg.Provider,
		"LEARNPATH_ANTHROPIC_API_KEY":   &cfg.Anthropic.APIKey,
		"LEARNPATH_ANTHROPIC_MODEL":     &cfg.Anthropic.Model,
		"LEARNPATH_ANTHROPIC_BASE_URL":  &cfg.Anthropic.BaseURL,
		"LEARNPATH_OPENAI_API_KEY":      &cfg.OpenAI.APIKey,
		"LEARNPATH_OPENAI_MODEL":        &cfg.OpenAI.Model,
		"LEARNPATH_OPENAI_BASE_URL":     &cfg.OpenAI.BaseURL,
		"LEARNPATH_GEMINI_API_KEY":      &cfg.Gemini.APIKey,
		"LEARNPATH_GEMINI_MODEL":        &cfg.Gemini.Model,
		"LEARNPATH_OPENROUTER_API_KEY":  &cfg.OpenRouter.APIKey,
		"LEARNPATH_OPENROUTER_MODEL":    &cfg.OpenRouter.Model,
		"LEARNPATH_OPENROUTER_BASE_URL": &cfg.OpenRouter.BaseURL,
	}
}

// ConfigFromEnv builds a Config from LEARNPATH_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for key, field := range envOverrides(&cfg) {
		if v := os.Getenv(key); v != "" {
			*field = v
		}
	}
	if v := os.Getenv("LEARNPATH_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key, envVar string
	switch c.Provider {
	case "anthropic":
		key, envVar = c.Anthropic.APIKey, "LEARNPATH_ANTHROPIC_API_KEY"
	case "openai":
		key, envVar = c.OpenAI.APIKey, "LEARNPATH_OPENAI_API_KEY"
	case "gemini":
		key, envVar = c.Gemini.APIKey, "LEARNPATH_GEMINI_API_KEY"
	case "openrouter":
		key, envVar = c.OpenRouter.APIKey, "LEARNPATH_OPENROUTER_API_KEY"
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", envVar, c.Provider)
	}
	return nil
}
