package advisor

// Config holds advisor settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// MaxCatalogModules caps how many catalog entries are listed in the
	// prompt. Zero means no limit.
	MaxCatalogModules int
}

// DefaultConfig returns sensible defaults for path reviews.
func DefaultConfig() Config {
	return Config{
		MaxTokens:         1024,
		Temperature:       0.2,
		MaxCatalogModules: 200,
	}
}
