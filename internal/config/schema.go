package config

// Config holds strata configuration.
// Stored at: ./config.yaml or ~/.strata/config.yaml
type Config struct {
	LLMProviders map[string]LLMProviderCfg `mapstructure:"llm_providers" yaml:"llm_providers"`
	Defaults     DefaultsCfg               `mapstructure:"defaults" yaml:"defaults"`
	Extraction   ExtractionCfg             `mapstructure:"extraction" yaml:"extraction"`
	Classifier   ClassifierCfg             `mapstructure:"classifier" yaml:"classifier"`
	Chunking     ChunkingCfg               `mapstructure:"chunking" yaml:"chunking"`
}

// LLMProviderCfg configures a chat/vision model provider.
type LLMProviderCfg struct {
	Type      string  `mapstructure:"type" yaml:"type"`             // "openrouter", "openai"
	Model     string  `mapstructure:"model" yaml:"model"`           // Model name
	APIKey    string  `mapstructure:"api_key" yaml:"api_key"`       // API key (supports ${ENV_VAR} syntax)
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit"` // Requests per second
	Enabled   bool    `mapstructure:"enabled" yaml:"enabled"`
}

// DefaultsCfg specifies default provider selections.
type DefaultsCfg struct {
	VisionProvider string `mapstructure:"vision_provider" yaml:"vision_provider"` // Provider for page-image structure extraction
	LLMProvider    string `mapstructure:"llm_provider" yaml:"llm_provider"`       // Provider for text reconstruction
	MaxWorkers     int    `mapstructure:"max_workers" yaml:"max_workers"`         // Max concurrent document pipelines
}

// ExtractionCfg tunes the TOC extraction tiers.
type ExtractionCfg struct {
	// MinModelConfidence gates vision/LLM tier candidates. Text tiers are
	// deterministic and gate on entry count alone.
	MinModelConfidence float64 `mapstructure:"min_model_confidence" yaml:"min_model_confidence"`
	// MinEntries is the minimum entry count for a usable candidate.
	MinEntries int `mapstructure:"min_entries" yaml:"min_entries"`
	// LeadingPages is how many leading pages are scanned for the TOC region.
	LeadingPages int `mapstructure:"leading_pages" yaml:"leading_pages"`
	// ModelTimeoutSeconds bounds each vision/LLM tier invocation.
	ModelTimeoutSeconds int `mapstructure:"model_timeout_seconds" yaml:"model_timeout_seconds"`
}

// ClassifierCfg configures the section classifier inputs.
type ClassifierCfg struct {
	// TablePath points at the static category lookup table (YAML).
	TablePath string `mapstructure:"table_path" yaml:"table_path"`
	// RulesPath optionally overrides the built-in keyword rule set (YAML).
	RulesPath string `mapstructure:"rules_path" yaml:"rules_path"`
}

// ChunkingCfg configures the content chunk splitter.
type ChunkingCfg struct {
	// MaxChunkChars is the size ceiling for a single content chunk.
	MaxChunkChars int `mapstructure:"max_chunk_chars" yaml:"max_chunk_chars"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLMProviders: map[string]LLMProviderCfg{
			"openrouter": {
				Type:      "openrouter",
				Model:     "anthropic/claude-sonnet-4",
				APIKey:    "${OPENROUTER_API_KEY}",
				RateLimit: 2.0,
				Enabled:   true,
			},
			"openai": {
				Type:      "openai",
				Model:     "gpt-4o",
				APIKey:    "${OPENAI_API_KEY}",
				RateLimit: 2.0,
				Enabled:   true,
			},
		},
		Defaults: DefaultsCfg{
			VisionProvider: "openai",
			LLMProvider:    "openrouter",
			MaxWorkers:     4,
		},
		Extraction: ExtractionCfg{
			MinModelConfidence:  0.7,
			MinEntries:          3,
			LeadingPages:        10,
			ModelTimeoutSeconds: 300,
		},
		Classifier: ClassifierCfg{},
		Chunking: ChunkingCfg{
			MaxChunkChars: 10000,
		},
	}
}

// GetLLMProvider returns a provider config by name.
func (c *Config) GetLLMProvider(name string) (LLMProviderCfg, bool) {
	cfg, ok := c.LLMProviders[name]
	return cfg, ok
}

// EnabledLLMProviders returns all enabled providers.
func (c *Config) EnabledLLMProviders() map[string]LLMProviderCfg {
	result := make(map[string]LLMProviderCfg)
	for name, cfg := range c.LLMProviders {
		if cfg.Enabled {
			result[name] = cfg
		}
	}
	return result
}
