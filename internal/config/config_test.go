package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.LLMProviders) == 0 {
		t.Error("expected default LLM providers")
	}
	or, ok := cfg.GetLLMProvider("openrouter")
	if !ok {
		t.Fatal("expected openrouter provider")
	}
	if or.APIKey != "${OPENROUTER_API_KEY}" {
		t.Error("expected openrouter API key placeholder")
	}
	if cfg.Extraction.MinModelConfidence != 0.7 {
		t.Errorf("expected 0.7 model confidence gate, got %v", cfg.Extraction.MinModelConfidence)
	}
	if cfg.Extraction.MinEntries != 3 {
		t.Errorf("expected 3 minimum entries, got %d", cfg.Extraction.MinEntries)
	}
	if cfg.Chunking.MaxChunkChars <= 0 {
		t.Error("expected positive chunk ceiling")
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		os.Setenv("TEST_API_KEY", "secret123")
		defer os.Unsetenv("TEST_API_KEY")

		result := ResolveEnvVars("${TEST_API_KEY}")
		if result != "secret123" {
			t.Errorf("expected secret123, got %s", result)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		result := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}")
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		result := ResolveEnvVars("literal-value")
		if result != "literal-value" {
			t.Errorf("expected literal-value, got %s", result)
		}
	})
}

func TestToProviderRegistryConfig(t *testing.T) {
	os.Setenv("TEST_STRATA_KEY", "k-123")
	defer os.Unsetenv("TEST_STRATA_KEY")

	cfg := &Config{
		LLMProviders: map[string]LLMProviderCfg{
			"openrouter": {
				Type:    "openrouter",
				Model:   "anthropic/claude-sonnet-4",
				APIKey:  "${TEST_STRATA_KEY}",
				Enabled: true,
			},
		},
	}

	reg := cfg.ToProviderRegistryConfig()
	got, ok := reg.LLMProviders["openrouter"]
	if !ok {
		t.Fatal("expected openrouter in registry config")
	}
	if got.APIKey != "k-123" {
		t.Errorf("expected resolved key k-123, got %s", got.APIKey)
	}
}

func TestWriteDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty config file")
	}
}
