package providers

import (
	"fmt"
	"log/slog"
	"sync"
)

// Registry holds references to LLM clients.
// It supports config-driven instantiation, hot-reload, and thread-safe access.
type Registry struct {
	mu         sync.RWMutex
	llmClients map[string]LLMClient
	logger     *slog.Logger
}

// RegistryConfig is the provider portion of the application config, with
// API keys already resolved.
type RegistryConfig struct {
	LLMProviders map[string]LLMProviderConfig
}

// LLMProviderConfig configures one LLM client.
type LLMProviderConfig struct {
	Type      string
	Model     string
	APIKey    string
	RateLimit float64
	Enabled   bool
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		llmClients: make(map[string]LLMClient),
		logger:     slog.Default(),
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// RegisterLLM registers an LLM client by name.
func (r *Registry) RegisterLLM(name string, client LLMClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.llmClients[name] = client
	if r.logger != nil {
		r.logger.Info("registered LLM client", "name", name)
	}
}

// UnregisterLLM removes an LLM client by name.
func (r *Registry) UnregisterLLM(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.llmClients, name)
	if r.logger != nil {
		r.logger.Info("unregistered LLM client", "name", name)
	}
}

// GetLLM returns an LLM client by name.
func (r *Registry) GetLLM(name string) (LLMClient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.llmClients[name]
	if !ok {
		return nil, fmt.Errorf("LLM client not found: %s", name)
	}
	return client, nil
}

// ListLLM returns all registered LLM client names.
func (r *Registry) ListLLM() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.llmClients))
	for name := range r.llmClients {
		names = append(names, name)
	}
	return names
}

// ApplyConfig instantiates clients from config, replacing existing
// registrations. Disabled providers are removed.
func (r *Registry) ApplyConfig(cfg RegistryConfig) error {
	for name, pc := range cfg.LLMProviders {
		if !pc.Enabled {
			r.UnregisterLLM(name)
			continue
		}

		client, err := newClientFromConfig(pc)
		if err != nil {
			return fmt.Errorf("failed to build provider %s: %w", name, err)
		}
		r.RegisterLLM(name, client)
	}
	return nil
}

func newClientFromConfig(pc LLMProviderConfig) (LLMClient, error) {
	switch pc.Type {
	case "openrouter":
		return NewOpenRouterClient(OpenRouterConfig{
			APIKey:       pc.APIKey,
			DefaultModel: pc.Model,
			RPS:          pc.RateLimit,
		}), nil
	case "openai":
		return NewOpenAIClient(OpenAIConfig{
			APIKey: pc.APIKey,
			Model:  pc.Model,
			RPS:    pc.RateLimit,
		}), nil
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %s", pc.Type)
	}
}
