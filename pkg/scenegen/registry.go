package scenegen

import (
	"context"
	"fmt"
	"os"
	"sort"
)

// Registry maps model IDs to the providers that serve them. It is filled
// once at startup and read-only afterwards.
type Registry struct {
	order     []string
	providers map[string]Provider
	models    map[string]string
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
		models:    make(map[string]string),
	}
}

// Add registers a provider and indexes its models.
func (r *Registry) Add(provider Provider) {
	name := provider.Name()
	if _, exists := r.providers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.providers[name] = provider
	for _, model := range provider.ListModels() {
		r.models[model.ID] = name
	}
}

// ProviderFor returns the provider serving the given model.
func (r *Registry) ProviderFor(modelID string) (Provider, error) {
	name, exists := r.models[modelID]
	if !exists {
		return nil, fmt.Errorf("model %q not found (have %v)", modelID, r.Models())
	}
	return r.providers[name], nil
}

// DefaultModel returns the preferred model of the first registered
// provider.
func (r *Registry) DefaultModel() (string, error) {
	if len(r.order) == 0 {
		return "", fmt.Errorf("no providers registered")
	}
	models := r.providers[r.order[0]].ListModels()
	if len(models) == 0 {
		return "", fmt.Errorf("provider %q serves no models", r.order[0])
	}
	return models[0].ID, nil
}

// Models returns every registered model ID, sorted reverse alphabetically
// so newer versions list first.
func (r *Registry) Models() []string {
	models := make([]string, 0, len(r.models))
	for id := range r.models {
		models = append(models, id)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(models)))
	return models
}

// ModelsGrouped returns model metadata per provider, in registration
// order.
func (r *Registry) ModelsGrouped() [][]ModelInfo {
	grouped := make([][]ModelInfo, 0, len(r.order))
	for _, name := range r.order {
		grouped = append(grouped, r.providers[name].ListModels())
	}
	return grouped
}

// DefaultRegistry builds a registry from the providers whose API keys are
// present in the environment. With no keys set it returns an error.
func DefaultRegistry(ctx context.Context) (*Registry, error) {
	registry := NewRegistry()

	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		provider, err := NewClaudeProvider()
		if err != nil {
			return nil, err
		}
		registry.Add(provider)
	}
	if os.Getenv("GEMINI_API_KEY") != "" {
		provider, err := NewGeminiProvider(ctx)
		if err != nil {
			return nil, err
		}
		registry.Add(provider)
	}

	if len(registry.order) == 0 {
		return nil, fmt.Errorf("no LLM provider configured: set ANTHROPIC_API_KEY or GEMINI_API_KEY")
	}
	return registry, nil
}
