package llm

import (
	"fmt"

	"adcheck/internal/config"
	"adcheck/internal/port"
)

// ProviderFactory is a function that creates a Generator from a provider config.
type ProviderFactory func(cfg *config.LLMProviderConfig) (port.Generator, error)

// registry of generator factories, populated explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a generator factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewGenerator creates a Generator from a provider config using the
// registered factory.
func NewGenerator(cfg *config.LLMProviderConfig) (port.Generator, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
