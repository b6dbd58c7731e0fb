package engine

import (
	"fmt"

	"billscan/internal/config"
	"billscan/internal/domain"
	"billscan/internal/port"
)

// ProviderFactory is a function that creates a RecognitionEngine from a provider config.
type ProviderFactory func(cfg *config.EngineProviderConfig) (port.RecognitionEngine, error)

// registry of engine provider factories, populated explicitly via RegisterProvider
// from main.go.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a recognition engine factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewEngine creates a RecognitionEngine from a provider config using the registered factory.
func NewEngine(cfg *config.EngineProviderConfig) (port.RecognitionEngine, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownEngine, cfg.Provider)
	}
	return factory(cfg)
}
