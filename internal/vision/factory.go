package vision

import (
	"fmt"
	"sync"

	"equitylens/internal/config"
	"equitylens/internal/port"
)

// ProviderFactory creates a VisionClient from a provider config.
type ProviderFactory func(cfg *config.VisionProviderConfig) (port.VisionClient, error)

var (
	providersMu sync.RWMutex
	providers   = map[string]ProviderFactory{}
)

// RegisterProvider registers a vision provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providersMu.Lock()
	defer providersMu.Unlock()
	providers[name] = factory
}

// NewClient creates a VisionClient from a provider config using the registered factory.
func NewClient(cfg *config.VisionProviderConfig) (port.VisionClient, error) {
	providersMu.RLock()
	factory, ok := providers[cfg.Provider]
	providersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown vision provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// NewChain builds the configured provider chain. It returns nil when no
// provider is configured, which disables the vision fallback. A single
// provider is returned as is; several are wrapped in a FallbackClient.
func NewChain(cfg *config.VisionConfig) (port.VisionClient, error) {
	var (
		clients []port.VisionClient
		names   []string
	)
	for _, pc := range []*config.VisionProviderConfig{cfg.PrimaryConfig(), cfg.SecondaryConfig(), cfg.TertiaryConfig()} {
		if pc == nil {
			continue
		}
		c, err := NewClient(pc)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
		names = append(names, pc.Provider)
	}

	switch len(clients) {
	case 0:
		return nil, nil
	case 1:
		return clients[0], nil
	default:
		return NewFallbackClient(clients, names), nil
	}
}
