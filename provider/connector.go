package provider

import (
	"jethabot/config"
	"jethabot/model"
)

// ConnectorFor returns the model.Connector the credential gate uses to
// build a provider for each candidate key.
//
// Provider type, base URL and model come from the application config; only
// the key varies between calls. The connector itself never talks to the
// network, so the gate's probe stays the single outbound call.
//
// Example:
//
//	gate := model.NewGate(provider.ConnectorFor(cfg), model.GateOptions{...})
func ConnectorFor(cfg *config.Config) model.Connector {
	providerType := ProviderType(cfg.Provider)
	baseURL := cfg.BaseURL
	modelName := cfg.Model

	return func(apiKey string) (model.Provider, error) {
		p, err := NewProvider(Config{
			Type:    providerType,
			BaseURL: baseURL,
			Model:   modelName,
			APIKey:  apiKey,
		})
		if err != nil {
			config.Debugf("[Provider] Failed to create %s provider: %v", providerType, err)
			return nil, err
		}

		config.Debugf("[Provider] Created %s provider (model: %s)", providerType, p.GetModel())
		return p, nil
	}
}
