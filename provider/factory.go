// Package provider implements model.Provider on top of the vendor SDKs.
//
// Each backend performs one non-streaming exchange: an ordered list of
// role-tagged turns goes out, the raw text of a single reply comes back.
// Vendor errors are mapped onto model.ErrorKind by ClassifyError so the
// credential gate and the chat session never see SDK types.
//
//	p, err := provider.NewProvider(provider.Config{
//	    Type:   provider.ProviderTypeOpenAI,
//	    Model:  "gpt-4o-mini",
//	    APIKey: os.Getenv("OPENAI_API_KEY"),
//	})
//	raw, err := p.Complete(ctx, model.CompletionRequest{Turns: turns, JSONObject: true})
package provider

import (
	"fmt"

	"jethabot/config"
	"jethabot/model"
)

// ProviderType names a backend. The values match the provider setting in
// settings.toml.
type ProviderType string

const (
	ProviderTypeOpenAI     ProviderType = config.ProviderOpenAI
	ProviderTypeOpenRouter ProviderType = config.ProviderOpenRouter
	ProviderTypeAnthropic  ProviderType = config.ProviderAnthropic
	ProviderTypeOllama     ProviderType = config.ProviderOllama
)

// Config selects and configures one backend. APIKey may be empty only for
// Ollama; the hosted backends fail with KindCredentialInvalid without one.
type Config struct {
	Type    ProviderType
	BaseURL string
	Model   string
	APIKey  string
}

type constructor func(baseURL, apiKey, model string) (model.Provider, error)

var constructors = map[ProviderType]constructor{
	ProviderTypeOpenAI: func(u, k, m string) (model.Provider, error) {
		return NewOpenAIProvider(u, k, m)
	},
	ProviderTypeOpenRouter: func(u, k, m string) (model.Provider, error) {
		return NewOpenRouterProvider(u, k, m)
	},
	ProviderTypeAnthropic: func(u, k, m string) (model.Provider, error) {
		return NewAnthropicProvider(u, k, m)
	},
	ProviderTypeOllama: func(u, k, m string) (model.Provider, error) {
		return NewOllamaProvider(u, k, m)
	},
}

// NewProvider builds the backend named by cfg.Type. Building a provider
// never touches the network.
func NewProvider(cfg Config) (model.Provider, error) {
	build, ok := constructors[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
	p, err := build(cfg.BaseURL, cfg.APIKey, cfg.Model)
	if err != nil {
		// keep a failed *T from turning into a non-nil interface
		return nil, err
	}
	return p, nil
}
