package model

import "context"

// Provider abstracts the hosted language model (OpenAI, OpenRouter, Anthropic, Ollama)
// using provider-agnostic types from this package.
//
// This interface is defined in the model package (not provider package) to avoid
// import cycles: provider implementations import model for Turn and ProviderError.
type Provider interface {
	// Complete sends the turns and returns the raw content of the single reply turn.
	// Errors should be *ProviderError values so callers can switch on Kind.
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// Name returns the provider ID ("openai", "anthropic", ...).
	Name() string

	// GetModel returns the model used for requests.
	GetModel() string
}

// CompletionRequest is one request/response exchange with the provider.
type CompletionRequest struct {
	Turns []Turn

	// JSONObject asks the provider to constrain the reply to a JSON object.
	JSONObject bool

	// MaxTokens caps the reply length; zero leaves the provider default.
	MaxTokens int
}

// Connector builds a Provider authenticated with apiKey.
type Connector func(apiKey string) (Provider, error)
