package provider

import (
	"context"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"jethabot/model"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// App attribution headers shown on openrouter.ai
	openRouterReferer = "https://github.com/jethabot/jethabot"
	openRouterTitle   = "Jethabot"
)

// OpenRouterProvider implements the Provider interface using OpenAI's official Go SDK.
// It connects to OpenRouter's API which is OpenAI-compatible.
type OpenRouterProvider struct {
	client  openai.Client
	model   string
	baseURL string
}

// NewOpenRouterProvider creates a new OpenRouter provider instance.
//
// Parameters:
//   - baseURL: OpenRouter API base URL ("https://openrouter.ai/api/v1")
//   - apiKey: OpenRouter API key
//   - model: Model to use for requests
//
// Returns an error if the API key is missing.
func NewOpenRouterProvider(baseURL, apiKey, model string) (*OpenRouterProvider, error) {
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	if apiKey == "" {
		return nil, missingKeyError("OpenRouter")
	}
	if model == "" {
		model = "openai/gpt-4o-mini"
	}

	// Create OpenAI client with custom base URL for OpenRouter
	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
		option.WithHeader("HTTP-Referer", openRouterReferer),
		option.WithHeader("X-Title", openRouterTitle),
	)

	return &OpenRouterProvider{
		client:  client,
		model:   model,
		baseURL: baseURL,
	}, nil
}

// Complete implements Provider.Complete.
//
// OpenRouter forwards response_format to the upstream model; models that
// ignore it still get the JSON contract from the persona instruction.
func (p *OpenRouterProvider) Complete(ctx context.Context, req model.CompletionRequest) (string, error) {
	return chatCompletion(ctx, p.client, p.model, req)
}

func (p *OpenRouterProvider) Name() string {
	return string(ProviderTypeOpenRouter)
}

// GetModel implements Provider.GetModel.
// Returns the full model name for API calls (e.g., "openai/gpt-4o-mini").
func (p *OpenRouterProvider) GetModel() string {
	return p.model
}
