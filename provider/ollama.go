package provider

import (
	"context"
	"fmt"

	"jethabot/model"
	"jethabot/ollama"
)

// OllamaProvider wraps ollama.Client to implement the Provider interface.
//
// This provider converts transcript turns to Ollama's api.Message and maps
// the JSONObject flag onto Ollama's "json" output format.
type OllamaProvider struct {
	client *ollama.Client
}

// NewOllamaProvider creates a new Ollama provider instance.
//
// Parameters:
//   - baseURL: The Ollama server URL (e.g., "http://localhost:11434").
//     If empty, defaults to "http://localhost:11434".
//   - apiKey: Bearer token for hosted Ollama; empty for a local server.
//   - model: The model name to use (e.g., "llama3.1:latest").
//     If empty, defaults to "llama3.1:latest".
//
// Returns an error if the baseURL is invalid.
//
// Example:
//
//	provider, err := NewOllamaProvider("http://localhost:11434", "", "llama3.1")
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewOllamaProvider(baseURL, apiKey, model string) (*OllamaProvider, error) {
	client, err := ollama.NewClient(baseURL, apiKey, model)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaProvider{
		client: client,
	}, nil
}

// Complete implements Provider.Complete with a non-streaming chat request.
func (p *OllamaProvider) Complete(ctx context.Context, req model.CompletionRequest) (string, error) {
	content, err := p.client.Complete(ctx, ConvertToOllamaMessages(req.Turns), ollama.CompleteOptions{
		JSON:      req.JSONObject,
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return "", ClassifyError(err)
	}
	return content, nil
}

func (p *OllamaProvider) Name() string {
	return string(ProviderTypeOllama)
}

// GetModel implements Provider.GetModel (direct passthrough).
func (p *OllamaProvider) GetModel() string {
	return p.client.GetModel()
}
