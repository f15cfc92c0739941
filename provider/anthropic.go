package provider

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"jethabot/model"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	defaultAnthropicModel   = "claude-3-5-haiku-latest"

	// Required by the Messages API when the request sets no cap
	anthropicMaxTokens = 1024

	// Anthropic has no response_format switch
	anthropicJSONInstruction = "Respond with a single JSON object and nothing else. " +
		"Do not wrap it in markdown code fences."
)

// AnthropicProvider implements the Provider interface using Anthropic's official API.
// It uses the official Anthropic Go SDK for direct Claude API access.
type AnthropicProvider struct {
	client  *anthropic.Client
	model   anthropic.Model
	baseURL string
}

// NewAnthropicProvider creates a new Anthropic provider instance.
//
// Parameters:
//   - baseURL: Anthropic API base URL (default: "https://api.anthropic.com")
//   - apiKey: Anthropic API key (required)
//   - model: Initial model to use (default: "claude-3-5-haiku-latest")
//
// Returns an error if the API key is missing.
func NewAnthropicProvider(baseURL, apiKey, model string) (*AnthropicProvider, error) {
	if baseURL == "" {
		baseURL = defaultAnthropicBaseURL
	}
	if apiKey == "" {
		return nil, missingKeyError("Anthropic")
	}

	anthropicModel := anthropic.Model(defaultAnthropicModel)
	if model != "" {
		anthropicModel = anthropic.Model(model)
	}

	client := anthropic.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	)

	return &AnthropicProvider{
		client:  &client, // Convert value to pointer
		model:   anthropicModel,
		baseURL: baseURL,
	}, nil
}

// Complete implements Provider.Complete with a single Messages request.
// Text blocks of the reply are concatenated.
func (p *AnthropicProvider) Complete(ctx context.Context, req model.CompletionRequest) (string, error) {
	messages, system := convertToAnthropicMessages(req.Turns)
	if req.JSONObject {
		system = append(system, anthropic.TextBlockParam{Text: anthropicJSONInstruction})
	}

	maxTokens := int64(anthropicMaxTokens)
	if req.MaxTokens > 0 {
		maxTokens = int64(req.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     p.model,
		Messages:  messages,
		MaxTokens: maxTokens,
	}
	if len(system) > 0 {
		params.System = system
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", ClassifyError(err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}
	return b.String(), nil
}

func (p *AnthropicProvider) Name() string {
	return string(ProviderTypeAnthropic)
}

// GetModel implements Provider.GetModel.
func (p *AnthropicProvider) GetModel() string {
	return string(p.model)
}
