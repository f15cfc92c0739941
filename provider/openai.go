package provider

import (
	"context"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"jethabot/model"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIProvider implements the Provider interface using OpenAI's official API.
// It uses the official OpenAI Go SDK for direct OpenAI API access.
type OpenAIProvider struct {
	client  openai.Client
	model   string
	baseURL string
}

// NewOpenAIProvider creates a new OpenAI provider instance.
//
// Parameters:
//   - baseURL: OpenAI API base URL (default: "https://api.openai.com/v1")
//   - apiKey: OpenAI API key (required)
//   - model: Initial model to use (default: "gpt-4o-mini")
//
// Returns an error if the API key is missing.
func NewOpenAIProvider(baseURL, apiKey, model string) (*OpenAIProvider, error) {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if apiKey == "" {
		return nil, missingKeyError("OpenAI")
	}
	if model == "" {
		model = "gpt-4o-mini" // Default to affordable model
	}

	// Retries are left to the user: a failed send is re-submitted by hand
	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	)

	return &OpenAIProvider{
		client:  client,
		model:   model,
		baseURL: baseURL,
	}, nil
}

// Complete implements Provider.Complete with a single non-streaming request.
func (p *OpenAIProvider) Complete(ctx context.Context, req model.CompletionRequest) (string, error) {
	return chatCompletion(ctx, p.client, p.model, req)
}

// chatCompletion runs one Chat Completions request. Shared with OpenRouter.
func chatCompletion(ctx context.Context, client openai.Client, modelName string, req model.CompletionRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages: ConvertToOpenAIMessages(req.Turns),
		Model:    openai.ChatModel(modelName),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.JSONObject {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	completion, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", ClassifyError(err)
	}
	if len(completion.Choices) == 0 {
		return "", &model.ProviderError{Kind: model.KindProviderTransport, Detail: "response contained no choices"}
	}

	return completion.Choices[0].Message.Content, nil
}

// Name implements Provider.Name.
func (p *OpenAIProvider) Name() string {
	return string(ProviderTypeOpenAI)
}

// GetModel implements Provider.GetModel.
func (p *OpenAIProvider) GetModel() string {
	return p.model
}
