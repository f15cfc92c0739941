package provider

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"

	"jethabot/model"
)

// ConvertToOpenAIMessages converts transcript turns to OpenAI chat messages.
// Used by both the OpenAI and OpenRouter providers.
func ConvertToOpenAIMessages(turns []model.Turn) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case model.RoleSystem:
			result = append(result, openai.SystemMessage(t.Content))
		case model.RoleAssistant:
			result = append(result, openai.AssistantMessage(t.Content))
		default:
			result = append(result, openai.UserMessage(t.Content))
		}
	}
	return result
}

// ConvertToOllamaMessages converts transcript turns to Ollama api.Message.
//
// Both types carry Role and Content; timestamps and the Failed marker stay
// on the transcript side.
func ConvertToOllamaMessages(turns []model.Turn) []api.Message {
	result := make([]api.Message, len(turns))
	for i, t := range turns {
		result[i] = api.Message{
			Role:    string(t.Role),
			Content: t.Content,
		}
	}
	return result
}

// convertToAnthropicMessages converts transcript turns to Anthropic format.
// Anthropic takes system text as a separate parameter, so system turns are
// returned as blocks instead of messages.
func convertToAnthropicMessages(turns []model.Turn) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	var systemBlocks []anthropic.TextBlockParam
	msgs := make([]anthropic.MessageParam, 0, len(turns))

	for _, t := range turns {
		switch t.Role {
		case model.RoleSystem:
			systemBlocks = append(systemBlocks, anthropic.TextBlockParam{Text: t.Content})
		case model.RoleAssistant:
			msgs = append(msgs, anthropic.NewAssistantMessage(anthropic.NewTextBlock(t.Content)))
		default:
			msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(t.Content)))
		}
	}

	return msgs, systemBlocks
}
