package testutil

import (
	"encoding/json"
	"time"

	"jethabot/model"
)

// Reply encodes a {"step", "content"} reply exactly as the provider would return it
func Reply(step, content string) string {
	b, _ := json.Marshal(struct {
		Step    string `json:"step"`
		Content string `json:"content"`
	}{step, content})
	return string(b)
}

// TestTurns returns a sample conversation for testing
func TestTurns() []model.Turn {
	return []model.Turn{
		{
			Role:      model.RoleSystem,
			Content:   "You are a test persona.",
			Timestamp: time.Now(),
		},
		{
			Role:      model.RoleUser,
			Content:   "Jethalal, kaise ho?",
			Timestamp: time.Now(),
		},
		{
			Role:      model.RoleAssistant,
			Content:   Reply("reply", "Ekdum mast!"),
			Timestamp: time.Now(),
		},
		{
			Role:      model.RoleUser,
			Content:   "Daya kahan hai?",
			Timestamp: time.Now(),
		},
	}
}

// SingleUserTurn returns a single user turn for simple tests
func SingleUserTurn(content string) []model.Turn {
	return []model.Turn{
		{
			Role:      model.RoleUser,
			Content:   content,
			Timestamp: time.Now(),
		},
	}
}

func InvalidKeyError() error {
	return &model.ProviderError{Kind: model.KindCredentialInvalid, Detail: "Incorrect API key provided"}
}

func NoQuotaError() error {
	return &model.ProviderError{Kind: model.KindCredentialNoQuota, Detail: "You exceeded your current quota"}
}

func TransportError(detail string) error {
	return &model.ProviderError{Kind: model.KindProviderTransport, Detail: detail}
}

// OpenAIErrorBody is the JSON body the OpenAI API returns for a failed request
func OpenAIErrorBody(message, typ, code string) string {
	b, _ := json.Marshal(map[string]any{
		"error": map[string]any{
			"message": message,
			"type":    typ,
			"param":   nil,
			"code":    code,
		},
	})
	return string(b)
}

// OpenAICompletionBody is a minimal chat.completion response carrying content
func OpenAICompletionBody(model, content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   model,
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     5,
			"completion_tokens": 5,
			"total_tokens":      10,
		},
	})
	return string(b)
}
