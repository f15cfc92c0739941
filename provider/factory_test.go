package provider

import (
	"testing"

	"jethabot/config"
	"jethabot/model"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		wantName    string
		wantModel   string
	}{
		{
			name:      "ollama provider with defaults",
			config:    Config{Type: ProviderTypeOllama},
			wantName:  "ollama",
			wantModel: "llama3.1:latest",
		},
		{
			name: "openai provider",
			config: Config{
				Type:    ProviderTypeOpenAI,
				BaseURL: "https://api.openai.com/v1",
				Model:   "gpt-4o-mini",
				APIKey:  "test-key",
			},
			wantName:  "openai",
			wantModel: "gpt-4o-mini",
		},
		{
			name:      "openrouter provider",
			config:    Config{Type: ProviderTypeOpenRouter, APIKey: "test-key"},
			wantName:  "openrouter",
			wantModel: "openai/gpt-4o-mini",
		},
		{
			name:      "anthropic provider",
			config:    Config{Type: ProviderTypeAnthropic, APIKey: "test-key"},
			wantName:  "anthropic",
			wantModel: "claude-3-5-haiku-latest",
		},
		{
			name:        "openai without key",
			config:      Config{Type: ProviderTypeOpenAI},
			expectError: true,
		},
		{
			name:        "unknown provider type",
			config:      Config{Type: ProviderType("unknown"), APIKey: "k"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)

			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				if p != nil {
					t.Error("expected nil provider, got non-nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.wantName)
			}
			if p.GetModel() != tt.wantModel {
				t.Errorf("GetModel() = %q, want %q", p.GetModel(), tt.wantModel)
			}
		})
	}
}

func TestConnectorFor(t *testing.T) {
	cfg := config.Default()
	connect := ConnectorFor(cfg)

	p, err := connect("sk-test")
	if err != nil {
		t.Fatalf("connect() error = %v", err)
	}
	if _, ok := p.(*OpenAIProvider); !ok {
		t.Errorf("expected *OpenAIProvider, got %T", p)
	}
	if p.GetModel() != cfg.Model {
		t.Errorf("GetModel() = %q, want %q", p.GetModel(), cfg.Model)
	}

	_, err = connect("")
	if model.KindOf(err) != model.KindCredentialInvalid {
		t.Errorf("empty key kind = %v", model.KindOf(err))
	}
}

// Compile-time checks that every backend satisfies model.Provider.
var (
	_ model.Provider = (*OpenAIProvider)(nil)
	_ model.Provider = (*OpenRouterProvider)(nil)
	_ model.Provider = (*AnthropicProvider)(nil)
	_ model.Provider = (*OllamaProvider)(nil)
)
