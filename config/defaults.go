package config

import "time"

const (
	DefaultRequestTimeout    = 45 * time.Second
	DefaultProbeMaxTokens    = 5
	DefaultServerListen      = "127.0.0.1:8089"
	DefaultRequestsPerMinute = 20
	DefaultSessionTTL        = 30 * time.Minute
)

// DefaultModelFor returns the chat model used when settings leave it empty.
func DefaultModelFor(provider string) string {
	switch provider {
	case ProviderOpenRouter:
		return "openai/gpt-4o-mini"
	case ProviderAnthropic:
		return "claude-3-5-haiku-latest"
	case ProviderOllama:
		return "llama3.1:latest"
	default:
		return "gpt-4o-mini"
	}
}

func DefaultSettings() *Settings {
	return &Settings{
		Provider:       ProviderOpenAI,
		Model:          DefaultModelFor(ProviderOpenAI),
		RequestTimeout: DefaultRequestTimeout.String(),
		ProbeMaxTokens: DefaultProbeMaxTokens,
		Server: ServerSettings{
			Listen:            DefaultServerListen,
			RequestsPerMinute: DefaultRequestsPerMinute,
			SessionTTL:        DefaultSessionTTL.String(),
		},
	}
}

func GenerateSettingsTemplate() string {
	return `# Jethabot Configuration
# Location: ~/.config/jethabot/settings.toml
# This file uses TOML format: https://toml.io
#
# API keys are never stored here. Put OPENAI_API_KEY (or OPENROUTER_API_KEY /
# ANTHROPIC_API_KEY) in your environment or a .env file to pre-fill the key
# prompt. Every key is validated before chatting.

# Provider: openai, openrouter, anthropic or ollama
provider = "openai"

# Chat model (also used for key validation). Leave unset to use the
# provider's default: gpt-4o-mini, openai/gpt-4o-mini,
# claude-3-5-haiku-latest or llama3.1:latest
# model = "gpt-4o-mini"

# Optional API base URL override
# base_url = "https://api.openai.com/v1"

# Upper bound for a single request to the provider (5s - 120s)
request_timeout = "45s"

# Output cap for the key validation request
probe_max_tokens = 5

[server]
# Address used by "jethabot -serve"
listen = "127.0.0.1:8089"

# Per-session request budget
requests_per_minute = 20

# Idle sessions are dropped after this long
session_ttl = "30m"
`
}
