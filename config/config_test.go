package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return path
}

func TestLoadFileDefaults(t *testing.T) {
	path := writeSettings(t, "")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Provider != ProviderOpenAI {
		t.Errorf("Provider = %q, want %q", cfg.Provider, ProviderOpenAI)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want gpt-4o-mini", cfg.Model)
	}
	if cfg.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, DefaultRequestTimeout)
	}
	if cfg.ProbeMaxTokens != DefaultProbeMaxTokens {
		t.Errorf("ProbeMaxTokens = %d, want %d", cfg.ProbeMaxTokens, DefaultProbeMaxTokens)
	}
	if cfg.KeyBindings == nil {
		t.Error("KeyBindings is nil")
	}
}

func TestLoadFileValues(t *testing.T) {
	path := writeSettings(t, `
provider = "anthropic"
request_timeout = "30s"
probe_max_tokens = 3

[server]
listen = "0.0.0.0:9000"
requests_per_minute = 5
session_ttl = "10m"
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Provider != ProviderAnthropic {
		t.Errorf("Provider = %q, want anthropic", cfg.Provider)
	}
	if cfg.Model != DefaultModelFor(ProviderAnthropic) {
		t.Errorf("Model = %q, want %q", cfg.Model, DefaultModelFor(ProviderAnthropic))
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
	if cfg.ProbeMaxTokens != 3 {
		t.Errorf("ProbeMaxTokens = %d, want 3", cfg.ProbeMaxTokens)
	}
	if cfg.ServerListen != "0.0.0.0:9000" {
		t.Errorf("ServerListen = %q", cfg.ServerListen)
	}
	if cfg.RequestsPerMinute != 5 {
		t.Errorf("RequestsPerMinute = %d, want 5", cfg.RequestsPerMinute)
	}
	if cfg.SessionTTL != 10*time.Minute {
		t.Errorf("SessionTTL = %v, want 10m", cfg.SessionTTL)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown provider", `provider = "gemini"`},
		{"bad timeout", `request_timeout = "soon"`},
		{"bad ttl", "[server]\nsession_ttl = \"forever\""},
		{"bad toml", `provider = `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFile(writeSettings(t, tt.body)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRequestTimeoutClamped(t *testing.T) {
	tests := []struct {
		name    string
		timeout string
		want    time.Duration
	}{
		{"below minimum", "1s", MinRequestTimeout},
		{"above maximum", "10m", MaxRequestTimeout},
		{"within range", "60s", 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFile(writeSettings(t, `request_timeout = "`+tt.timeout+`"`))
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			if cfg.RequestTimeout != tt.want {
				t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, tt.want)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("JETHABOT_PROVIDER", "OLLAMA")
	t.Setenv("JETHABOT_MODEL", "qwen2.5:7b")
	t.Setenv("JETHABOT_BASE_URL", "http://gpu-box:11434")
	t.Setenv("JETHABOT_TIMEOUT", "20s")

	cfg, err := LoadFile(writeSettings(t, `provider = "openai"`))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Provider != ProviderOllama {
		t.Errorf("Provider = %q, want ollama", cfg.Provider)
	}
	if cfg.Model != "qwen2.5:7b" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.BaseURL != "http://gpu-box:11434" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 20*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.RequiresKey() {
		t.Error("ollama should not require a key")
	}
}

func TestProviderOverrideDropsFileModel(t *testing.T) {
	t.Setenv("JETHABOT_PROVIDER", "anthropic")
	t.Setenv("JETHABOT_MODEL", "")

	cfg, err := LoadFile(writeSettings(t, "provider = \"openai\"\nmodel = \"gpt-4o-mini\"\n"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Model != DefaultModelFor(ProviderAnthropic) {
		t.Errorf("Model = %q, want %q", cfg.Model, DefaultModelFor(ProviderAnthropic))
	}

	// same provider keeps the file's model
	t.Setenv("JETHABOT_PROVIDER", "openai")
	cfg, err = LoadFile(writeSettings(t, "provider = \"openai\"\nmodel = \"gpt-4o\"\n"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("Model = %q, want gpt-4o", cfg.Model)
	}
}

func TestTemplateLeavesModelToProvider(t *testing.T) {
	t.Setenv("JETHABOT_PROVIDER", "")
	t.Setenv("JETHABOT_MODEL", "")

	body := strings.Replace(GenerateSettingsTemplate(), `provider = "openai"`, `provider = "ollama"`, 1)
	cfg, err := LoadFile(writeSettings(t, body))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Model != DefaultModelFor(ProviderOllama) {
		t.Errorf("Model = %q, want %q", cfg.Model, DefaultModelFor(ProviderOllama))
	}
}

func TestDefaultCredential(t *testing.T) {
	tests := []struct {
		provider string
		envVar   string
	}{
		{ProviderOpenAI, "OPENAI_API_KEY"},
		{ProviderOpenRouter, "OPENROUTER_API_KEY"},
		{ProviderAnthropic, "ANTHROPIC_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			t.Setenv(tt.envVar, "  sk-from-env  ")
			cfg := &Config{Provider: tt.provider}

			if got := cfg.CredentialEnvVar(); got != tt.envVar {
				t.Errorf("CredentialEnvVar() = %q, want %q", got, tt.envVar)
			}
			if got := cfg.DefaultCredential(); got != "sk-from-env" {
				t.Errorf("DefaultCredential() = %q, want sk-from-env", got)
			}
		})
	}

	cfg := &Config{Provider: ProviderOllama}
	if got := cfg.DefaultCredential(); got != "" {
		t.Errorf("ollama DefaultCredential() = %q, want empty", got)
	}
}

func TestLoadCreatesTemplates(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JETHABOT_CONFIG_DIR", dir)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("Provider = %q", cfg.Provider)
	}

	for _, name := range []string{"settings.toml", "keybindings.toml"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("%s not created: %v", name, err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("%s perms = %o, want 600", name, perm)
		}
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/jetha")

	if got := ExpandPath("~/shop"); got != filepath.Clean("/home/jetha/shop") {
		t.Errorf("ExpandPath(~/shop) = %q", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(\"\") = %q", got)
	}
}
