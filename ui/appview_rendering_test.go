package ui

import (
	"strings"
	"testing"
	"time"

	"jethabot/config"
	appmodel "jethabot/model"
)

func TestFilterSuggestions(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		want   string
		count  int
	}{
		{"empty filter keeps all", "", appmodel.Suggestions[0], len(appmodel.Suggestions)},
		{"exact word", "kahan", "Daya kahan hai?", 1},
		{"fuzzy", "gadelec", "Gada Electronics mein kya hai?", 1},
		{"no match", "zzzz", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterSuggestions(tt.filter, appmodel.Suggestions)
			if len(got) != tt.count {
				t.Fatalf("Expected %d matches, got %d: %v", tt.count, len(got), got)
			}
			if tt.count > 0 && got[0] != tt.want {
				t.Errorf("Expected first match %q, got %q", tt.want, got[0])
			}
		})
	}
}

func TestStripANSI(t *testing.T) {
	in := "\x1b[32;1mJethalal\x1b[0m says \x1b[31mNonsense!\x1b[0m"
	if got := stripANSI(in); got != "Jethalal says Nonsense!" {
		t.Errorf("Expected plain text, got %q", got)
	}
}

func TestWordWrapWithIndent(t *testing.T) {
	got := wordWrapWithIndent("chai piyo biscuit khao", "> ", 12)
	want := "> chai piyo\n  biscuit\n  khao\n"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	if got := wordWrapWithIndent("", "> ", 12); got != "> " {
		t.Errorf("Expected bare prefix for empty text, got %q", got)
	}
}

func TestFrameCodeBlocks(t *testing.T) {
	in := "before\n┃ x := 1\n┃ y := 2\nafter"
	out := frameCodeBlocks(in, 30)

	if strings.Contains(out, "┃") {
		t.Error("Expected code block prefixes to be stripped")
	}
	if !strings.Contains(out, "[code]") {
		t.Error("Expected framed code label")
	}
	for _, want := range []string{"before", "x := 1", "y := 2", "after"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to keep %q", want)
		}
	}
}

func TestStripCodeBlockPrefix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"┃ code", "code"},
		{"┃code", "code"},
		{"┃", ""},
		{"no frame", "no frame"},
	}
	for _, tt := range tests {
		if got := stripCodeBlockPrefix(tt.in); got != tt.want {
			t.Errorf("stripCodeBlockPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderMarkdownKeepsText(t *testing.T) {
	out := stripANSI(renderMarkdown("**Arre** Daya! See [shop](https://gada.example)", 80))

	if !strings.Contains(out, "Arre") || !strings.Contains(out, "Daya!") {
		t.Errorf("Expected rendered text to keep the words, got %q", out)
	}
	if !strings.Contains(out, "https://gada.example") {
		t.Errorf("Expected link to render as its URL, got %q", out)
	}
}

func TestTranscriptText(t *testing.T) {
	ts := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	turns := []appmodel.Turn{
		{Role: appmodel.RoleUser, Content: "Kaise ho?", Timestamp: ts},
		{Role: appmodel.RoleAssistant, Content: "First class!", Timestamp: ts},
	}

	want := "[09:30] You:\nKaise ho?\n\n[09:30] Jethalal:\nFirst class!\n\n"
	if got := transcriptText(turns); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("Expected left padding, got %q", got)
	}
	if got := centerText("toolong", 3); got != "toolong" {
		t.Errorf("Expected text wider than width to pass through, got %q", got)
	}
}

func TestCredentialHelpPerProvider(t *testing.T) {
	tests := map[string]string{
		config.ProviderOpenAI:     "platform.openai.com",
		config.ProviderOpenRouter: "openrouter.ai/keys",
		config.ProviderAnthropic:  "console.anthropic.com",
		config.ProviderOllama:     "ollama serve",
	}
	for provider, want := range tests {
		help := strings.Join(credentialHelp(provider), "\n")
		if !strings.Contains(help, want) {
			t.Errorf("Expected %s help to mention %q", provider, want)
		}
	}
}

func TestFormatUserMessage(t *testing.T) {
	out := stripANSI(formatUserMessage("", "[09:30]", "You", "line one\nline two"))
	want := "┃ [09:30] You\n┃ line one\n┃ line two\n\n"
	if out != want {
		t.Errorf("Expected %q, got %q", want, out)
	}
}
