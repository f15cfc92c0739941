package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jethabot/config"
	appmodel "jethabot/model"
)

// newKeyInput creates the masked credential input, pre-filled with the
// key found in the environment
func newKeyInput(cfg *config.Config) textinput.Model {
	input := textinput.New()
	input.Width = 50
	input.CharLimit = 256
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'

	switch cfg.Provider {
	case config.ProviderAnthropic:
		input.Placeholder = "sk-ant-..."
	case config.ProviderOpenRouter:
		input.Placeholder = "sk-or-..."
	case config.ProviderOllama:
		input.Placeholder = "(optional) press Enter to connect"
	default:
		input.Placeholder = "sk-..."
	}

	input.SetValue(cfg.DefaultCredential())
	input.Focus()
	return input
}

func (a AppView) gateInputWidth() int {
	w := 50
	if a.width > 0 && a.width < w+14 {
		w = max(a.width-14, 10)
	}
	return w
}

// providerTitle is the human name of a provider ID
func providerTitle(provider string) string {
	switch provider {
	case config.ProviderOpenRouter:
		return "OpenRouter"
	case config.ProviderAnthropic:
		return "Anthropic"
	case config.ProviderOllama:
		return "Ollama"
	default:
		return "OpenAI"
	}
}

// credentialHelp returns the "How to get API Key" steps for a provider
func credentialHelp(provider string) []string {
	switch provider {
	case config.ProviderOpenRouter:
		return []string{
			"1. Go to https://openrouter.ai/keys",
			"2. Sign in to your OpenRouter account",
			`3. Click "Create Key"`,
			"4. Copy the key and paste it here",
			"",
			"Note: You need to have credits in your OpenRouter account.",
		}
	case config.ProviderAnthropic:
		return []string{
			"1. Go to https://console.anthropic.com/settings/keys",
			"2. Sign in to your Anthropic account",
			`3. Click "Create Key"`,
			"4. Copy the key and paste it here",
			"",
			"Note: You need to have credits in your Anthropic account.",
		}
	case config.ProviderOllama:
		return []string{
			"1. Start Ollama locally (ollama serve)",
			"2. Pull the configured model (ollama pull <model>)",
			"3. Leave the key empty unless your server sits behind a proxy",
			"4. Press Enter to connect",
		}
	default:
		return []string{
			"1. Go to https://platform.openai.com/api-keys",
			"2. Sign in to your OpenAI account",
			`3. Click "Create new secret key"`,
			"4. Copy the key and paste it here",
			"",
			"Note: You need to have credits in your OpenAI account.",
		}
	}
}

func (a AppView) updateGate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kb := a.dataModel.Config.KeyBindings

	switch msg.String() {
	case "enter":
		if a.probing || a.committing {
			return a, nil
		}
		candidate := strings.TrimSpace(a.keyInput.Value())
		if candidate == "" && a.dataModel.Config.RequiresKey() {
			a.setStatus(statusInfo, appmodel.MsgKeyEmpty)
			return a, nil
		}
		config.Debugf("[UI] Validating credential for %s", a.dataModel.Config.Provider)
		a.probing = true
		a.setStatus(statusNone, "")
		return a, tea.Batch(a.dataModel.ProbeCmd(candidate), a.loadingSpinner.Tick)

	case kb.GetActionKey("clear_input"):
		if !a.probing && !a.committing {
			a.keyInput.SetValue("")
			a.clearStatus()
		}
		return a, nil

	case "esc":
		return a, tea.Quit
	}

	if a.probing || a.committing {
		return a, nil
	}

	var cmd tea.Cmd
	a.keyInput, cmd = a.keyInput.Update(msg)
	return a, cmd
}

func (a AppView) handleProbeResult(msg probeResultMsg) (tea.Model, tea.Cmd) {
	a.probing = false

	if !msg.Result.Valid {
		config.Debugf("[UI] Credential rejected: %s", msg.Result.Reason())
		a.setStatus(statusError, msg.Result.Message)
		return a, nil
	}

	a.committing = true
	a.setStatus(statusSuccess, msg.Result.Message)
	return a, a.dataModel.CommitCredentialCmd(msg.Candidate, msg.Result)
}

func (a AppView) handleCredentialCommitted(msg credentialCommittedMsg) (tea.Model, tea.Cmd) {
	a.committing = false

	if msg.Err != nil {
		a.setStatus(statusError, fmt.Sprintf("Could not activate the key: %v", msg.Err))
		return a, nil
	}

	a.clearStatus()
	a.enterChat()
	return a, textarea.Blink
}

func (a AppView) viewGate() string {
	var sb strings.Builder
	provider := a.dataModel.Config.Provider
	name := providerTitle(provider)

	sb.WriteString("\n\n")
	sb.WriteString(centerText(headerStyle.Render("🏪 Jethalal Bot"), a.width))
	sb.WriteString("\n\n")

	sub := fmt.Sprintf("Please enter your %s API key to continue", name)
	if !a.dataModel.Config.RequiresKey() {
		sub = fmt.Sprintf("Connect to %s to continue", name)
	}
	sb.WriteString(centerText(textStyle.Render(sub), a.width))
	sb.WriteString("\n\n\n")

	sb.WriteString(centerText(TitleStyle.Render(fmt.Sprintf("🔑 %s API Key", name)), a.width))
	sb.WriteString("\n")
	sb.WriteString(centerText(textStyle.Render("To chat with Jethalal, you need to provide your API key."), a.width))
	sb.WriteString("\n\n")

	input := a.keyInput
	input.Width = a.gateInputWidth()
	sb.WriteString(centerText(inputStyle.Render(input.View()), a.width))
	sb.WriteString("\n\n")

	switch {
	case a.probing:
		sb.WriteString(centerText(textStyle.Render(a.loadingSpinner.View()+" Validating API key..."), a.width))
	case a.status != "":
		sb.WriteString(centerText(statusStyle(a.statusKind).Render(a.status), a.width))
	default:
		sb.WriteString("\n")
	}
	sb.WriteString("\n\n")

	kb := a.dataModel.Config.KeyBindings
	footer := FormatFooter(
		"Enter", "Validate Key",
		kb.DisplayActionKey("clear_input"), "Clear",
		kb.DisplayActionKey("help"), "Help",
		"Esc", "Quit",
	)
	sb.WriteString(centerText(footer, a.width))
	sb.WriteString("\n\n\n")

	sb.WriteString(centerText(TitleStyle.Render("ℹ️  How to get API Key"), a.width))
	sb.WriteString("\n\n")
	help := boxStyle.Render(textStyle.Render(strings.Join(credentialHelp(provider), "\n")))
	sb.WriteString(centerText(help, a.width))

	return sb.String()
}

// centerText pads every line of text to sit in the middle of width
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 1 {
		var sb strings.Builder
		for i, line := range lines {
			sb.WriteString(centerText(line, width))
			if i < len(lines)-1 {
				sb.WriteString("\n")
			}
		}
		return sb.String()
	}

	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}

	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}
