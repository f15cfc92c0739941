package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"jethabot/config"
	appmodel "jethabot/model"
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model

	screen screen

	// Credential gate
	keyInput   textinput.Model
	probing    bool
	committing bool

	// Chat components
	viewport viewport.Model
	textarea textarea.Model

	// Window state
	width  int
	height int
	ready  bool

	// Exchange in flight; pending is shown until the session records it
	waiting bool
	pending string

	loadingSpinner spinner.Model

	// Rendered markdown per display index, valid for renderedGen only
	rendered    map[int]string
	renderedGen uint64

	// Flash highlight for a freshly arrived reply
	highlightedMessageIdx int
	highlightFlashCount   int

	status     string
	statusKind statusKind

	// Modals
	showHelp  bool
	showAbout bool

	showSuggestions       bool
	suggestionFilterMode  bool
	suggestionFilterInput textinput.Model
	filteredSuggestions   []string
	selectedSuggestionIdx int

	showAcknowledgeModal  bool
	acknowledgeModalTitle string
	acknowledgeModalMsg   string
	acknowledgeModalType  ModalType
}

// NewAppView builds the UI around a fresh data model. The app starts on the
// credential gate.
func NewAppView(cfg *config.Config, connect appmodel.Connector, version, license string) AppView {
	dataModel := appmodel.NewModel(cfg, connect, version, license)

	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Alt+Enter for newline, Enter alone sends (handled separately)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	vp := viewport.New(0, 0)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = AssistantStyle

	suggestionFilterInput := textinput.New()
	suggestionFilterInput.Prompt = "Filter: "
	suggestionFilterInput.CharLimit = 64

	return AppView{
		dataModel:             dataModel,
		screen:                screenGate,
		keyInput:              newKeyInput(cfg),
		textarea:              ta,
		viewport:              vp,
		loadingSpinner:        sp,
		rendered:              map[int]string{},
		highlightedMessageIdx: -1,
		suggestionFilterInput: suggestionFilterInput,
		filteredSuggestions:   appmodel.Suggestions,
	}
}

func (a AppView) Init() tea.Cmd {
	return textinput.Blink
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading Jethalal Bot..."
	}

	// Modal rendering order (top to bottom layers)
	if a.showAcknowledgeModal {
		return RenderAcknowledgeModal(
			a.acknowledgeModalTitle,
			a.acknowledgeModalMsg,
			a.acknowledgeModalType,
			a.width,
			a.height,
		)
	}

	if a.showHelp {
		return a.renderHelpModal(a.width, a.height)
	}

	if a.showAbout {
		return renderAboutModal(a, a.width, a.height, a.dataModel.Version, a.dataModel.License)
	}

	if a.screen == screenGate {
		return a.viewGate()
	}

	if a.showSuggestions {
		return a.renderSuggestions(a.width, a.height)
	}

	// Title bar - "Jethalal Bot - provider/model"
	botText := AssistantStyle.Render("🏪 Jethalal Bot")
	modelText := TitleStyle.Render(fmt.Sprintf(" - %s", a.providerLabel()))
	tagline := UserStyle.Render(" - Gada Electronics ke Malik se Baat Karo!")
	title := truncateLine(botText+modelText+tagline, a.width)

	separator := ""

	viewportView := a.viewport.View()
	inputView := a.textarea.View()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		separator,
		viewportView,
		inputView,
		a.statusBar(),
	)
}

// providerLabel names the provider and model the chat runs against
func (a AppView) providerLabel() string {
	cfg := a.dataModel.Config
	if p, err := a.dataModel.Gate.Provider(); err == nil {
		return fmt.Sprintf("%s/%s", p.Name(), p.GetModel())
	}
	return fmt.Sprintf("%s/%s", cfg.Provider, cfg.Model)
}

// statusBar shows the transient status when set, the key hints otherwise
func (a AppView) statusBar() string {
	if a.status != "" {
		return truncateLine(statusStyle(a.statusKind).Render(a.status), a.width)
	}

	kb := a.dataModel.Config.KeyBindings
	descStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)
	parts := []string{
		fmt.Sprintf("%s %s", kb.DisplayActionKey("quit"), descStyle.Render("Quit")),
		fmt.Sprintf("%s %s", kb.DisplayActionKey("help"), descStyle.Render("Help")),
		fmt.Sprintf("%s %s", kb.DisplayActionKey("clear_chat"), descStyle.Render("Clear")),
		fmt.Sprintf("%s %s", kb.DisplayActionKey("change_key"), descStyle.Render("Change Key")),
		fmt.Sprintf("%s %s", kb.DisplayActionKey("suggestions"), descStyle.Render("Try asking")),
		fmt.Sprintf("Alt+Enter %s", descStyle.Render("New Line")),
		fmt.Sprintf("Enter %s", descStyle.Render("Send")),
		fmt.Sprintf("%s %s", kb.DisplayActionKey("yank_last_response"), descStyle.Render("Copy")),
	}
	return truncateLine(StatusStyle.Render(strings.Join(parts, "  ")), a.width)
}

// truncateLine cuts a styled single line to width cells
func truncateLine(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	plain := stripANSI(s)
	return runewidth.Truncate(plain, width, "…")
}

func (a *AppView) setStatus(kind statusKind, msg string) {
	a.statusKind = kind
	a.status = msg
}

func (a *AppView) clearStatus() {
	a.statusKind = statusNone
	a.status = ""
}

func (a *AppView) closeAllModals() {
	a.showHelp = false
	a.showAbout = false
	a.showSuggestions = false
	a.suggestionFilterMode = false
	a.suggestionFilterInput.SetValue("")
	a.suggestionFilterInput.Blur()
	a.filteredSuggestions = appmodel.Suggestions
	a.selectedSuggestionIdx = 0
	a.showAcknowledgeModal = false
}

func (a *AppView) showAcknowledge(title, msg string, kind ModalType) {
	a.showAcknowledgeModal = true
	a.acknowledgeModalTitle = title
	a.acknowledgeModalMsg = msg
	a.acknowledgeModalType = kind
}

// enterChat switches to the chat screen after a credential was committed
func (a *AppView) enterChat() {
	a.screen = screenChat
	a.keyInput.Blur()
	a.textarea.Focus()
	a.resetRenderCache()
	a.updateViewportContent(true)
}

// enterGate returns to the credential gate with an empty chat
func (a *AppView) enterGate() {
	a.dataModel.ChangeCredential()
	a.screen = screenGate
	a.closeAllModals()
	a.pending = ""
	a.textarea.Reset()
	a.textarea.Blur()
	a.keyInput = newKeyInput(a.dataModel.Config)
	a.keyInput.Width = a.gateInputWidth()
	a.resetRenderCache()
	a.clearStatus()
}

func (a *AppView) resetRenderCache() {
	a.rendered = map[int]string{}
	a.renderedGen = a.dataModel.Session.Snapshot().Generation
	a.highlightedMessageIdx = -1
	a.highlightFlashCount = 0
}
