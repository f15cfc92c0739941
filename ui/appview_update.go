package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"jethabot/config"
	appmodel "jethabot/model"
)

const flashInterval = 300 * time.Millisecond

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		widthChanged := a.width != msg.Width
		a.width = msg.Width
		a.height = msg.Height

		// Reserve space for title (1 line), separator (1 line), textarea (3 lines), and status bar (1 line)
		a.viewport.Width = a.width
		a.viewport.Height = max(a.height-6, 1)
		a.textarea.SetWidth(a.width)
		a.keyInput.Width = a.gateInputWidth()

		a.ready = true
		a.updateViewportContent(true)

		// Rendered markdown depends on the width
		if widthChanged && a.screen == screenChat {
			return a, a.renderAllAsync()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.probing && !a.waiting {
			return a, nil
		}
		var cmd tea.Cmd
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		if a.waiting {
			a.updateViewportContent(true)
		}
		return a, cmd

	case probeResultMsg:
		return a.handleProbeResult(msg)

	case credentialCommittedMsg:
		return a.handleCredentialCommitted(msg)

	case replyMsg:
		return a.handleReply(msg)

	case markdownRenderedMsg:
		if msg.Generation != a.renderedGen {
			return a, nil
		}
		a.rendered[msg.Index] = msg.Rendered
		last := len(a.dataModel.Session.Snapshot().Display) - 1
		a.updateViewportContent(msg.Index == last)
		return a, nil

	case flashTickMsg:
		if a.highlightFlashCount > 0 && a.highlightFlashCount < 6 {
			a.highlightFlashCount++
			a.updateViewportContent(false)
			return a, tea.Tick(flashInterval, func(time.Time) tea.Msg {
				return flashTickMsg{}
			})
		}
		a.highlightedMessageIdx = -1
		a.highlightFlashCount = 0
		a.updateViewportContent(false)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Cursor blink and other component messages
	var cmd tea.Cmd
	switch {
	case a.screen == screenGate:
		a.keyInput, cmd = a.keyInput.Update(msg)
	case a.showSuggestions && a.suggestionFilterMode:
		a.suggestionFilterInput, cmd = a.suggestionFilterInput.Update(msg)
	case !a.waiting:
		a.textarea, cmd = a.textarea.Update(msg)
	}
	return a, cmd
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kb := a.dataModel.Config.KeyBindings

	// PRIORITY 0: Always-global shortcuts
	switch msg.String() {
	case "ctrl+c", kb.GetActionKey("quit"):
		config.Debugf("[UI] Quit requested")
		a.dataModel.Quitting = true
		return a, tea.Quit
	}

	if a.showAcknowledgeModal {
		switch msg.String() {
		case "enter", "esc":
			a.showAcknowledgeModal = false
		}
		return a, nil
	}

	if a.showHelp {
		switch msg.String() {
		case "esc", kb.GetActionKey("help"):
			a.showHelp = false
		}
		return a, nil
	}

	if a.showAbout {
		switch msg.String() {
		case "esc", kb.GetActionKey("about"):
			a.showAbout = false
		}
		return a, nil
	}

	switch msg.String() {
	case kb.GetActionKey("help"):
		a.showHelp = true
		return a, nil
	case kb.GetActionKey("about"):
		a.showAbout = true
		return a, nil
	}

	if a.screen == screenGate {
		return a.updateGate(msg)
	}

	if a.showSuggestions {
		var cmd tea.Cmd
		a, cmd = a.handleSuggestionsUpdate(msg)
		return a, cmd
	}

	a.clearStatus()

	switch msg.String() {
	case "enter":
		return a.submit()

	case kb.GetActionKey("clear_chat"):
		a.dataModel.Session.Clear()
		// waiting stays set until the cancelled exchange reports back
		a.pending = ""
		a.resetRenderCache()
		a.updateViewportContent(true)
		a.setStatus(statusInfo, "Chat cleared")
		return a, nil

	case kb.GetActionKey("change_key"):
		config.Debugf("[UI] Changing API key")
		a.enterGate()
		return a, textinput.Blink

	case kb.GetActionKey("suggestions"):
		a.openSuggestions()
		return a, nil

	case kb.GetActionKey("yank_last_response"):
		reply, ok := a.dataModel.Session.Snapshot().LastReply()
		if !ok {
			a.setStatus(statusInfo, "Nothing to copy yet")
			return a, nil
		}
		a.copyToClipboard(reply.Content, "Copied last reply")
		return a, nil

	case kb.GetActionKey("yank_conversation"):
		snap := a.dataModel.Session.Snapshot()
		if len(snap.Display) == 0 {
			a.setStatus(statusInfo, "Nothing to copy yet")
			return a, nil
		}
		a.copyToClipboard(transcriptText(snap.Display), "Copied conversation")
		return a, nil

	case kb.GetActionKey("clear_input"):
		if !a.waiting {
			a.textarea.Reset()
		}
		return a, nil

	case kb.GetActionKey("scroll_down"), kb.GetActionKey("scroll_down_arrow"):
		a.viewport.ScrollDown(1)
		return a, nil

	case kb.GetActionKey("scroll_up"), kb.GetActionKey("scroll_up_arrow"):
		a.viewport.ScrollUp(1)
		return a, nil

	case kb.GetActionKey("half_page_down"):
		a.viewport.HalfPageDown()
		return a, nil

	case kb.GetActionKey("half_page_up"):
		a.viewport.HalfPageUp()
		return a, nil

	case kb.GetActionKey("page_down"), "pgdown":
		a.viewport.PageDown()
		return a, nil

	case kb.GetActionKey("page_up"), "pgup":
		a.viewport.PageUp()
		return a, nil

	case kb.GetActionKey("scroll_to_top"):
		a.viewport.GotoTop()
		return a, nil

	case kb.GetActionKey("scroll_to_bottom"):
		a.viewport.GotoBottom()
		return a, nil
	}

	if a.waiting {
		return a, nil
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

// submit starts an exchange with the textarea content. Input stays
// disabled until the reply arrives.
func (a AppView) submit() (tea.Model, tea.Cmd) {
	if a.waiting {
		return a, nil
	}

	text := strings.TrimSpace(a.textarea.Value())
	a.textarea.Reset()
	if text == "" {
		return a, nil
	}

	a.waiting = true
	a.pending = text
	a.textarea.Blur()
	a.updateViewportContent(true)

	return a, tea.Batch(
		a.dataModel.SubmitCmd(text),
		a.loadingSpinner.Tick,
	)
}

func (a AppView) handleReply(msg replyMsg) (tea.Model, tea.Cmd) {
	a.waiting = false
	a.pending = ""

	if a.screen != screenChat {
		return a, nil
	}
	a.textarea.Focus()

	kb := a.dataModel.Config.KeyBindings

	switch {
	case msg.Err == nil:

	case errors.Is(msg.Err, appmodel.ErrStale):
		a.updateViewportContent(true)
		return a, textarea.Blink

	case errors.Is(msg.Err, appmodel.ErrNotValidated):
		a.enterGate()
		a.setStatus(statusError, appmodel.MsgKeyEmpty)
		return a, textinput.Blink

	case errors.Is(msg.Err, appmodel.ErrBusy), errors.Is(msg.Err, appmodel.ErrEmptyMessage):
		a.setStatus(statusInfo, msg.Err.Error())
		a.updateViewportContent(true)
		return a, textarea.Blink

	case appmodel.KindOf(msg.Err) == appmodel.KindCredentialInvalid:
		// the session already dropped the key; only a new one unlocks chat
		a.enterGate()
		a.setStatus(statusError, appmodel.MsgKeyInvalid)
		return a, textinput.Blink

	default:
		switch appmodel.KindOf(msg.Err) {
		case appmodel.KindCredentialNoQuota:
			a.setStatus(statusError, fmt.Sprintf("%s Press %s to change it.", appmodel.MsgKeyNoQuota, kb.DisplayActionKey("change_key")))
		default:
			a.setStatus(statusError, "Reply failed: "+appmodel.AsProviderError(msg.Err).Detail)
		}
	}

	snap := a.dataModel.Session.Snapshot()
	last := len(snap.Display) - 1
	cmds := []tea.Cmd{textarea.Blink}

	if last >= 0 && snap.Display[last].Role == appmodel.RoleAssistant {
		a.highlightedMessageIdx = last
		a.highlightFlashCount = 1
		cmds = append(cmds, tea.Tick(flashInterval, func(time.Time) tea.Msg {
			return flashTickMsg{}
		}))
		if !snap.Display[last].Failed {
			cmds = append(cmds, a.renderMarkdownAsync(last, snap.Generation, snap.Display[last].Content))
		}
	}

	a.updateViewportContent(true)
	return a, tea.Batch(cmds...)
}

func (a *AppView) copyToClipboard(text, done string) {
	if err := clipboard.WriteAll(text); err != nil {
		config.Debugf("[UI] Clipboard write failed: %v", err)
		a.showAcknowledge("Clipboard Unavailable", fmt.Sprintf("Could not copy to the clipboard:\n%v", err), ModalTypeWarning)
		return
	}
	a.setStatus(statusSuccess, done)
}
