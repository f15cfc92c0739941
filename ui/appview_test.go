package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"jethabot/config"
	appmodel "jethabot/model"
	"jethabot/provider/testutil"
)

const goodKey = "sk-good"

func newTestApp(t *testing.T, mock *testutil.MockProvider) AppView {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")

	a := NewAppView(config.Default(), mock.Connector(goodKey), "test", "MIT")
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(AppView)
}

func press(t *testing.T, a AppView, msg tea.KeyMsg) (AppView, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	return m.(AppView), cmd
}

func enter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func alt(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

// unlock walks the gate with a key the mock accepts
func unlock(t *testing.T, a AppView) AppView {
	t.Helper()

	a.keyInput.SetValue(goodKey)
	a, _ = press(t, a, enter())
	if !a.probing {
		t.Fatal("Expected probe to start on Enter")
	}

	m, commit := a.Update(a.dataModel.ProbeCmd(goodKey)())
	a = m.(AppView)
	if commit == nil {
		t.Fatal("Expected a commit command after a valid probe")
	}

	m, _ = a.Update(commit())
	a = m.(AppView)
	if a.screen != screenChat {
		t.Fatalf("Expected chat screen, got %v (status %q)", a.screen, a.status)
	}
	return a
}

// send submits text and delivers the reply without running timer commands
func send(t *testing.T, a AppView, text string) AppView {
	t.Helper()

	a.textarea.SetValue(text)
	a, _ = press(t, a, enter())
	if !a.waiting {
		t.Fatal("Expected the view to wait for a reply")
	}

	m, _ := a.Update(a.dataModel.SubmitCmd(text)())
	return m.(AppView)
}

func TestGateRejectsEmptyKeyWithoutProbe(t *testing.T) {
	mock := testutil.NewMockProvider("gpt-4o-mini")
	a := newTestApp(t, mock)

	a, cmd := press(t, a, enter())

	if cmd != nil {
		t.Error("Expected no command for an empty key")
	}
	if a.probing {
		t.Error("Expected no probe for an empty key")
	}
	if a.status != appmodel.MsgKeyEmpty {
		t.Errorf("Expected status %q, got %q", appmodel.MsgKeyEmpty, a.status)
	}
	if mock.Calls() != 0 {
		t.Errorf("Expected 0 provider calls, got %d", mock.Calls())
	}
}

func TestGateShowsInvalidKey(t *testing.T) {
	mock := testutil.NewMockProvider("gpt-4o-mini")
	a := newTestApp(t, mock)

	a.keyInput.SetValue("sk-bad")
	a, _ = press(t, a, enter())

	m, cmd := a.Update(a.dataModel.ProbeCmd("sk-bad")())
	a = m.(AppView)

	if cmd != nil {
		t.Error("Expected no commit after a rejected probe")
	}
	if a.screen != screenGate {
		t.Error("Expected to stay on the gate")
	}
	if a.status != appmodel.MsgKeyInvalid {
		t.Errorf("Expected status %q, got %q", appmodel.MsgKeyInvalid, a.status)
	}
	if a.dataModel.Gate.Status() != appmodel.Unvalidated {
		t.Error("Expected gate to stay unvalidated")
	}
	if !strings.Contains(a.View(), appmodel.MsgKeyInvalid) {
		t.Error("Expected the gate view to show the rejection")
	}
}

func TestGateViewShowsHowTo(t *testing.T) {
	a := newTestApp(t, testutil.NewMockProvider("gpt-4o-mini"))

	view := a.View()
	for _, want := range []string{"How to get API Key", "platform.openai.com/api-keys", "OpenAI API Key"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected gate view to contain %q", want)
		}
	}
}

func TestGateUnlocksChat(t *testing.T) {
	a := unlock(t, newTestApp(t, testutil.NewMockProvider("gpt-4o-mini")))

	if a.dataModel.Gate.Status() != appmodel.Validated {
		t.Error("Expected gate to be validated")
	}
	if !strings.Contains(a.View(), "Jethalal Bot") {
		t.Error("Expected chat title in view")
	}
	if !strings.Contains(a.viewport.View(), emptyChatText) {
		t.Error("Expected empty chat placeholder")
	}
}

func TestSubmitShowsReply(t *testing.T) {
	mock := testutil.NewMockProvider("gpt-4o-mini")
	a := unlock(t, newTestApp(t, mock))

	mock.CompleteFunc = func(_ context.Context, _ appmodel.CompletionRequest) (string, error) {
		return testutil.Reply("greet", "Arre Daya! Gada Electronics jaa raha hoon!"), nil
	}

	a = send(t, a, "Daya kahan hai?")

	if a.waiting || a.pending != "" {
		t.Error("Expected the view to stop waiting")
	}
	if !a.textarea.Focused() {
		t.Error("Expected input to be re-enabled")
	}

	snap := a.dataModel.Session.Snapshot()
	if len(snap.Display) != 2 {
		t.Fatalf("Expected 2 display turns, got %d", len(snap.Display))
	}

	content := a.viewport.View()
	if !strings.Contains(content, "Daya kahan hai?") {
		t.Error("Expected user turn in viewport")
	}
	if !strings.Contains(content, "Arre Daya!") {
		t.Error("Expected reply content in viewport")
	}
	if strings.Contains(content, `"step"`) {
		t.Error("Expected the JSON envelope to stay hidden")
	}
}

func TestInputDisabledWhileWaiting(t *testing.T) {
	mock := testutil.NewMockProvider("gpt-4o-mini")
	a := unlock(t, newTestApp(t, mock))

	a.textarea.SetValue("pehla")
	a, _ = press(t, a, enter())
	if !a.waiting {
		t.Fatal("Expected waiting state")
	}
	if a.textarea.Focused() {
		t.Error("Expected textarea to be blurred while waiting")
	}
	if !strings.Contains(a.viewport.View(), appmodel.ThinkingText) {
		t.Error("Expected thinking text while waiting")
	}

	a.textarea.SetValue("doosra")
	a, cmd := press(t, a, enter())
	if cmd != nil {
		t.Error("Expected Enter to be ignored while waiting")
	}
	if a.pending != "pehla" {
		t.Errorf("Expected pending to stay %q, got %q", "pehla", a.pending)
	}
}

func TestEmptySubmitIsNoop(t *testing.T) {
	mock := testutil.NewMockProvider("gpt-4o-mini")
	a := unlock(t, newTestApp(t, mock))
	calls := mock.Calls()

	a.textarea.SetValue("   ")
	a, cmd := press(t, a, enter())

	if cmd != nil || a.waiting {
		t.Error("Expected whitespace input to do nothing")
	}
	if mock.Calls() != calls {
		t.Error("Expected no provider call")
	}
}

func TestFailedReplyShowsStatus(t *testing.T) {
	mock := testutil.NewMockProvider("gpt-4o-mini")
	a := unlock(t, newTestApp(t, mock))

	mock.CompleteFunc = func(_ context.Context, _ appmodel.CompletionRequest) (string, error) {
		return "", testutil.NoQuotaError()
	}

	a = send(t, a, "Hello")

	if !strings.Contains(a.status, appmodel.MsgKeyNoQuota) {
		t.Errorf("Expected no quota status, got %q", a.status)
	}
	if a.screen != screenChat {
		t.Error("Expected to stay in chat after a quota failure")
	}
	reply, ok := a.dataModel.Session.Snapshot().LastReply()
	if !ok || !reply.Failed {
		t.Error("Expected a failed reply turn")
	}
}

func TestRevokedKeyReturnsToGate(t *testing.T) {
	mock := testutil.NewMockProvider("gpt-4o-mini")
	a := unlock(t, newTestApp(t, mock))

	mock.CompleteFunc = func(_ context.Context, _ appmodel.CompletionRequest) (string, error) {
		return "", testutil.InvalidKeyError()
	}

	a = send(t, a, "Hello")

	if a.screen != screenGate {
		t.Fatal("Expected the gate screen after the key was rejected")
	}
	if a.dataModel.Gate.Status() != appmodel.Unvalidated {
		t.Error("Expected the gate to be locked")
	}
	if a.status != appmodel.MsgKeyInvalid {
		t.Errorf("Expected status %q, got %q", appmodel.MsgKeyInvalid, a.status)
	}
	if a.keyInput.Value() != "" {
		t.Error("Expected an empty key input")
	}
}

func TestClearChat(t *testing.T) {
	a := unlock(t, newTestApp(t, testutil.NewMockProvider("gpt-4o-mini")))
	a = send(t, a, "Jethalal, kaise ho?")

	a, _ = press(t, a, alt('l'))

	snap := a.dataModel.Session.Snapshot()
	if len(snap.Display) != 0 {
		t.Errorf("Expected empty display transcript, got %d turns", len(snap.Display))
	}
	if len(snap.Protocol) != 1 || snap.Protocol[0].Role != appmodel.RoleSystem {
		t.Error("Expected protocol transcript to hold only the persona")
	}
	if a.status != "Chat cleared" {
		t.Errorf("Expected clear status, got %q", a.status)
	}
	if a.dataModel.Gate.Status() != appmodel.Validated {
		t.Error("Expected clear to keep the credential")
	}
}

func TestStaleMarkdownIgnored(t *testing.T) {
	a := unlock(t, newTestApp(t, testutil.NewMockProvider("gpt-4o-mini")))
	a = send(t, a, "Hello")
	gen := a.renderedGen

	a, _ = press(t, a, alt('l'))

	m, _ := a.Update(markdownRenderedMsg{Index: 1, Generation: gen, Rendered: "stale"})
	a = m.(AppView)

	if _, ok := a.rendered[1]; ok {
		t.Error("Expected render for a cleared transcript to be dropped")
	}
}

func TestChangeKeyReturnsToGate(t *testing.T) {
	a := unlock(t, newTestApp(t, testutil.NewMockProvider("gpt-4o-mini")))
	a = send(t, a, "Hello")

	a, _ = press(t, a, alt('r'))

	if a.screen != screenGate {
		t.Error("Expected gate screen")
	}
	if a.dataModel.Gate.Status() != appmodel.Unvalidated {
		t.Error("Expected gate to be reset")
	}
	if len(a.dataModel.Session.Snapshot().Display) != 0 {
		t.Error("Expected chat to be cleared")
	}
	if a.keyInput.Value() != "" {
		t.Error("Expected an empty key input")
	}
}

func TestSuggestionPicker(t *testing.T) {
	a := unlock(t, newTestApp(t, testutil.NewMockProvider("gpt-4o-mini")))

	a, _ = press(t, a, alt('t'))
	if !a.showSuggestions {
		t.Fatal("Expected suggestions to open")
	}
	if !strings.Contains(a.View(), "Try asking") {
		t.Error("Expected suggestion picker in view")
	}

	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	a, _ = press(t, a, enter())

	if a.showSuggestions {
		t.Error("Expected picker to close")
	}
	if got := a.textarea.Value(); got != appmodel.Suggestions[1] {
		t.Errorf("Expected %q in input, got %q", appmodel.Suggestions[1], got)
	}
	if a.waiting {
		t.Error("Expected picking to fill the input without sending")
	}
}

func TestHelpToggle(t *testing.T) {
	a := newTestApp(t, testutil.NewMockProvider("gpt-4o-mini"))

	a, _ = press(t, a, alt('h'))
	if !strings.Contains(a.View(), "Keyboard Shortcuts") {
		t.Error("Expected help modal")
	}

	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.showHelp {
		t.Error("Expected Esc to close help")
	}
}

func TestAboutShowsProfile(t *testing.T) {
	a := newTestApp(t, testutil.NewMockProvider("gpt-4o-mini"))

	a, _ = press(t, a, alt('a'))
	view := a.View()
	for _, fact := range appmodel.PersonaProfile {
		if !strings.Contains(view, fact.Value) {
			t.Errorf("Expected about panel to show %q", fact.Value)
		}
	}
}

func TestHelpListsRebindableActions(t *testing.T) {
	a := newTestApp(t, testutil.NewMockProvider("gpt-4o-mini"))
	a.dataModel.Config.KeyBindings.Actions = map[string]string{"clear_chat": "ctrl+l"}

	left, _ := a.helpSections()
	if got := left[0].rows[0]; got.key != "Ctrl+L" || got.label != "Clear chat" {
		t.Errorf("Expected overridden clear_chat row, got %+v", got)
	}
}

func TestErrorModalQuits(t *testing.T) {
	m := NewErrorModal("Configuration Error", "unknown provider \"foo\"")

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if !strings.Contains(updated.View(), "unknown provider") {
		t.Error("Expected the modal to show the message")
	}

	_, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Expected Enter to quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected a quit message")
	}
}
