package model

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"jethabot/config"
)

// ProbeCmd validates candidate without touching the gate's state
func (m *Model) ProbeCmd(candidate string) tea.Cmd {
	gate := m.Gate
	return func() tea.Msg {
		res := gate.Probe(context.Background(), candidate)
		return ProbeResultMsg{Candidate: candidate, Result: res}
	}
}

// CommitCredentialCmd stores a successfully probed credential
func (m *Model) CommitCredentialCmd(candidate string, res ProbeResult) tea.Cmd {
	gate := m.Gate
	return func() tea.Msg {
		return CredentialCommittedMsg{Err: gate.SetValidated(candidate, res)}
	}
}

// SubmitCmd runs one exchange. The UI keeps input disabled until the
// matching ReplyMsg arrives, so TrySubmit never has to wait.
func (m *Model) SubmitCmd(text string) tea.Cmd {
	session := m.Session
	return func() tea.Msg {
		reply, err := session.TrySubmit(context.Background(), text)
		if err != nil {
			config.Debugf("[Model] Submit returned: %v", err)
		}
		return ReplyMsg{Text: reply, Err: err}
	}
}
