package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

const (
	minModalWidth  = 20
	minModalHeight = 10
)

// ErrorModal reports a startup failure, such as an unreadable
// settings.toml, before the chat UI exists. Any dismiss key quits.
type ErrorModal struct {
	title, message string
	width, height  int
}

func NewErrorModal(title, message string) ErrorModal {
	return ErrorModal{title: title, message: message}
}

func (m ErrorModal) Init() tea.Cmd { return nil }

func (m ErrorModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc || msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ErrorModal) View() string {
	if m.width < minModalWidth || m.height < minModalHeight {
		return m.title + ": " + m.message + "\n\nPress Enter to quit"
	}
	return renderThreeSectionModal(m.title, m.message, "Press Enter to quit", ModalTypeError, m.width, m.height)
}
