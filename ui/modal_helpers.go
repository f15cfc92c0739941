package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalType determines the color and styling of a modal
type ModalType int

const (
	ModalTypeInfo ModalType = iota
	ModalTypeWarning
	ModalTypeError
)

func modalTitleColor(modalType ModalType) lipgloss.Color {
	switch modalType {
	case ModalTypeWarning:
		return warningColor
	case ModalTypeError:
		return dangerColor
	default:
		return accentColor
	}
}

// renderThreeSectionModal renders the borderless title / message / footer
// modal shared by every acknowledgement dialog
func renderThreeSectionModal(title, message, footer string, modalType ModalType, width, height int) string {
	modalWidth := 60
	if width < modalWidth+10 {
		modalWidth = max(width-10, 10)
	}

	titleSection := lipgloss.NewStyle().
		Bold(true).
		Foreground(modalTitleColor(modalType)).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render(title)

	var messageLines []string
	messageLines = append(messageLines, strings.Repeat(" ", modalWidth))

	messageStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Align(lipgloss.Center)

	for _, line := range strings.Split(message, "\n") {
		messageLines = append(messageLines, messageStyle.Render(line))
	}

	messageLines = append(messageLines, strings.Repeat(" ", modalWidth))

	messageSection := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(strings.Join(messageLines, "\n"))

	footerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(footer)

	content := strings.Join([]string{titleSection, messageSection, footerSection}, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// RenderAcknowledgeModal renders a modal that requires only acknowledgement (Enter to dismiss)
func RenderAcknowledgeModal(title, message string, modalType ModalType, width, height int) string {
	return renderThreeSectionModal(title, message, "Press Enter to acknowledge", modalType, width, height)
}
