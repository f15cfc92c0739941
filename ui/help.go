package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type helpRow struct {
	key   string
	label string
}

type helpSection struct {
	title string
	rows  []helpRow
}

func (s helpSection) render() string {
	heading := lipgloss.NewStyle().Foreground(accentColor)

	lines := []string{heading.Render("## " + s.title)}
	for _, r := range s.rows {
		if r.key == "" {
			lines = append(lines, "• "+r.label)
			continue
		}
		lines = append(lines, fmt.Sprintf("• %-13s %s", r.key, r.label))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (a AppView) helpSections() (left, right []helpSection) {
	kb := a.dataModel.Config.KeyBindings
	row := func(action, label string) helpRow {
		return helpRow{key: kb.DisplayActionKey(action), label: label}
	}

	left = []helpSection{
		{"Global Actions", []helpRow{
			row("clear_chat", "Clear chat"),
			row("change_key", "Change API key"),
			row("suggestions", "Try asking"),
			row("about", "About Jethalal"),
			row("help", "Toggle this help"),
			row("quit", "Quit"),
		}},
		{"Tips", []helpRow{
			{label: "Input is locked while Jethalal replies"},
			{label: "Clearing drops a pending reply"},
			{label: "Your key is never saved to disk"},
		}},
	}

	right = []helpSection{
		{"Chat Navigation", []helpRow{
			row("scroll_down", "Scroll down 1 line"),
			row("scroll_up", "Scroll up 1 line"),
			row("half_page_down", "Half page down"),
			row("half_page_up", "Half page up"),
			row("page_down", "Full page down"),
			row("page_up", "Full page up"),
			row("scroll_to_top", "Jump to top"),
			row("scroll_to_bottom", "Jump to bottom"),
		}},
		{"Chat Actions", []helpRow{
			{key: "Enter", label: "Send message"},
			{key: "Alt+Enter", label: "New line"},
			row("clear_input", "Clear input"),
			row("yank_last_response", "Copy last reply"),
			row("yank_conversation", "Copy conversation"),
		}},
	}
	return left, right
}

func renderColumn(sections []helpSection) string {
	parts := make([]string, 0, len(sections)*2)
	for i, s := range sections {
		if i > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, s.render())
	}
	return lipgloss.NewStyle().Width(44).PaddingLeft(4).Render(
		lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (a AppView) renderHelpModal(width, height int) string {
	kb := a.dataModel.Config.KeyBindings
	left, right := a.helpSections()

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor).
		Render("Jethalal Bot - Keyboard Shortcuts")

	footer := lipgloss.NewStyle().
		Foreground(dimColor).
		Render(fmt.Sprintf("Press %s or Esc to close this help", kb.DisplayActionKey("help")))

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, renderColumn(left), "  ", renderColumn(right)),
		"",
		footer,
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2).
		Width(min(98, max(width-2, 40)))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box.Render(content))
}
