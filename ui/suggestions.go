package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	appmodel "jethabot/model"
)

const suggestionBoxWidth = 56

// filterSuggestions fuzzy-matches filter against all, best match first.
// An empty filter keeps every suggestion in its original order.
func filterSuggestions(filter string, all []string) []string {
	if filter == "" {
		return all
	}
	matches := fuzzy.Find(filter, all)
	filtered := make([]string, len(matches))
	for i, match := range matches {
		filtered[i] = all[match.Index]
	}
	return filtered
}

func (a *AppView) openSuggestions() {
	a.showSuggestions = true
	a.suggestionFilterMode = false
	a.suggestionFilterInput.SetValue("")
	a.filteredSuggestions = appmodel.Suggestions
	a.selectedSuggestionIdx = 0
}

// pickSuggestion puts the selected prompt in the input box for the user to send
func (a *AppView) pickSuggestion() {
	if a.selectedSuggestionIdx < 0 || a.selectedSuggestionIdx >= len(a.filteredSuggestions) {
		return
	}
	a.textarea.SetValue(a.filteredSuggestions[a.selectedSuggestionIdx])
	a.closeAllModals()
}

func (a AppView) handleSuggestionsUpdate(msg tea.KeyMsg) (AppView, tea.Cmd) {
	kb := a.dataModel.Config.KeyBindings

	if a.suggestionFilterMode {
		switch msg.String() {
		case "esc":
			a.suggestionFilterMode = false
			a.suggestionFilterInput.Blur()
			a.suggestionFilterInput.SetValue("")
			a.filteredSuggestions = appmodel.Suggestions
			a.selectedSuggestionIdx = 0
			return a, nil

		case "enter":
			a.pickSuggestion()
			return a, nil

		case kb.GetActionKey("suggestion_down_filtered"), kb.GetActionKey("scroll_down_arrow"), "down":
			if a.selectedSuggestionIdx < len(a.filteredSuggestions)-1 {
				a.selectedSuggestionIdx++
			}
			return a, nil

		case kb.GetActionKey("suggestion_up_filtered"), kb.GetActionKey("scroll_up_arrow"), "up":
			if a.selectedSuggestionIdx > 0 {
				a.selectedSuggestionIdx--
			}
			return a, nil

		case kb.GetActionKey("clear_input"):
			a.suggestionFilterInput.SetValue("")
		}

		var cmd tea.Cmd
		if msg.String() != kb.GetActionKey("clear_input") {
			a.suggestionFilterInput, cmd = a.suggestionFilterInput.Update(msg)
		}

		a.filteredSuggestions = filterSuggestions(a.suggestionFilterInput.Value(), appmodel.Suggestions)
		if a.selectedSuggestionIdx >= len(a.filteredSuggestions) {
			a.selectedSuggestionIdx = max(len(a.filteredSuggestions)-1, 0)
		}

		return a, cmd
	}

	switch msg.String() {
	case "/":
		a.suggestionFilterMode = true
		a.suggestionFilterInput.Focus()
		return a, nil

	case "esc", kb.GetActionKey("suggestions"):
		a.closeAllModals()
		return a, nil

	case kb.GetActionKey("suggestion_down"), kb.GetActionKey("suggestion_down_arrow"):
		if a.selectedSuggestionIdx < len(a.filteredSuggestions)-1 {
			a.selectedSuggestionIdx++
		}
		return a, nil

	case kb.GetActionKey("suggestion_up"), kb.GetActionKey("suggestion_up_arrow"):
		if a.selectedSuggestionIdx > 0 {
			a.selectedSuggestionIdx--
		}
		return a, nil

	case "enter":
		a.pickSuggestion()
		return a, nil
	}

	return a, nil
}

func (a AppView) renderSuggestions(width, height int) string {
	boxWidth := suggestionBoxWidth
	if width < boxWidth+10 {
		boxWidth = max(width-10, 20)
	}

	var lines []string
	lines = append(lines, HighlightStyle.Render("💡 Try asking:"), "")

	if len(a.filteredSuggestions) == 0 {
		lines = append(lines, DimStyle.Render("No matching suggestions"))
	}

	for i, s := range a.filteredSuggestions {
		text := runewidth.Truncate(s, boxWidth-4, "…")
		if i == a.selectedSuggestionIdx {
			lines = append(lines, SelectedStyle.Render("▶ "+text))
		} else {
			lines = append(lines, "  "+text)
		}
	}

	lines = append(lines, "")
	if a.suggestionFilterMode {
		lines = append(lines, a.suggestionFilterInput.View())
	} else {
		lines = append(lines, DimStyle.Render(fmt.Sprintf("%d of %d", len(a.filteredSuggestions), len(appmodel.Suggestions))))
	}

	footer := FormatFooter("j/k", "Navigate", "/", "Filter", "Enter", "Use", "Esc", "Close")
	if a.suggestionFilterMode {
		kb := a.dataModel.Config.KeyBindings
		footer = FormatFooter(
			kb.DisplayActionKey("suggestion_down_filtered")+"/"+kb.DisplayActionKey("suggestion_up_filtered"), "Navigate",
			"Enter", "Use",
			"Esc", "Clear filter",
		)
	}
	lines = append(lines, "", footer)

	box := boxStyle.Width(boxWidth).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
