package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	appmodel "jethabot/model"
)

const aboutWidth = 56

// ASCIIArt is the banner of the about panel
const ASCIIArt = `     _      _   _           _           _
    | | ___| |_| |__   __ _| |__   ___ | |_
 _  | |/ _ \ __| '_ \ / _' | '_ \ / _ \| __|
| |_| |  __/ |_| | | | (_| | |_) | (_) | |_
 \___/ \___|\__|_| |_|\__,_|_.__/ \___/ \__|`

const aboutBlurb = "Gada Electronics ke Malik se Baat Karo! Jethalal answers in his own excitable Gujarati-influenced Hindi, one step at a time."

func renderAboutModal(a AppView, width, height int, version, license string) string {
	var sb strings.Builder

	asciiStyle := lipgloss.NewStyle().
		Foreground(successColor).
		Bold(true)

	sb.WriteString(asciiStyle.Render(ASCIIArt))
	sb.WriteString("\n\n")

	featureStyle := lipgloss.NewStyle().
		Foreground(dimColor)

	sb.WriteString(featureStyle.Render(wordWrapWithIndent(aboutBlurb, "", aboutWidth)))
	sb.WriteString("\n")

	labelStyle := lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(dimColor)

	sb.WriteString(HighlightStyle.Render("🏪 About Jethalal"))
	sb.WriteString("\n\n")
	for _, fact := range appmodel.PersonaProfile {
		sb.WriteString(labelStyle.Render(fact.Label + ": "))
		sb.WriteString(valueStyle.Render(fact.Value))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(labelStyle.Render("Provider: "))
	sb.WriteString(valueStyle.Render(a.providerLabel()))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Key: "))
	sb.WriteString(valueStyle.Render(a.dataModel.Gate.Status().String()))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Version: "))
	sb.WriteString(valueStyle.Render(version))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("License: "))
	sb.WriteString(valueStyle.Render(license))
	sb.WriteString("\n\n")

	kb := a.dataModel.Config.KeyBindings
	sb.WriteString(featureStyle.Render(fmt.Sprintf("Press Esc or %s to close", kb.DisplayActionKey("about"))))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, boxStyle.Render(sb.String()))
}
