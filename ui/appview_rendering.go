package ui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	markdown "github.com/MichaelMure/go-term-markdown"
	tea "github.com/charmbracelet/bubbletea"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"jethabot/config"
	appmodel "jethabot/model"
)

// Pre-compiled regex patterns for better performance
var (
	inlineCodeRegex = regexp.MustCompile(`(?s)\x1b\[44;3m(.*?)\x1b\[0m`)
	mdLinkRegex     = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
	urlRegex        = regexp.MustCompile(`(https?://[^\s]+)`)
	ansiRegex       = regexp.MustCompile(`\x1b\[[0-9;]*m`)
)

const emptyChatText = "Koi baat nahi hui abhi tak. Start chatting with Jethalal!"

// visibleTurns is the display transcript plus the pending user turn when
// the session has not recorded it yet
func (a AppView) visibleTurns(snap appmodel.Snapshot) []appmodel.Turn {
	turns := snap.Display
	if a.pending == "" {
		return turns
	}
	if n := len(turns); n > 0 && turns[n-1].Role == appmodel.RoleUser && turns[n-1].Content == a.pending {
		return turns
	}
	return append(turns, appmodel.Turn{Role: appmodel.RoleUser, Content: a.pending, Timestamp: time.Now()})
}

func (a *AppView) updateViewportContent(gotoBottom bool) {
	snap := a.dataModel.Session.Snapshot()
	if snap.Generation != a.renderedGen {
		a.rendered = map[int]string{}
		a.renderedGen = snap.Generation
	}

	turns := a.visibleTurns(snap)
	if len(turns) == 0 {
		a.viewport.SetContent(DimStyle.Render(emptyChatText))
		return
	}

	var content strings.Builder

	for i, turn := range turns {
		highlightPrefix := ""
		if i == a.highlightedMessageIdx && a.highlightFlashCount%2 == 1 {
			highlightPrefix = HighlightStyle.Render(">>> ")
		}

		timestamp := DimStyle.Render(turn.Timestamp.Format("[15:04]"))

		body := turn.Content
		if r, ok := a.rendered[i]; ok {
			body = r
		}

		if turn.Role == appmodel.RoleUser {
			content.WriteString(formatUserMessage(highlightPrefix, timestamp, UserStyle.Render("You"), body))
			continue
		}

		role := AssistantStyle.Render(appmodel.PersonaName)
		if turn.Failed {
			role = FailedStyle.Render(appmodel.PersonaName)
			body = FailedStyle.Render(turn.Content)
		}
		content.WriteString(fmt.Sprintf("%s%s %s\n%s\n\n", highlightPrefix, timestamp, role, body))
	}

	// Spinner while the reply is pending
	if a.waiting && a.pending != "" {
		timestamp := DimStyle.Render(time.Now().Format("[15:04]"))
		role := AssistantStyle.Render(appmodel.PersonaName)
		content.WriteString(fmt.Sprintf("%s %s\n%s %s\n\n", timestamp, role, a.loadingSpinner.View(), appmodel.ThinkingText))
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

func formatUserMessage(highlightPrefix, timestamp, role, content string) string {
	greenBold := "\x1b[32;1m"
	reset := "\x1b[0m"
	bar := greenBold + "┃" + reset

	lines := strings.Split(content, "\n")

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s%s %s %s\n", highlightPrefix, bar, timestamp, role))

	for _, line := range lines {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}

	result.WriteString("\n")

	return result.String()
}

// transcriptText is the plain-text conversation copied by yank_conversation
func transcriptText(turns []appmodel.Turn) string {
	var allText strings.Builder
	for _, turn := range turns {
		role := "You"
		if turn.Role == appmodel.RoleAssistant {
			role = appmodel.PersonaName
		}
		allText.WriteString(fmt.Sprintf("[%s] %s:\n%s\n\n",
			turn.Timestamp.Format("15:04"),
			role,
			turn.Content))
	}
	return allText.String()
}

func postProcessMarkdown(rendered string, width int) string {
	// 1. Inline code: blue background to red text
	rendered = fixInlineCode(rendered)

	// 2. Color plain URLs red (autolink disabled keeps URLs plain)
	rendered = fixMarkdownLinks(rendered)

	// 3. Frame code blocks with horizontal lines
	rendered = frameCodeBlocks(rendered, width)

	return rendered
}

// preprocessLinks strips [text](url) down to url so every link renders the same way
func preprocessLinks(content string) string {
	return mdLinkRegex.ReplaceAllString(content, "$2")
}

func fixInlineCode(s string) string {
	return inlineCodeRegex.ReplaceAllString(s, "\x1b[31m$1\x1b[0m")
}

func fixMarkdownLinks(s string) string {
	redColor := "\x1b[31m"
	reset := "\x1b[0m"

	lines := strings.Split(s, "\n")

	for i, line := range lines {
		// Code block lines carry the ┃ prefix
		if !strings.Contains(line, "┃") {
			lines[i] = urlRegex.ReplaceAllString(line, redColor+"$1"+reset)
		}
	}

	return strings.Join(lines, "\n")
}

func frameCodeBlocks(s string, width int) string {
	lines := strings.Split(s, "\n")
	var result []string
	var codeBlockLines []string
	inCodeBlock := false

	darkGray := "\x1b[90m"
	reset := "\x1b[0m"
	lineLen := max(width-4, 8)

	closeBlock := func() {
		result = append(result, codeBlockLines...)
		result = append(result, "")
		result = append(result, darkGray+strings.Repeat("━", lineLen)+reset)
		result = append(result, "")
		codeBlockLines = nil
		inCodeBlock = false
	}

	for _, line := range lines {
		if strings.Contains(line, "┃") {
			if !inCodeBlock {
				inCodeBlock = true
				codeBlockLines = []string{}
				result = append(result, "")

				label := "[code]"
				leftLen := max((lineLen-len(label))/2, 0)
				rightLen := max(lineLen-len(label)-leftLen, 0)
				border := darkGray + strings.Repeat("━", leftLen) + reset + label + darkGray + strings.Repeat("━", rightLen) + reset

				result = append(result, border)
				result = append(result, "")
			}

			codeBlockLines = append(codeBlockLines, stripCodeBlockPrefix(line))
			continue
		}

		if inCodeBlock {
			closeBlock()
		}
		result = append(result, line)
	}

	if inCodeBlock && len(codeBlockLines) > 0 {
		closeBlock()
	}

	return strings.Join(result, "\n")
}

func stripCodeBlockPrefix(line string) string {
	idx := strings.Index(line, "┃")
	if idx < 0 {
		return line
	}
	after := idx + len("┃")
	if after < len(line) && line[after] == ' ' {
		after++
	}
	if after < len(line) {
		return line[after:]
	}
	return ""
}

// renderMarkdown renders content for a terminal of the given width
func renderMarkdown(content string, width int) string {
	content = preprocessLinks(content)

	// Autolink disabled keeps plain URLs plain for the terminal to detect
	customExt := markdown.Extensions() &^ parser.Autolink
	p := parser.NewWithExtensions(customExt)
	r := markdown.NewRenderer(max(width-4, 20), 0)
	doc := p.Parse([]byte(content))
	rendered := gomarkdown.Render(doc, r)

	return strings.TrimRight(postProcessMarkdown(string(rendered), width), "\n")
}

func (a AppView) renderMarkdownAsync(index int, generation uint64, content string) tea.Cmd {
	width := a.width
	return func() tea.Msg {
		startTime := time.Now()
		processed := renderMarkdown(content, width)
		config.Debugf("[UI] Markdown for turn %d rendered in %v (%d chars)", index, time.Since(startTime), len(content))

		return markdownRenderedMsg{
			Index:      index,
			Generation: generation,
			Rendered:   processed,
		}
	}
}

// renderAllAsync re-renders every assistant turn, used after a resize
func (a AppView) renderAllAsync() tea.Cmd {
	snap := a.dataModel.Session.Snapshot()
	var cmds []tea.Cmd
	for i, turn := range snap.Display {
		if turn.Role == appmodel.RoleAssistant && !turn.Failed {
			cmds = append(cmds, a.renderMarkdownAsync(i, snap.Generation, turn.Content))
		}
	}
	return tea.Batch(cmds...)
}

// wordWrapWithIndent wraps text to maxWidth while preserving indentation for continuation lines
func wordWrapWithIndent(text string, prefix string, maxWidth int) string {
	prefixLen := len(stripANSI(prefix))
	availableWidth := maxWidth - prefixLen

	if availableWidth <= 0 {
		return prefix + text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return prefix
	}

	var result strings.Builder
	var currentLine strings.Builder
	indent := strings.Repeat(" ", prefixLen)
	isFirstLine := true

	flush := func() {
		if isFirstLine {
			result.WriteString(prefix)
			isFirstLine = false
		} else {
			result.WriteString(indent)
		}
		result.WriteString(currentLine.String())
		result.WriteString("\n")
		currentLine.Reset()
	}

	for _, word := range words {
		testLen := currentLine.Len()
		if testLen > 0 {
			testLen++
		}
		testLen += len(word)

		if testLen > availableWidth && currentLine.Len() > 0 {
			flush()
		}

		if currentLine.Len() > 0 {
			currentLine.WriteString(" ")
		}
		currentLine.WriteString(word)
	}

	if currentLine.Len() > 0 {
		flush()
	}

	return result.String()
}

// stripANSI removes ANSI escape codes for accurate length calculation
func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
