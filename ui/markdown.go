package ui

import (
	"regexp"

	markdown "github.com/MichaelMure/go-term-markdown"
	tea "github.com/charmbracelet/bubbletea"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"atui/model"
)

var (
	inlineCodeRegex = regexp.MustCompile(`(?s)\x1b\[44;3m(.*?)\x1b\[0m`)
	mdLinkRegex     = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
	ansiRegex       = regexp.MustCompile(`\x1b\[[0-9;]*m`)
)

// renderMarkdownAsync renders a finished assistant message off the update
// loop and delivers the result as a message.
func (a App) renderMarkdownAsync(messageIndex int, content string) tea.Cmd {
	width := a.width
	return func() tea.Msg {
		return model.MarkdownRenderedMsg{
			MessageIndex: messageIndex,
			Rendered:     renderMarkdown(content, width),
		}
	}
}

func renderMarkdown(content string, width int) string {
	if width < 20 {
		width = 80
	}

	// Strip [text](url) down to the bare URL so terminal emulators handle
	// link detection themselves.
	content = mdLinkRegex.ReplaceAllString(content, "$2")

	// Autolink is disabled for the same reason.
	ext := markdown.Extensions() &^ parser.Autolink
	p := parser.NewWithExtensions(ext)
	r := markdown.NewRenderer(width-4, 0)
	doc := p.Parse([]byte(content))
	rendered := gomarkdown.Render(doc, r)

	// Inline code comes out as blue background + italic; red text reads
	// better on both light and dark terminals.
	return inlineCodeRegex.ReplaceAllString(string(rendered), "\x1b[31m$1\x1b[0m")
}

// stripANSI removes escape codes for accurate width calculation.
func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
