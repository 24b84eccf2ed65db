package ui

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// baseCommands are the built-in slash commands offered by completion.
// Skill shortcuts are appended at startup.
var baseCommands = []string{
	"/help", "/clear", "/exit", "/model", "/config", "/tools",
	"/session", "/history", "/compact", "/rewind", "/search",
	"/mcp", "/agent", "/skill", "/version",
}

const maxSuggestions = 6

// updateSuggestions recomputes the completion list for the current input.
// Only a lone slash-word (no space yet) triggers completion.
func (a *App) updateSuggestions() {
	input := a.textarea.Value()
	if !strings.HasPrefix(input, "/") || strings.ContainsAny(input, " \n") {
		a.suggestions = nil
		a.suggestionIdx = 0
		return
	}

	if input == "/" {
		a.suggestions = a.commandNames[:min(maxSuggestions, len(a.commandNames))]
		a.suggestionIdx = 0
		return
	}

	matches := fuzzy.Find(input, a.commandNames)
	var out []string
	for _, m := range matches {
		out = append(out, m.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	a.suggestions = out
	a.suggestionIdx = 0
}

// acceptSuggestion replaces the input with the selected completion.
func (a *App) acceptSuggestion() {
	if len(a.suggestions) == 0 {
		return
	}
	a.textarea.SetValue(a.suggestions[a.suggestionIdx] + " ")
	a.textarea.CursorEnd()
	a.suggestions = nil
	a.suggestionIdx = 0
}

func (a App) suggestionView() string {
	if len(a.suggestions) == 0 {
		return ""
	}

	var b strings.Builder
	for i, s := range a.suggestions {
		if i == a.suggestionIdx {
			b.WriteString(SelectedStyle.Render("> " + s))
		} else {
			b.WriteString(DimStyle.Render("  " + s))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
