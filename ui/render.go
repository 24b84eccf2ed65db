package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	roleUser      = "user"
	roleAssistant = "assistant"
	roleSystem    = "system"
	roleTool      = "tool"
	roleError     = "error"
)

func (a *App) updateViewportContent(gotoBottom bool) {
	if len(a.messages) == 0 {
		a.viewport.SetContent(DimStyle.Render("No messages yet. Type a prompt, or /help for commands."))
		return
	}

	var content strings.Builder
	for _, msg := range a.messages {
		content.WriteString(a.formatMessage(msg))
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

// updateStreamingMessage re-renders the transcript with the in-flight
// assistant response appended.
func (a *App) updateStreamingMessage() {
	var content strings.Builder
	for _, msg := range a.messages {
		content.WriteString(a.formatMessage(msg))
	}

	timestamp := DimStyle.Render(time.Now().Format("[15:04]"))
	role := AssistantStyle.Render("Assistant")

	// Spinner until the first chunk, then text with a block cursor.
	streamContent := a.spinner.View()
	if a.currentResp.Len() > 0 {
		streamContent = a.currentResp.String() + "▋"
	}

	fmt.Fprintf(&content, "%s %s\n%s\n\n", timestamp, role, streamContent)

	a.viewport.SetContent(content.String())
	a.viewport.GotoBottom()
}

func (a *App) formatMessage(msg Message) string {
	timestamp := DimStyle.Render(msg.Timestamp.Format("[15:04]"))

	switch msg.Role {
	case roleUser:
		return formatUserMessage(timestamp, UserStyle.Render("You"), msg.Rendered)
	case roleAssistant:
		return fmt.Sprintf("%s %s\n%s\n\n", timestamp, AssistantStyle.Render("Assistant"), msg.Rendered)
	case roleTool:
		return fmt.Sprintf("%s %s\n\n", timestamp, ToolStyle.Render(msg.Rendered))
	case roleError:
		return fmt.Sprintf("%s %s\n\n", timestamp, ErrorStyle.Render(msg.Rendered))
	default:
		return fmt.Sprintf("%s %s\n\n", timestamp, DimStyle.Render(msg.Rendered))
	}
}

// formatUserMessage prefixes each line with a colored vertical bar.
func formatUserMessage(timestamp, role, content string) string {
	greenBold := "\x1b[32;1m"
	reset := "\x1b[0m"
	bar := greenBold + "┃" + reset

	var result strings.Builder
	fmt.Fprintf(&result, "%s %s %s\n", bar, timestamp, role)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(&result, "%s %s\n", bar, line)
	}
	result.WriteString("\n")

	return result.String()
}

// summarizeArgs renders tool arguments compactly for the transcript.
func summarizeArgs(args map[string]any) string {
	if len(args) == 0 {
		return ""
	}

	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		text := fmt.Sprintf("%v", args[key])
		if len(text) > 60 {
			text = text[:60] + "..."
		}
		parts = append(parts, fmt.Sprintf("%s=%q", key, text))
	}
	return strings.Join(parts, " ")
}

// summarizeResult renders a tool result in one line.
func summarizeResult(content string, isError bool, errText string) string {
	if isError {
		return "✗ " + firstLineOf(errText)
	}

	line := firstLineOf(content)
	if line == "" {
		line = "(no output)"
	}
	if len(line) > 120 {
		line = line[:120] + "..."
	}
	return "✓ " + line
}

func firstLineOf(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "\n"); i >= 0 {
		return s[:i]
	}
	return s
}
