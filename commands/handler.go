package commands

import (
	"context"
	"fmt"
	"strings"

	"atui/catalog"
	"atui/config"
	"atui/mcp"
	"atui/model"
	"atui/storage"
	"atui/tools"
)

// Result is the outcome of handling one line of input.
type Result struct {
	// Handled is true when the input was a command. False means the input
	// is a normal chat message for the caller to send.
	Handled bool

	// Message is text to display to the user.
	Message string
	IsError bool

	// Prompt, when non-empty, is an expanded prompt the caller should send
	// to the model (skill shortcuts produce these).
	Prompt string

	// ClearView asks the caller to reset the transcript display.
	ClearView bool

	ShouldExit bool
}

func text(format string, args ...any) Result {
	return Result{Handled: true, Message: fmt.Sprintf(format, args...)}
}

func fail(format string, args ...any) Result {
	return Result{Handled: true, Message: fmt.Sprintf(format, args...), IsError: true}
}

// Handler interprets slash commands. It owns the pieces of mutable chat
// state that commands touch: the current session, the active agent, and
// the tools toggle.
type Handler struct {
	Config   *config.Config
	Store    *storage.SessionStore
	Provider model.Provider
	Registry *tools.Registry
	MCP      *mcp.Manager
	Agents   *catalog.AgentCatalog
	Skills   *catalog.SkillCatalog
	Search   *storage.SearchIndex
	History  *storage.HistoryManager

	session     *storage.Session
	activeAgent *catalog.Agent
	toolsOn     bool
}

func NewHandler() *Handler {
	return &Handler{toolsOn: true}
}

// Session returns the current session.
func (h *Handler) Session() *storage.Session { return h.session }

// SetSession replaces the current session.
func (h *Handler) SetSession(s *storage.Session) { h.session = s }

// ToolsEnabled reports whether tool use is on for this chat.
func (h *Handler) ToolsEnabled() bool { return h.toolsOn }

// SetToolsEnabled toggles tool use.
func (h *Handler) SetToolsEnabled(on bool) { h.toolsOn = on }

// ActiveAgent returns the selected agent, or nil.
func (h *Handler) ActiveAgent() *catalog.Agent { return h.activeAgent }

// SystemPrompt resolves the system prompt for the next exchange: the
// active agent wins, then the session's stored prompt, then the configured
// default.
func (h *Handler) SystemPrompt() string {
	if h.activeAgent != nil {
		return h.activeAgent.SystemPrompt
	}
	if h.session != nil && h.session.SystemPrompt != "" {
		return h.session.SystemPrompt
	}
	return h.Config.DefaultSystemPrompt
}

// Execute handles one line of input. Non-command input comes back with
// Handled false.
func (h *Handler) Execute(ctx context.Context, input string) Result {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") {
		return Result{}
	}

	fields := strings.Fields(trimmed)
	name := strings.TrimPrefix(fields[0], "/")
	args := fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, fields[0]))

	if config.DebugLog != nil {
		config.DebugLog.Printf("[commands] /%s %v", name, args)
	}

	switch name {
	case "help":
		return h.cmdHelp()
	case "version":
		return text("ATUI %s", config.Version)
	case "exit", "quit":
		return Result{Handled: true, ShouldExit: true}
	case "clear":
		return h.cmdClear()
	case "model":
		return h.cmdModel(args)
	case "config":
		return h.cmdConfig(args)
	case "tools":
		return h.cmdTools(args)
	case "session":
		return h.cmdSession(args)
	case "history":
		return h.cmdHistory(args)
	case "compact":
		return h.cmdCompact()
	case "rewind":
		return h.cmdRewind(args)
	case "search":
		return h.cmdSearch(rest)
	case "mcp":
		return h.cmdMCP(ctx, args)
	case "agent":
		return h.cmdAgent(args)
	case "skill":
		return h.cmdSkill(args)
	}

	// Bare skill names work as shortcuts: /commit, /review, ...
	if skill, ok := h.Skills.Get(name); ok {
		return h.runSkill(skill, rest)
	}

	return fail("Unknown command: /%s (try /help)", name)
}

func (h *Handler) cmdHelp() Result {
	var b strings.Builder
	b.WriteString("Commands:\n")
	b.WriteString("  /help                      Show this help\n")
	b.WriteString("  /clear                     Clear the current conversation\n")
	b.WriteString("  /model [name]              Show, list, or switch models\n")
	b.WriteString("  /config [set <key> <val>]  Show or change settings\n")
	b.WriteString("  /tools [on|off]            Show or toggle tool use\n")
	b.WriteString("  /session [list|load <id>|new|delete <id>]\n")
	b.WriteString("  /history [clear]           Show or clear prompt history\n")
	b.WriteString("  /compact                   Summarize older messages\n")
	b.WriteString("  /rewind [n]                Remove the last n messages (default 2)\n")
	b.WriteString("  /search <query>            Search across all sessions\n")
	b.WriteString("  /mcp [connect|disconnect <name>]\n")
	b.WriteString("  /agent [list|use <name>|find <kw>|clear]\n")
	b.WriteString("  /skill [list|run <name> [args]]\n")
	b.WriteString("  /version                   Show the version\n")
	b.WriteString("  /exit                      Quit\n")
	b.WriteString("\nSkill shortcuts:\n  ")

	names := make([]string, 0, len(h.Skills.All()))
	for _, s := range h.Skills.All() {
		names = append(names, "/"+s.Name)
	}
	b.WriteString(strings.Join(names, "  "))

	return Result{Handled: true, Message: b.String()}
}

func (h *Handler) cmdClear() Result {
	if h.session != nil {
		h.session.Clear()
	}
	return Result{Handled: true, Message: "Conversation cleared.", ClearView: true}
}
