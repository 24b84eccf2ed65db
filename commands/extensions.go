package commands

import (
	"context"
	"fmt"
	"strings"

	"atui/catalog"
)

func (h *Handler) cmdMCP(ctx context.Context, args []string) Result {
	if h.MCP == nil {
		return fail("MCP is unavailable.")
	}

	if len(args) == 0 || args[0] == "list" {
		configured := h.MCP.Servers()
		if len(configured) == 0 {
			return text("No MCP servers configured. Add [mcp_servers.<name>] tables to config.toml.")
		}

		connected := make(map[string]bool)
		for _, name := range h.MCP.Connected() {
			connected[name] = true
		}

		var b strings.Builder
		b.WriteString("MCP servers:\n")
		for _, name := range configured {
			state := "disconnected"
			if connected[name] {
				state = "connected"
			}
			fmt.Fprintf(&b, "  %-20s %s\n", name, state)
		}
		return Result{Handled: true, Message: strings.TrimRight(b.String(), "\n")}
	}

	switch args[0] {
	case "connect":
		if len(args) < 2 {
			return fail("Usage: /mcp connect <name>")
		}
		if err := h.MCP.Connect(ctx, args[1]); err != nil {
			return fail("%v", err)
		}
		return text("Connected to MCP server %s.", args[1])

	case "disconnect":
		if len(args) < 2 {
			return fail("Usage: /mcp disconnect <name>")
		}
		if err := h.MCP.Disconnect(ctx, args[1]); err != nil {
			return fail("%v", err)
		}
		return text("Disconnected from MCP server %s.", args[1])

	default:
		return fail("Usage: /mcp [list|connect <name>|disconnect <name>]")
	}
}

func (h *Handler) cmdAgent(args []string) Result {
	if len(args) == 0 || args[0] == "list" {
		var b strings.Builder
		b.WriteString("Agents:\n")
		for _, a := range h.Agents.All() {
			marker := "  "
			if h.activeAgent != nil && a.Name == h.activeAgent.Name {
				marker = "* "
			}
			fmt.Fprintf(&b, "%s%-16s %s\n", marker, a.Name, a.Description)
		}
		b.WriteString("\nUse /agent use <name> to activate, /agent clear to deactivate.")
		return Result{Handled: true, Message: b.String()}
	}

	switch args[0] {
	case "use":
		if len(args) < 2 {
			return fail("Usage: /agent use <name>")
		}
		agent, ok := h.Agents.Get(args[1])
		if !ok {
			return fail("Unknown agent: %s (see /agent list)", args[1])
		}
		h.activeAgent = &agent
		return text("Agent %s active. Its system prompt applies to following messages.", agent.Name)

	case "clear":
		h.activeAgent = nil
		return text("Agent deactivated.")

	case "find":
		if len(args) < 2 {
			return fail("Usage: /agent find <keyword>")
		}
		matches := h.Agents.FindByKeyword(args[1])
		if len(matches) == 0 {
			return text("No agents match %q.", args[1])
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Agents matching %q:\n", args[1])
		for _, a := range matches {
			fmt.Fprintf(&b, "  %-16s %s\n", a.Name, a.Description)
		}
		return Result{Handled: true, Message: strings.TrimRight(b.String(), "\n")}

	default:
		return fail("Usage: /agent [list|use <name>|find <keyword>|clear]")
	}
}

func (h *Handler) cmdSkill(args []string) Result {
	if len(args) == 0 || args[0] == "list" {
		var b strings.Builder
		b.WriteString("Skills:\n")
		for _, s := range h.Skills.All() {
			fmt.Fprintf(&b, "  %-12s %s\n", s.Name, s.Description)
		}
		b.WriteString("\nRun one with /skill run <name> [args], or directly as /<name>.")
		return Result{Handled: true, Message: b.String()}
	}

	if args[0] != "run" || len(args) < 2 {
		return fail("Usage: /skill [list|run <name> [args]]")
	}

	skill, ok := h.Skills.Get(args[1])
	if !ok {
		return fail("Unknown skill: %s (see /skill list)", args[1])
	}

	return h.runSkill(skill, strings.Join(args[2:], " "))
}

// runSkill expands a skill template into a prompt for the caller to send.
func (h *Handler) runSkill(skill catalog.Skill, args string) Result {
	if skill.RequiresArgs && strings.TrimSpace(args) == "" {
		return fail("/%s needs a description of what to do, e.g. /%s the crash on empty input", skill.Name, skill.Name)
	}
	return Result{Handled: true, Prompt: skill.Render(args)}
}
