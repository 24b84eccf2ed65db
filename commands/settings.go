package commands

import (
	"fmt"
	"strings"
)

// modelLister is implemented by providers that can enumerate models.
type modelLister interface {
	KnownModels() []string
}

func (h *Handler) cmdModel(args []string) Result {
	if len(args) == 0 {
		return text("Current model: %s", h.Provider.GetModel())
	}

	switch args[0] {
	case "list":
		lister, ok := h.Provider.(modelLister)
		if !ok {
			return fail("Model listing is not supported by this provider")
		}

		var b strings.Builder
		b.WriteString("Available models:\n")
		current := h.Provider.GetModel()
		for _, m := range lister.KnownModels() {
			marker := "  "
			if m == current {
				marker = "* "
			}
			fmt.Fprintf(&b, "%s%s\n", marker, m)
		}
		return Result{Handled: true, Message: strings.TrimRight(b.String(), "\n")}

	case "set":
		if len(args) < 2 {
			return fail("Usage: /model set <name>")
		}
		return h.switchModel(args[1])

	default:
		return h.switchModel(args[0])
	}
}

func (h *Handler) switchModel(name string) Result {
	h.Provider.SetModel(name)
	if h.session != nil {
		h.session.Model = name
	}
	return text("Model switched to %s", name)
}

func (h *Handler) cmdConfig(args []string) Result {
	if len(args) == 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "base_url: %s\n", h.Config.BaseURL)
		fmt.Fprintf(&b, "model: %s\n", h.Config.DefaultModel)
		fmt.Fprintf(&b, "temperature: %g\n", h.Config.Temperature)
		fmt.Fprintf(&b, "max_tokens: %d\n", h.Config.MaxTokens)
		fmt.Fprintf(&b, "data_directory: %s\n", h.Config.DataDir())
		if h.Config.DefaultSystemPrompt != "" {
			fmt.Fprintf(&b, "default_system_prompt: %s\n", h.Config.DefaultSystemPrompt)
		}
		fmt.Fprintf(&b, "mcp_servers: %d configured", len(h.Config.MCPServers))
		return Result{Handled: true, Message: b.String()}
	}

	if args[0] != "set" || len(args) < 3 {
		return fail("Usage: /config set <key> <value>")
	}

	key := args[1]
	value := strings.Join(args[2:], " ")
	if err := h.Config.Set(key, value); err != nil {
		return fail("%v", err)
	}

	if key == "model" {
		h.Provider.SetModel(value)
	}
	return text("Set %s = %s", key, value)
}

func (h *Handler) cmdTools(args []string) Result {
	if len(args) == 0 {
		state := "off"
		if h.toolsOn {
			state = "on"
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Tools are %s.\n", state)
		for _, t := range h.Registry.Tools() {
			fmt.Fprintf(&b, "  %-24s %s\n", t.Name, firstLine(t.Description))
		}
		return Result{Handled: true, Message: strings.TrimRight(b.String(), "\n")}
	}

	switch args[0] {
	case "on", "enable":
		h.toolsOn = true
		return text("Tools enabled.")
	case "off", "disable":
		h.toolsOn = false
		return text("Tools disabled.")
	case "list":
		return h.cmdTools(nil)
	default:
		return fail("Usage: /tools [on|off|list]")
	}
}

func firstLine(s string) string {
	if i := strings.Index(s, "\n"); i >= 0 {
		return s[:i]
	}
	return s
}
