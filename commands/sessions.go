package commands

import (
	"fmt"
	"strconv"
	"strings"

	"atui/storage"
)

func (h *Handler) cmdSession(args []string) Result {
	if len(args) == 0 {
		if h.session == nil {
			return text("No active session.")
		}
		return text("Session %s (%q, %d messages, model %s)",
			h.session.ID, h.session.Name, len(h.session.Messages), h.session.Model)
	}

	switch args[0] {
	case "list":
		sessions, err := h.Store.List()
		if err != nil {
			return fail("Failed to list sessions: %v", err)
		}
		if len(sessions) == 0 {
			return text("No saved sessions.")
		}

		var b strings.Builder
		b.WriteString("Sessions (newest first):\n")
		for _, meta := range sessions {
			marker := "  "
			if h.session != nil && meta.ID == h.session.ID {
				marker = "* "
			}
			fmt.Fprintf(&b, "%s%s  %-30s  %3d msgs  %s\n",
				marker, meta.ID[:8], meta.Name, meta.MessageCount,
				meta.UpdatedAt.Format("Jan 2 15:04"))
		}
		return Result{Handled: true, Message: strings.TrimRight(b.String(), "\n")}

	case "new":
		h.session = h.Store.NewSession(h.Provider.GetModel())
		return Result{Handled: true, Message: "Started a new session.", ClearView: true}

	case "load":
		if len(args) < 2 {
			return fail("Usage: /session load <id>")
		}
		session, err := h.loadByPrefix(args[1])
		if err != nil {
			return fail("%v", err)
		}
		h.session = session
		if session.Model != "" {
			h.Provider.SetModel(session.Model)
		}
		return Result{
			Handled:   true,
			Message:   fmt.Sprintf("Loaded session %q (%d messages).", session.Name, len(session.Messages)),
			ClearView: true,
		}

	case "delete":
		if len(args) < 2 {
			return fail("Usage: /session delete <id>")
		}
		session, err := h.loadByPrefix(args[1])
		if err != nil {
			return fail("%v", err)
		}
		if h.session != nil && session.ID == h.session.ID {
			return fail("Cannot delete the active session. Start a new one first with /session new.")
		}
		if err := h.Store.Delete(session.ID); err != nil {
			return fail("Failed to delete session: %v", err)
		}
		if h.Search != nil {
			_ = h.Search.DeleteSession(session.ID)
		}
		return text("Deleted session %q.", session.Name)

	default:
		return fail("Usage: /session [list|new|load <id>|delete <id>]")
	}
}

// loadByPrefix resolves a full or abbreviated session ID.
func (h *Handler) loadByPrefix(id string) (*storage.Session, error) {
	sessions, listErr := h.Store.List()
	if listErr != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", listErr)
	}

	for _, meta := range sessions {
		if meta.ID == id || strings.HasPrefix(meta.ID, id) {
			return h.Store.Load(meta.ID)
		}
	}
	return nil, fmt.Errorf("no session matching %q", id)
}

func (h *Handler) cmdHistory(args []string) Result {
	if h.History == nil {
		return fail("Prompt history is unavailable.")
	}

	if len(args) > 0 && args[0] == "clear" {
		if err := h.History.Clear(); err != nil {
			return fail("Failed to clear history: %v", err)
		}
		return text("Prompt history cleared.")
	}

	entries, err := h.History.All(20)
	if err != nil {
		return fail("Failed to read history: %v", err)
	}
	if len(entries) == 0 {
		return text("No prompt history yet.")
	}

	var b strings.Builder
	b.WriteString("Recent prompts:\n")
	for i, entry := range entries {
		fmt.Fprintf(&b, "%3d. %s\n", i+1, entry)
	}
	return Result{Handled: true, Message: strings.TrimRight(b.String(), "\n")}
}

func (h *Handler) cmdCompact() Result {
	if h.session == nil {
		return fail("No active session.")
	}

	removed := h.session.Compact(4)
	if removed == 0 {
		return text("Nothing to compact.")
	}
	return text("Compacted %d messages into a summary marker.", removed)
}

func (h *Handler) cmdRewind(args []string) Result {
	if h.session == nil {
		return fail("No active session.")
	}

	n := 2
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 {
			return fail("Usage: /rewind [n], n >= 1")
		}
		n = parsed
	}

	removed := h.session.Rewind(n)
	if removed == 0 {
		return fail("Session has fewer than %d messages.", n)
	}
	return Result{
		Handled:   true,
		Message:   fmt.Sprintf("Removed the last %d messages.", removed),
		ClearView: true,
	}
}

func (h *Handler) cmdSearch(query string) Result {
	if h.Search == nil {
		return fail("Search is unavailable.")
	}
	if strings.TrimSpace(query) == "" {
		return fail("Usage: /search <query>")
	}

	hits, err := h.Search.Search(query, 20)
	if err != nil {
		return fail("Search failed: %v", err)
	}
	if len(hits) == 0 {
		return text("No matches for %q.", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Matches for %q:\n", query)
	for _, hit := range hits {
		fmt.Fprintf(&b, "  [%s] %s %s: %s\n",
			hit.SessionID[:8], hit.CreatedAt.Format("Jan 2"), hit.Role, hit.Preview)
	}
	return Result{Handled: true, Message: strings.TrimRight(b.String(), "\n")}
}
