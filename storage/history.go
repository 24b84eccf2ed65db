package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HistoryManager persists prompt history as one entry per line.
type HistoryManager struct {
	path string
}

func NewHistoryManager(dataDir string) (*HistoryManager, error) {
	historyDir := filepath.Join(dataDir, "history")
	if err := os.MkdirAll(historyDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	return &HistoryManager{path: filepath.Join(historyDir, "prompts.txt")}, nil
}

// Add appends an entry. Newlines are flattened so one entry stays one line.
func (h *HistoryManager) Add(entry string) error {
	entry = strings.ReplaceAll(strings.TrimSpace(entry), "\n", " ")
	if entry == "" {
		return nil
	}

	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, entry); err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	return nil
}

// All returns up to limit most recent entries, oldest first.
func (h *HistoryManager) All(limit int) ([]string, error) {
	data, err := os.ReadFile(h.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			entries = append(entries, line)
		}
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

// Clear removes the history file.
func (h *HistoryManager) Clear() error {
	err := os.Remove(h.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
