package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"atui/model"
)

// Message is one persisted conversation entry. Only the final text of each
// exchange is stored; intermediate tool traffic stays in memory.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is a persisted conversation. Mutating operations save
// immediately so a crash never loses an exchange.
type Session struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Model        string    `json:"model"`
	Cwd          string    `json:"cwd"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Messages     []Message `json:"messages"`
	SystemPrompt string    `json:"system_prompt,omitempty"`

	store *SessionStore
}

// SessionMetadata is a lightweight view of a session for listing.
type SessionMetadata struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Model        string    `json:"model"`
	Cwd          string    `json:"cwd"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

// SessionStore handles session persistence as one JSON file per session.
type SessionStore struct {
	sessionsDir string
}

func NewSessionStore(dataDir string) (*SessionStore, error) {
	sessionsDir := filepath.Join(dataDir, "sessions")

	// 0700: conversation history is user-only
	if err := os.MkdirAll(sessionsDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &SessionStore{sessionsDir: sessionsDir}, nil
}

// NewSession creates a fresh session bound to this store and the current
// working directory.
func (s *SessionStore) NewSession(modelName string) *Session {
	cwd, _ := os.Getwd()
	now := time.Now()
	return &Session{
		ID:        uuid.New().String(),
		Model:     modelName,
		Cwd:       cwd,
		CreatedAt: now,
		UpdatedAt: now,
		store:     s,
	}
}

// Save writes a session to disk.
func (s *SessionStore) Save(session *Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	session.UpdatedAt = time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = session.UpdatedAt
	}

	path := filepath.Join(s.sessionsDir, session.ID+".json")

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// 0600: session files contain conversation history
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load reads a session from disk and binds it to this store.
func (s *SessionStore) Load(id string) (*Session, error) {
	path := filepath.Join(s.sessionsDir, id+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	session.store = s
	return &session, nil
}

// Latest returns the most recently updated session, filtered to the given
// working directory when cwd is non-empty. Returns nil when none matches.
func (s *SessionStore) Latest(cwd string) (*Session, error) {
	sessions, err := s.List()
	if err != nil {
		return nil, err
	}

	for _, meta := range sessions {
		if cwd != "" && meta.Cwd != cwd {
			continue
		}
		return s.Load(meta.ID)
	}

	return nil, nil
}

// List returns metadata for all sessions, newest first. Corrupted files
// are skipped.
func (s *SessionStore) List() ([]SessionMetadata, error) {
	entries, err := os.ReadDir(s.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var sessions []SessionMetadata

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.sessionsDir, entry.Name()))
		if err != nil {
			continue
		}

		var session Session
		if err := json.Unmarshal(data, &session); err != nil {
			continue
		}

		sessions = append(sessions, SessionMetadata{
			ID:           session.ID,
			Name:         session.Name,
			Model:        session.Model,
			Cwd:          session.Cwd,
			CreatedAt:    session.CreatedAt,
			UpdatedAt:    session.UpdatedAt,
			MessageCount: len(session.Messages),
		})
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})

	return sessions, nil
}

// Delete removes a session file.
func (s *SessionStore) Delete(id string) error {
	path := filepath.Join(s.sessionsDir, id+".json")
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// Add appends a message and persists the session. The first user message
// also names the session.
func (s *Session) Add(role, content string) {
	s.Messages = append(s.Messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})

	if s.Name == "" && role == model.RoleUser {
		s.Name = GenerateSessionName(content)
	}

	s.save()
}

// MessagesForAPI converts stored messages to API form, keeping at most the
// last max messages when max > 0.
func (s *Session) MessagesForAPI(max int) []model.Message {
	msgs := s.Messages
	if max > 0 && len(msgs) > max {
		msgs = msgs[len(msgs)-max:]
	}

	out := make([]model.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, model.Message{
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}
	return out
}

// Compact replaces everything but the last keepLast messages with a single
// summary marker. Returns the number of messages removed.
func (s *Session) Compact(keepLast int) int {
	if len(s.Messages) <= keepLast {
		return 0
	}

	removed := len(s.Messages) - keepLast
	summary := Message{
		Role:      model.RoleSystem,
		Content:   fmt.Sprintf("[Previous conversation summary: %d messages discussing various topics]", removed),
		Timestamp: time.Now(),
	}

	kept := make([]Message, 0, keepLast+1)
	kept = append(kept, summary)
	kept = append(kept, s.Messages[len(s.Messages)-keepLast:]...)
	s.Messages = kept

	s.save()
	return removed
}

// Rewind removes the last n messages. Returns how many were removed: n, or
// zero when the session holds fewer than n messages.
func (s *Session) Rewind(n int) int {
	if len(s.Messages) < n {
		return 0
	}
	s.Messages = s.Messages[:len(s.Messages)-n]
	s.save()
	return n
}

// Clear removes all messages.
func (s *Session) Clear() {
	s.Messages = nil
	s.save()
}

func (s *Session) save() {
	if s.store == nil {
		return
	}
	_ = s.store.Save(s)
}

// GenerateSessionName derives a session name from the first user message.
func GenerateSessionName(firstMessage string) string {
	if firstMessage == "" {
		return fmt.Sprintf("Session %s", time.Now().Format("Jan 2, 3:04 PM"))
	}

	name := firstMessage
	if len(name) > 30 {
		name = name[:30] + "..."
	}

	name = strings.ReplaceAll(name, "\n", " ")
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Sprintf("Session %s", time.Now().Format("Jan 2, 3:04 PM"))
	}

	return name
}
