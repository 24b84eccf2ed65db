package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SearchHit is one indexed message matching a search query.
type SearchHit struct {
	SessionID string
	Role      string
	Preview   string
	CreatedAt time.Time
}

// SearchIndex is a sqlite-backed index over session messages, serving
// cross-session search without loading every session file.
type SearchIndex struct {
	db *sql.DB
}

func NewSearchIndex(dataDir string) (*SearchIndex, error) {
	dbPath := filepath.Join(dataDir, "messages.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open search index: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping search index: %w", err)
	}

	ix := &SearchIndex{db: db}

	if err := ix.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize search index: %w", err)
	}

	return ix, nil
}

func (ix *SearchIndex) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id);
	`

	_, err := ix.db.Exec(schema)
	return err
}

// IndexMessage records one message for later search.
func (ix *SearchIndex) IndexMessage(sessionID, role, content string, createdAt time.Time) error {
	query := `
	INSERT INTO messages (session_id, role, content, created_at)
	VALUES (?, ?, ?, ?)
	`

	_, err := ix.db.Exec(query, sessionID, role, content, createdAt)
	return err
}

// Search returns up to limit messages containing the query, newest first.
// System messages are excluded; matching is case-insensitive.
func (ix *SearchIndex) Search(query string, limit int) ([]SearchHit, error) {
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := ix.db.Query(`
	SELECT session_id, role, content, created_at
	FROM messages
	WHERE role != 'system' AND content LIKE '%' || ? || '%' COLLATE NOCASE
	ORDER BY created_at DESC
	LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hits []SearchHit
	for rows.Next() {
		var hit SearchHit
		var content string
		if err := rows.Scan(&hit.SessionID, &hit.Role, &content, &hit.CreatedAt); err != nil {
			continue
		}
		hit.Preview = previewOf(content)
		hits = append(hits, hit)
	}

	return hits, rows.Err()
}

// DeleteSession drops a session's messages from the index.
func (ix *SearchIndex) DeleteSession(sessionID string) error {
	_, err := ix.db.Exec(`DELETE FROM messages WHERE session_id = ?`, sessionID)
	return err
}

func (ix *SearchIndex) Close() error {
	if ix.db != nil {
		return ix.db.Close()
	}
	return nil
}

func previewOf(content string) string {
	if len(content) > 100 {
		return content[:100] + "..."
	}
	return content
}
