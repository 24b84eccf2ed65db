package storage

import (
	"testing"
	"time"
)

func newTestIndex(t *testing.T) *SearchIndex {
	t.Helper()
	ix, err := NewSearchIndex(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create index: %v", err)
	}
	t.Cleanup(func() { ix.Close() })
	return ix
}

func TestSearchIndexBasicSearch(t *testing.T) {
	ix := newTestIndex(t)
	now := time.Now()

	if err := ix.IndexMessage("s1", "user", "how do goroutines work", now); err != nil {
		t.Fatalf("index failed: %v", err)
	}
	if err := ix.IndexMessage("s1", "assistant", "goroutines are lightweight threads", now.Add(time.Second)); err != nil {
		t.Fatalf("index failed: %v", err)
	}
	if err := ix.IndexMessage("s2", "user", "unrelated question", now); err != nil {
		t.Fatalf("index failed: %v", err)
	}

	hits, err := ix.Search("goroutines", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
	// Newest first
	if hits[0].Role != "assistant" {
		t.Errorf("first hit role = %s, want assistant", hits[0].Role)
	}
	if hits[0].SessionID != "s1" {
		t.Errorf("session = %s", hits[0].SessionID)
	}
}

func TestSearchIndexCaseInsensitive(t *testing.T) {
	ix := newTestIndex(t)
	if err := ix.IndexMessage("s1", "user", "Tell me about SQLite", time.Now()); err != nil {
		t.Fatal(err)
	}

	hits, err := ix.Search("sqlite", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Errorf("hits = %d, want 1", len(hits))
	}
}

func TestSearchIndexExcludesSystemMessages(t *testing.T) {
	ix := newTestIndex(t)
	if err := ix.IndexMessage("s1", "system", "secret system prompt", time.Now()); err != nil {
		t.Fatal(err)
	}

	hits, err := ix.Search("secret", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Errorf("system messages should not be searchable, got %d hits", len(hits))
	}
}

func TestSearchIndexEmptyQuery(t *testing.T) {
	ix := newTestIndex(t)
	hits, err := ix.Search("", 10)
	if err != nil {
		t.Fatal(err)
	}
	if hits != nil {
		t.Errorf("empty query should return nothing, got %v", hits)
	}
}

func TestSearchIndexPreviewTruncation(t *testing.T) {
	ix := newTestIndex(t)

	long := "needle "
	for len(long) < 300 {
		long += "padding words to make this message very long "
	}
	if err := ix.IndexMessage("s1", "user", long, time.Now()); err != nil {
		t.Fatal(err)
	}

	hits, err := ix.Search("needle", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
	if len(hits[0].Preview) != 103 {
		t.Errorf("preview length = %d, want 103 (100 chars plus ellipsis)", len(hits[0].Preview))
	}
}

func TestSearchIndexDeleteSession(t *testing.T) {
	ix := newTestIndex(t)
	now := time.Now()
	if err := ix.IndexMessage("gone", "user", "findme", now); err != nil {
		t.Fatal(err)
	}
	if err := ix.IndexMessage("kept", "user", "findme too", now); err != nil {
		t.Fatal(err)
	}

	if err := ix.DeleteSession("gone"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	hits, err := ix.Search("findme", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].SessionID != "kept" {
		t.Errorf("hits = %+v", hits)
	}
}
