package storage

import (
	"testing"
)

func TestHistoryAddAndAll(t *testing.T) {
	h, err := NewHistoryManager(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create history: %v", err)
	}

	entries := []string{"first prompt", "second prompt", "third prompt"}
	for _, e := range entries {
		if err := h.Add(e); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	got, err := h.All(0)
	if err != nil {
		t.Fatalf("all failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("entries = %d, want 3", len(got))
	}
	for i, want := range entries {
		if got[i] != want {
			t.Errorf("entry %d = %q, want %q", i, got[i], want)
		}
	}
}

func TestHistoryLimitKeepsNewest(t *testing.T) {
	h, err := NewHistoryManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range []string{"a", "b", "c", "d"} {
		if err := h.Add(e); err != nil {
			t.Fatal(err)
		}
	}

	got, err := h.All(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "c" || got[1] != "d" {
		t.Errorf("got = %v, want [c d]", got)
	}
}

func TestHistoryFlattensNewlines(t *testing.T) {
	h, err := NewHistoryManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Add("multi\nline\nprompt"); err != nil {
		t.Fatal(err)
	}

	got, err := h.All(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "multi line prompt" {
		t.Errorf("got = %v", got)
	}
}

func TestHistorySkipsEmptyEntries(t *testing.T) {
	h, err := NewHistoryManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Add("   "); err != nil {
		t.Fatal(err)
	}

	got, err := h.All(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got = %v, want empty", got)
	}
}

func TestHistoryClear(t *testing.T) {
	h, err := NewHistoryManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Add("something"); err != nil {
		t.Fatal(err)
	}
	if err := h.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	// Clearing again is not an error.
	if err := h.Clear(); err != nil {
		t.Fatalf("second clear failed: %v", err)
	}

	got, err := h.All(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got = %v, want empty", got)
	}
}
