package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGlobToolSimplePattern(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.go", "package a")
	writeTestFile(t, dir, "b.go", "package b")
	writeTestFile(t, dir, "c.txt", "text")

	tool := &GlobTool{}
	res := tool.Execute(context.Background(), map[string]any{
		"pattern": "*.go",
		"path":    dir,
	})

	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if !strings.Contains(res.Content, "a.go") || !strings.Contains(res.Content, "b.go") {
		t.Errorf("content = %q", res.Content)
	}
	if strings.Contains(res.Content, "c.txt") {
		t.Errorf("non-matching file listed: %q", res.Content)
	}
}

func TestGlobToolDoubleStar(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "pkg", "inner")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, dir, "top.go", "package top")
	writeTestFile(t, sub, "deep.go", "package deep")
	writeTestFile(t, sub, "deep.txt", "text")

	tool := &GlobTool{}
	res := tool.Execute(context.Background(), map[string]any{
		"pattern": "**/*.go",
		"path":    dir,
	})

	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if !strings.Contains(res.Content, "deep.go") {
		t.Errorf("recursive match missing: %q", res.Content)
	}
	if !strings.Contains(res.Content, "top.go") {
		t.Errorf("top-level match missing: %q", res.Content)
	}
	if strings.Contains(res.Content, "deep.txt") {
		t.Errorf("non-matching file listed: %q", res.Content)
	}
}

func TestGlobToolNewestFirst(t *testing.T) {
	dir := t.TempDir()
	older := writeTestFile(t, dir, "older.go", "x")
	newer := writeTestFile(t, dir, "newer.go", "x")

	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatal(err)
	}

	tool := &GlobTool{}
	res := tool.Execute(context.Background(), map[string]any{
		"pattern": "*.go",
		"path":    dir,
	})

	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	lines := strings.Split(res.Content, "\n")
	if len(lines) != 2 || lines[0] != newer || lines[1] != older {
		t.Errorf("order = %v, want [%s %s]", lines, newer, older)
	}
}

func TestGlobToolNoMatches(t *testing.T) {
	tool := &GlobTool{}
	res := tool.Execute(context.Background(), map[string]any{
		"pattern": "*.nothing",
		"path":    t.TempDir(),
	})

	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.Content != "No files found matching pattern" {
		t.Errorf("content = %q", res.Content)
	}
}

func TestGlobToolResultCap(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < maxGlobResults+20; i++ {
		writeTestFile(t, dir, fmt.Sprintf("f%03d.go", i), "x")
	}

	tool := &GlobTool{}
	res := tool.Execute(context.Background(), map[string]any{
		"pattern": "*.go",
		"path":    dir,
	})

	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if !strings.Contains(res.Content, "...(showing first 100 of 120 matches)") {
		t.Errorf("cap notice missing: %q", res.Content[len(res.Content)-80:])
	}
}
