package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestReadTool(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "sample.txt", "alpha\nbravo\ncharlie\n")

	tool := &ReadTool{}

	tests := []struct {
		name     string
		args     map[string]any
		wantErr  bool
		contains []string
		absent   []string
	}{
		{
			name:     "whole file with line numbers",
			args:     map[string]any{"path": path},
			contains: []string{"     1\talpha", "     2\tbravo", "     3\tcharlie"},
		},
		{
			name:     "offset and limit",
			args:     map[string]any{"path": path, "offset": float64(2), "limit": float64(1)},
			contains: []string{"     2\tbravo"},
			absent:   []string{"alpha", "charlie"},
		},
		{
			name:    "missing file",
			args:    map[string]any{"path": filepath.Join(dir, "nope.txt")},
			wantErr: true,
		},
		{
			name:    "directory",
			args:    map[string]any{"path": dir},
			wantErr: true,
		},
		{
			name:    "missing required path",
			args:    map[string]any{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tool.Execute(context.Background(), tt.args)
			if res.IsError != tt.wantErr {
				t.Fatalf("IsError = %v, want %v (error: %s)", res.IsError, tt.wantErr, res.Error)
			}
			for _, want := range tt.contains {
				if !strings.Contains(res.Content, want) {
					t.Errorf("content missing %q:\n%s", want, res.Content)
				}
			}
			for _, absent := range tt.absent {
				if strings.Contains(res.Content, absent) {
					t.Errorf("content should not contain %q:\n%s", absent, res.Content)
				}
			}
		})
	}
}

func TestWriteToolCreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deep", "out.txt")

	tool := &WriteTool{}
	res := tool.Execute(context.Background(), map[string]any{
		"path":    path,
		"content": "hello",
	})

	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Error)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("written file unreadable: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q, want %q", data, "hello")
	}
	if !strings.Contains(res.Content, "5 bytes") {
		t.Errorf("result should report byte count: %s", res.Content)
	}
}

func TestEditTool(t *testing.T) {
	tool := &EditTool{}

	t.Run("single replacement", func(t *testing.T) {
		path := writeTestFile(t, t.TempDir(), "f.txt", "one two three")
		res := tool.Execute(context.Background(), map[string]any{
			"path":       path,
			"old_string": "two",
			"new_string": "2",
		})
		if res.IsError {
			t.Fatalf("unexpected error: %s", res.Error)
		}

		data, _ := os.ReadFile(path)
		if string(data) != "one 2 three" {
			t.Errorf("file = %q", data)
		}
	})

	t.Run("string not found", func(t *testing.T) {
		path := writeTestFile(t, t.TempDir(), "f.txt", "one two three")
		res := tool.Execute(context.Background(), map[string]any{
			"path":       path,
			"old_string": "missing",
			"new_string": "x",
		})
		if !res.IsError {
			t.Fatal("expected error for missing string")
		}
		if !strings.Contains(res.Error, "String not found in file") {
			t.Errorf("error = %q", res.Error)
		}
	})

	t.Run("ambiguous without replace_all", func(t *testing.T) {
		path := writeTestFile(t, t.TempDir(), "f.txt", "a b a b a")
		res := tool.Execute(context.Background(), map[string]any{
			"path":       path,
			"old_string": "a",
			"new_string": "z",
		})
		if !res.IsError {
			t.Fatal("expected error for ambiguous string")
		}
		if !strings.Contains(res.Error, "String found 3 times") {
			t.Errorf("error = %q", res.Error)
		}
	})

	t.Run("replace_all", func(t *testing.T) {
		path := writeTestFile(t, t.TempDir(), "f.txt", "a b a b a")
		res := tool.Execute(context.Background(), map[string]any{
			"path":        path,
			"old_string":  "a",
			"new_string":  "z",
			"replace_all": true,
		})
		if res.IsError {
			t.Fatalf("unexpected error: %s", res.Error)
		}

		data, _ := os.ReadFile(path)
		if string(data) != "z b z b z" {
			t.Errorf("file = %q", data)
		}
	})
}
