package tools

import (
	"context"
	"strings"
	"testing"
)

func TestBashToolEcho(t *testing.T) {
	tool := &BashTool{}
	res := tool.Execute(context.Background(), map[string]any{
		"command": "echo hello world",
	})

	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if !strings.Contains(res.Content, "hello world") {
		t.Errorf("content = %q", res.Content)
	}
}

func TestBashToolStderrMarker(t *testing.T) {
	tool := &BashTool{}
	res := tool.Execute(context.Background(), map[string]any{
		"command": "echo out; echo err 1>&2",
	})

	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if !strings.Contains(res.Content, "out") {
		t.Errorf("stdout missing: %q", res.Content)
	}
	if !strings.Contains(res.Content, "[stderr]") {
		t.Errorf("stderr marker missing: %q", res.Content)
	}
	if !strings.Contains(res.Content, "err") {
		t.Errorf("stderr content missing: %q", res.Content)
	}
}

func TestBashToolExitCode(t *testing.T) {
	tool := &BashTool{}
	res := tool.Execute(context.Background(), map[string]any{
		"command": "echo partial; exit 3",
	})

	if !res.IsError {
		t.Fatal("expected error for non-zero exit")
	}
	if !strings.Contains(res.Error, "Command exited with code 3") {
		t.Errorf("error = %q", res.Error)
	}
	// Output produced before the failure is preserved
	if !strings.Contains(res.Content, "partial") {
		t.Errorf("content = %q", res.Content)
	}
}

func TestBashToolTimeout(t *testing.T) {
	tool := &BashTool{}
	res := tool.Execute(context.Background(), map[string]any{
		"command": "sleep 5",
		"timeout": float64(1),
	})

	if !res.IsError {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(res.Error, "timed out after 1 seconds") {
		t.Errorf("error = %q", res.Error)
	}
}

func TestBashToolDenylist(t *testing.T) {
	tool := &BashTool{}

	blocked := []string{
		"rm -rf /",
		"rm   -rf   /",
		"cat /etc/shadow",
		":(){ :|:& };:",
		"mkfs.ext4 /dev/sda1",
	}

	for _, cmd := range blocked {
		res := tool.Execute(context.Background(), map[string]any{"command": cmd})
		if !res.IsError {
			t.Errorf("command %q should be blocked", cmd)
			continue
		}
		if !strings.Contains(res.Error, "Blocked dangerous command pattern") {
			t.Errorf("command %q: error = %q", cmd, res.Error)
		}
	}

	// Benign commands mentioning similar words still run
	res := tool.Execute(context.Background(), map[string]any{"command": "echo rm -rf is dangerous"})
	if res.IsError {
		t.Errorf("benign command blocked: %s", res.Error)
	}
}
