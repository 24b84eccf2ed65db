package tools

import (
	"context"
	"fmt"
	"strings"
	"testing"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

type fakeRemote struct {
	calls []string
	fail  bool
}

func (f *fakeRemote) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	f.calls = append(f.calls, name)
	if f.fail {
		return "", fmt.Errorf("server unavailable")
	}
	return "remote result", nil
}

func (f *fakeRemote) Tools() []mcptypes.Tool {
	return []mcptypes.Tool{mcptypes.NewTool("mcp__srv__thing")}
}

func TestRegistryLocalDispatch(t *testing.T) {
	r := NewRegistry()
	RegisterLocalTools(r)

	res := r.Execute(context.Background(), "bash", map[string]any{"command": "echo hi"})
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if !strings.Contains(res.Content, "hi") {
		t.Errorf("content = %q", res.Content)
	}
}

func TestRegistryUnknownTool(t *testing.T) {
	r := NewRegistry()
	res := r.Execute(context.Background(), "does_not_exist", nil)

	if !res.IsError {
		t.Fatal("expected error envelope for unknown tool")
	}
	if res.Error != "Unknown tool: does_not_exist" {
		t.Errorf("error = %q", res.Error)
	}
}

func TestRegistryRemoteDispatch(t *testing.T) {
	r := NewRegistry()
	remote := &fakeRemote{}
	r.SetRemote(remote)

	res := r.Execute(context.Background(), "mcp__srv__thing", map[string]any{"x": 1})
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.Content != "remote result" {
		t.Errorf("content = %q", res.Content)
	}
	if len(remote.calls) != 1 || remote.calls[0] != "mcp__srv__thing" {
		t.Errorf("calls = %v", remote.calls)
	}
}

func TestRegistryRemoteErrorBecomesEnvelope(t *testing.T) {
	r := NewRegistry()
	r.SetRemote(&fakeRemote{fail: true})

	res := r.Execute(context.Background(), "mcp__srv__thing", nil)
	if !res.IsError {
		t.Fatal("expected error envelope")
	}
	if !strings.Contains(res.Error, "server unavailable") {
		t.Errorf("error = %q", res.Error)
	}
}

func TestRegistryCatalogOrder(t *testing.T) {
	r := NewRegistry()
	RegisterLocalTools(r)
	r.SetRemote(&fakeRemote{})

	names := make([]string, 0)
	for _, tool := range r.Tools() {
		names = append(names, tool.Name)
	}

	want := []string{"read_file", "write_file", "edit_file", "bash", "glob", "grep", "mcp__srv__thing"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestRegistryReregisterKeepsOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(&ReadTool{})
	r.Register(&BashTool{})
	r.Register(&ReadTool{})

	tools := r.Tools()
	if len(tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(tools))
	}
	if tools[0].Name != "read_file" || tools[1].Name != "bash" {
		t.Errorf("order = [%s %s]", tools[0].Name, tools[1].Name)
	}
}
