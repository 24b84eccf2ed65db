package mcp

import (
	"testing"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

func TestFlattenContent(t *testing.T) {
	content := []mcptypes.Content{
		mcptypes.TextContent{Type: "text", Text: "first"},
		mcptypes.ImageContent{Type: "image", MIMEType: "image/png"},
		mcptypes.TextContent{Type: "text", Text: "second"},
	}

	got := FlattenContent(content)
	want := "first\n[Image: image/png]\nsecond"
	if got != want {
		t.Errorf("FlattenContent = %q, want %q", got, want)
	}
}

func TestFlattenContentEmpty(t *testing.T) {
	if got := FlattenContent(nil); got != "" {
		t.Errorf("FlattenContent(nil) = %q, want empty", got)
	}
}

func TestConvertToolsToAnthropicFormat(t *testing.T) {
	tools := []mcptypes.Tool{
		mcptypes.NewTool("read_file",
			mcptypes.WithDescription("Read a file"),
			mcptypes.WithString("path", mcptypes.Required()),
		),
	}

	converted := ConvertToolsToAnthropicFormat(tools)
	if len(converted) != 1 {
		t.Fatalf("converted = %d tools, want 1", len(converted))
	}

	tool := converted[0].OfTool
	if tool == nil {
		t.Fatal("expected OfTool to be set")
	}
	if tool.Name != "read_file" {
		t.Errorf("name = %q", tool.Name)
	}
	if tool.Description.Value != "Read a file" {
		t.Errorf("description = %q", tool.Description.Value)
	}
	if len(tool.InputSchema.Required) != 1 || tool.InputSchema.Required[0] != "path" {
		t.Errorf("required = %v", tool.InputSchema.Required)
	}
	props, ok := tool.InputSchema.Properties.(map[string]any)
	if !ok {
		t.Fatalf("properties have unexpected type %T", tool.InputSchema.Properties)
	}
	if _, ok := props["path"]; !ok {
		t.Error("path property missing from schema")
	}
}
