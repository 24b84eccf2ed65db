package tools

import (
	"context"
	"fmt"
	"strings"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Result is the uniform result envelope every tool execution returns.
// IsError is true exactly when Error is set; Content is always meaningful,
// even for failures that produced partial output (e.g. a failing command).
type Result struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
	IsError bool   `json:"is_error"`
}

// Ok builds a successful result.
func Ok(content string) Result {
	return Result{Success: true, Content: content}
}

// Fail builds a failed result with an empty content.
func Fail(format string, args ...any) Result {
	return Result{Error: fmt.Sprintf(format, args...), IsError: true}
}

// Tool is implemented by every local tool. Descriptor exposes the tool's
// schema in MCP form so local and remote tools share one catalog type.
type Tool interface {
	Descriptor() mcptypes.Tool
	Execute(ctx context.Context, args map[string]any) Result
}

// checkRequired validates that every required parameter of the descriptor
// is present in args. Returns a failure Result and false when one is missing.
func checkRequired(desc mcptypes.Tool, args map[string]any) (Result, bool) {
	var missing []string
	for _, name := range desc.InputSchema.Required {
		if _, ok := args[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return Fail("Missing required parameters: %s", strings.Join(missing, ", ")), false
	}
	return Result{}, true
}

// Argument coercion helpers. Tool arguments arrive as decoded JSON, so
// numbers are float64 and everything is loosely typed.

func stringArg(args map[string]any, key, fallback string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return fallback
}

func intArg(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return fallback
}

func boolArg(args map[string]any, key string, fallback bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return fallback
}
