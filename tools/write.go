package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"atui/config"
)

// WriteTool writes content to a file, creating parent directories as needed.
type WriteTool struct{}

func (t *WriteTool) Descriptor() mcptypes.Tool {
	return mcptypes.NewTool("write_file",
		mcptypes.WithDescription("Write content to a file. Creates the file if it doesn't exist."),
		mcptypes.WithString("path",
			mcptypes.Required(),
			mcptypes.Description("The absolute path to the file to write"),
		),
		mcptypes.WithString("content",
			mcptypes.Required(),
			mcptypes.Description("The content to write to the file"),
		),
	)
}

func (t *WriteTool) Execute(ctx context.Context, args map[string]any) Result {
	if res, ok := checkRequired(t.Descriptor(), args); !ok {
		return res
	}

	path := config.ExpandPath(stringArg(args, "path", ""))
	content := stringArg(args, "content", "")

	if parent := filepath.Dir(path); parent != "" {
		if err := os.MkdirAll(parent, 0755); err != nil {
			return Fail("%v", err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return Fail("%v", err)
	}

	return Ok(fmt.Sprintf("Successfully wrote %d bytes to %s", len(content), path))
}
