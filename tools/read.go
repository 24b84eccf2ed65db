package tools

import (
	"context"
	"fmt"
	"os"
	"strings"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"atui/config"
)

// ReadTool reads file contents with 1-based line numbering.
type ReadTool struct{}

func (t *ReadTool) Descriptor() mcptypes.Tool {
	return mcptypes.NewTool("read_file",
		mcptypes.WithDescription("Read the contents of a file. Returns the file content as text."),
		mcptypes.WithString("path",
			mcptypes.Required(),
			mcptypes.Description("The absolute path to the file to read"),
		),
		mcptypes.WithNumber("offset",
			mcptypes.Description("Line number to start reading from (1-based)"),
		),
		mcptypes.WithNumber("limit",
			mcptypes.Description("Maximum number of lines to read"),
		),
	)
}

func (t *ReadTool) Execute(ctx context.Context, args map[string]any) Result {
	if res, ok := checkRequired(t.Descriptor(), args); !ok {
		return res
	}

	path := config.ExpandPath(stringArg(args, "path", ""))
	offset := intArg(args, "offset", 1)
	limit := intArg(args, "limit", 0)

	info, err := os.Stat(path)
	if err != nil {
		return Fail("File not found: %s", path)
	}
	if info.IsDir() {
		return Fail("Path is a directory: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Fail("%v", err)
	}

	lines := strings.Split(string(data), "\n")
	// A trailing newline yields one empty final element; drop it
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	start := offset - 1
	if start < 0 {
		start = 0
	}
	if start > len(lines) {
		start = len(lines)
	}
	lines = lines[start:]

	if limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%6d\t%s", offset+i, strings.TrimRight(line, "\r"))
	}

	return Ok(b.String())
}
