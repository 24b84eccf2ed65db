package tools

import (
	"context"
	"fmt"
	"os"
	"strings"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"atui/config"
)

// EditTool replaces text in a file. With multiple occurrences it refuses to
// guess: the caller must either pass replace_all or provide more context.
type EditTool struct{}

func (t *EditTool) Descriptor() mcptypes.Tool {
	return mcptypes.NewTool("edit_file",
		mcptypes.WithDescription("Edit a file by replacing old_string with new_string."),
		mcptypes.WithString("path",
			mcptypes.Required(),
			mcptypes.Description("The absolute path to the file to edit"),
		),
		mcptypes.WithString("old_string",
			mcptypes.Required(),
			mcptypes.Description("The text to replace"),
		),
		mcptypes.WithString("new_string",
			mcptypes.Required(),
			mcptypes.Description("The replacement text"),
		),
		mcptypes.WithBoolean("replace_all",
			mcptypes.Description("Replace all occurrences (default: false)"),
		),
	)
}

func (t *EditTool) Execute(ctx context.Context, args map[string]any) Result {
	if res, ok := checkRequired(t.Descriptor(), args); !ok {
		return res
	}

	path := config.ExpandPath(stringArg(args, "path", ""))
	oldString := stringArg(args, "old_string", "")
	newString := stringArg(args, "new_string", "")
	replaceAll := boolArg(args, "replace_all", false)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Fail("File not found: %s", path)
		}
		return Fail("%v", err)
	}
	content := string(data)

	count := strings.Count(content, oldString)
	if count == 0 {
		preview := oldString
		if len(preview) > 50 {
			preview = preview[:50]
		}
		return Fail("String not found in file: %s...", preview)
	}
	if count > 1 && !replaceAll {
		return Fail("String found %d times. Use replace_all=true or provide more context.", count)
	}

	var newContent string
	replaced := count
	if replaceAll {
		newContent = strings.ReplaceAll(content, oldString, newString)
	} else {
		newContent = strings.Replace(content, oldString, newString, 1)
		replaced = 1
	}

	if err := os.WriteFile(path, []byte(newContent), 0644); err != nil {
		return Fail("%v", err)
	}

	return Ok(fmt.Sprintf("Successfully edited %s (%d replacement(s))", path, replaced))
}
