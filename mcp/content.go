package mcp

import (
	"fmt"
	"strings"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// FlattenContent joins heterogeneous MCP result content into one text
// value. Text segments pass through; non-text segments become readable
// placeholders so the model still learns they exist.
func FlattenContent(content []mcptypes.Content) string {
	var parts []string
	for _, item := range content {
		switch c := item.(type) {
		case mcptypes.TextContent:
			parts = append(parts, c.Text)
		case *mcptypes.TextContent:
			parts = append(parts, c.Text)
		case mcptypes.ImageContent:
			parts = append(parts, fmt.Sprintf("[Image: %s]", c.MIMEType))
		case *mcptypes.ImageContent:
			parts = append(parts, fmt.Sprintf("[Image: %s]", c.MIMEType))
		}
	}
	return strings.Join(parts, "\n")
}
