package tools

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"atui/config"
)

const maxGlobResults = 100

// GlobTool finds files matching a glob pattern, newest first.
type GlobTool struct{}

func (t *GlobTool) Descriptor() mcptypes.Tool {
	return mcptypes.NewTool("glob",
		mcptypes.WithDescription("Find files matching a glob pattern."),
		mcptypes.WithString("pattern",
			mcptypes.Required(),
			mcptypes.Description("Glob pattern (e.g., '**/*.go', 'src/**/*.ts')"),
		),
		mcptypes.WithString("path",
			mcptypes.Description("Base directory to search in"),
		),
	)
}

func (t *GlobTool) Execute(ctx context.Context, args map[string]any) Result {
	if res, ok := checkRequired(t.Descriptor(), args); !ok {
		return res
	}

	pattern := stringArg(args, "pattern", "")
	basePath := stringArg(args, "path", "")
	if basePath == "" {
		basePath, _ = os.Getwd()
	} else {
		basePath = config.ExpandPath(basePath)
	}

	matches, err := globMatch(basePath, pattern)
	if err != nil {
		return Fail("%v", err)
	}

	// Sort by mtime, newest first. Files deleted between match and stat
	// sort as oldest.
	mtime := func(path string) int64 {
		info, err := os.Stat(path)
		if err != nil {
			return 0
		}
		return info.ModTime().UnixNano()
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return mtime(matches[i]) > mtime(matches[j])
	})

	if len(matches) == 0 {
		return Ok("No files found matching pattern")
	}

	total := len(matches)
	if total > maxGlobResults {
		matches = matches[:maxGlobResults]
		return Ok(strings.Join(matches, "\n") +
			fmt.Sprintf("\n...(showing first %d of %d matches)", maxGlobResults, total))
	}

	return Ok(strings.Join(matches, "\n"))
}

// globMatch resolves a glob pattern under base. Patterns without "**" go
// straight to filepath.Glob; "**" patterns walk the tree and match path
// segments recursively.
func globMatch(base, pattern string) ([]string, error) {
	if !strings.Contains(pattern, "**") {
		return filepath.Glob(filepath.Join(base, pattern))
	}

	// Validate the pattern syntax up front so bad patterns error instead
	// of silently matching nothing.
	if _, err := filepath.Match(strings.ReplaceAll(pattern, "**", "*"), ""); err != nil {
		return nil, err
	}

	patSegs := strings.Split(filepath.ToSlash(pattern), "/")

	var matches []string
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		rel, relErr := filepath.Rel(base, path)
		if relErr != nil || rel == "." {
			return nil
		}
		if matchSegments(patSegs, strings.Split(filepath.ToSlash(rel), "/")) {
			matches = append(matches, path)
		}
		return nil
	})
	return matches, err
}

// matchSegments matches path segments against pattern segments where "**"
// spans zero or more segments.
func matchSegments(pat, segs []string) bool {
	if len(pat) == 0 {
		return len(segs) == 0
	}
	if pat[0] == "**" {
		if matchSegments(pat[1:], segs) {
			return true
		}
		if len(segs) > 0 {
			return matchSegments(pat, segs[1:])
		}
		return false
	}
	if len(segs) == 0 {
		return false
	}
	ok, err := filepath.Match(pat[0], segs[0])
	if err != nil || !ok {
		return false
	}
	return matchSegments(pat[1:], segs[1:])
}
