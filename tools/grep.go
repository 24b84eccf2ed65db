package tools

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"atui/config"
)

const (
	maxGrepFiles   = 100
	maxGrepMatches = 500
)

// GrepTool searches files for a regex pattern.
type GrepTool struct{}

func (t *GrepTool) Descriptor() mcptypes.Tool {
	return mcptypes.NewTool("grep",
		mcptypes.WithDescription("Search for a pattern in files using regex."),
		mcptypes.WithString("pattern",
			mcptypes.Required(),
			mcptypes.Description("Regex pattern to search for"),
		),
		mcptypes.WithString("path",
			mcptypes.Description("File or directory to search in"),
		),
		mcptypes.WithString("glob",
			mcptypes.Description("Glob pattern to filter files (e.g., '*.go')"),
		),
		mcptypes.WithBoolean("case_insensitive",
			mcptypes.Description("Case insensitive search"),
		),
	)
}

func (t *GrepTool) Execute(ctx context.Context, args map[string]any) Result {
	if res, ok := checkRequired(t.Descriptor(), args); !ok {
		return res
	}

	pattern := stringArg(args, "pattern", "")
	basePath := stringArg(args, "path", "")
	globFilter := stringArg(args, "glob", "")
	caseInsensitive := boolArg(args, "case_insensitive", false)

	if basePath == "" {
		basePath, _ = os.Getwd()
	} else {
		basePath = config.ExpandPath(basePath)
	}

	expr := pattern
	if caseInsensitive {
		expr = "(?i)" + expr
	}
	regex, err := regexp.Compile(expr)
	if err != nil {
		return Fail("Invalid regex pattern: %v", err)
	}

	files, err := grepTargets(basePath, globFilter)
	if err != nil {
		return Fail("%v", err)
	}

	var results []string
	for _, file := range files {
		if len(results) >= maxGrepMatches {
			break
		}
		searchFile(file, regex, &results)
	}

	if len(results) == 0 {
		return Ok(fmt.Sprintf("No matches found for pattern: %s", pattern))
	}

	out := strings.Join(results, "\n")
	if len(results) >= maxGrepMatches {
		out += fmt.Sprintf("\n...(truncated at %d matches)", maxGrepMatches)
	}
	return Ok(out)
}

// grepTargets collects at most maxGrepFiles regular files under base,
// optionally filtered by a base-name glob.
func grepTargets(base, globFilter string) ([]string, error) {
	info, err := os.Stat(base)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{base}, nil
	}

	var files []string
	walkErr := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		if len(files) >= maxGrepFiles {
			return filepath.SkipAll
		}
		if globFilter != "" {
			ok, matchErr := filepath.Match(globFilter, d.Name())
			if matchErr != nil || !ok {
				return matchErr
			}
		}
		files = append(files, path)
		return nil
	})
	return files, walkErr
}

func searchFile(path string, regex *regexp.Regexp, results *[]string) {
	f, err := os.Open(path)
	if err != nil {
		return // unreadable files are skipped, not reported
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if regex.MatchString(line) {
			*results = append(*results, fmt.Sprintf("%s:%d: %s", path, lineNum, strings.TrimRight(line, "\r")))
			if len(*results) >= maxGrepMatches {
				return
			}
		}
	}
}
