package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontMatter holds the YAML header of an external agent or skill file.
type frontMatter struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Keywords     []string `yaml:"keywords"`
	RequiresArgs bool     `yaml:"requires_args"`
}

const frontMatterDelimiter = "---"

// parseFrontMatter splits a markdown document into its YAML front matter
// and body. A document without front matter returns an empty header and
// the full text as body.
func parseFrontMatter(data []byte) (frontMatter, string, error) {
	var fm frontMatter

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if !strings.HasPrefix(text, frontMatterDelimiter+"\n") {
		return fm, strings.TrimSpace(text), nil
	}

	rest := text[len(frontMatterDelimiter)+1:]
	idx := strings.Index(rest, "\n"+frontMatterDelimiter)
	if idx < 0 {
		return fm, "", fmt.Errorf("unterminated front matter")
	}

	header := rest[:idx]
	body := rest[idx+len(frontMatterDelimiter)+1:]
	if i := strings.Index(body, "\n"); i >= 0 {
		body = body[i+1:]
	} else {
		body = ""
	}

	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return fm, "", fmt.Errorf("invalid front matter: %w", err)
	}

	return fm, strings.TrimSpace(body), nil
}
