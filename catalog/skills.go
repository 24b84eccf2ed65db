package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"atui/config"
)

// Skill is a named prompt template. Templates may reference {args}, filled
// from whatever follows the skill name on the command line.
type Skill struct {
	Name         string
	Description  string
	Template     string
	RequiresArgs bool
}

// Render expands the template with the given arguments.
func (s Skill) Render(args string) string {
	prompt := strings.ReplaceAll(s.Template, "{args}", strings.TrimSpace(args))
	return strings.TrimSpace(prompt)
}

var builtinSkills = []Skill{
	{
		Name:        "commit",
		Description: "Stage and commit current changes with a good message",
		Template:    "Look at the current git status and diff, stage the relevant changes, and create a commit with a clear, conventional message describing what changed and why. {args}",
	},
	{
		Name:        "review",
		Description: "Review recent changes or a given file",
		Template:    "Review the following code for bugs, unclear logic, and missing error handling. If no target is given, review the uncommitted changes in this repository. Target: {args}",
	},
	{
		Name:        "test",
		Description: "Run the test suite and fix failures",
		Template:    "Run the project's test suite. If any tests fail, diagnose each failure down to root cause and fix it, then re-run to confirm. {args}",
	},
	{
		Name:        "docs",
		Description: "Write or update documentation",
		Template:    "Write or update documentation for this project. Check the README and any docs directory, find what is missing or stale, and bring it up to date with the current code. {args}",
	},
	{
		Name:        "refactor",
		Description: "Refactor code without changing behavior",
		Template:    "Refactor the following code to improve clarity and structure without changing behavior. Run the tests before and after to prove behavior is preserved. Target: {args}",
	},
	{
		Name:        "audit",
		Description: "Audit the codebase for security issues",
		Template:    "Audit this codebase for security issues: injection risks, unsafe file and command handling, secrets in code, and missing input validation. Report each finding with its location, severity, and a concrete fix. {args}",
	},
	{
		Name:        "optimize",
		Description: "Find and fix performance problems",
		Template:    "Profile or inspect the following code for performance problems: unnecessary allocations, quadratic loops, repeated I/O. Propose and apply the highest-impact fixes. Target: {args}",
	},
	{
		Name:         "fix",
		Description:  "Fix a described bug or error",
		Template:     "Fix this problem: {args}. Reproduce it first if possible, find the root cause, apply the fix, and verify it.",
		RequiresArgs: true,
	},
	{
		Name:        "explore",
		Description: "Explore and explain the codebase",
		Template:    "Explore this codebase and explain its structure: entry points, main packages, how data flows between them, and where the interesting logic lives. {args}",
	},
	{
		Name:        "git-push",
		Description: "Push committed work to the remote",
		Template:    "Check the current branch and its upstream, make sure everything intended is committed, and push to the remote. Report what was pushed. {args}",
	},
}

// SkillCatalog resolves skill names to templates.
type SkillCatalog struct {
	skills map[string]Skill
	order  []string
}

// NewSkillCatalog builds the catalog from the built-in set plus any
// external skills under <dataDir>/skills. External files win on name
// collisions.
func NewSkillCatalog(dataDir string) *SkillCatalog {
	c := &SkillCatalog{skills: make(map[string]Skill)}
	for _, s := range builtinSkills {
		c.add(s)
	}

	if dataDir != "" {
		external, err := loadExternalSkills(filepath.Join(dataDir, "skills"))
		if err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[catalog] Failed to load external skills: %v", err)
		}
		for _, s := range external {
			c.add(s)
		}
	}

	return c
}

func (c *SkillCatalog) add(s Skill) {
	name := strings.ToLower(s.Name)
	if _, exists := c.skills[name]; !exists {
		c.order = append(c.order, name)
	}
	c.skills[name] = s
}

// loadExternalSkills reads *.md files with YAML front matter. The body is
// the prompt template; a missing name falls back to the filename.
func loadExternalSkills(dir string) ([]Skill, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var skills []Skill
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		fm, body, err := parseFrontMatter(data)
		if err != nil || body == "" {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[catalog] Skipping skill file %s: %v", path, err)
			}
			continue
		}

		name := fm.Name
		if name == "" {
			name = strings.TrimSuffix(entry.Name(), ".md")
		}

		skills = append(skills, Skill{
			Name:         name,
			Description:  fm.Description,
			Template:     body,
			RequiresArgs: fm.RequiresArgs,
		})
	}

	return skills, nil
}

// Get returns the named skill.
func (c *SkillCatalog) Get(name string) (Skill, bool) {
	s, ok := c.skills[strings.ToLower(name)]
	return s, ok
}

// All returns every skill in declaration order.
func (c *SkillCatalog) All() []Skill {
	out := make([]Skill, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.skills[name])
	}
	return out
}

// Names returns the sorted skill names, used for shortcut completion.
func (c *SkillCatalog) Names() []string {
	names := make([]string, 0, len(c.skills))
	for name := range c.skills {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
