package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"atui/config"
)

// Agent is a named persona: a system prompt plus keywords used to pick it
// by topic.
type Agent struct {
	Name         string
	Description  string
	SystemPrompt string
	Keywords     []string
	External     bool
}

// builtinAgents are always available. External agents loaded from the data
// directory can shadow them by name.
var builtinAgents = []Agent{
	{
		Name:         "code-reviewer",
		Description:  "Reviews code for correctness, clarity, and maintainability",
		SystemPrompt: "You are a meticulous code reviewer. Examine code for bugs, unclear naming, missing error handling, and maintainability problems. Point to specific lines, explain why each issue matters, and suggest a concrete fix. Acknowledge what is done well before listing problems.",
		Keywords:     []string{"review", "quality", "refactor", "lint"},
	},
	{
		Name:         "backend-dev",
		Description:  "Designs and implements server-side systems and APIs",
		SystemPrompt: "You are a senior backend developer. Design and implement server-side code with attention to API contracts, error handling, data consistency, and performance under load. Prefer simple, well-tested solutions over clever ones.",
		Keywords:     []string{"api", "server", "database", "backend"},
	},
	{
		Name:         "frontend-dev",
		Description:  "Builds user interfaces and client-side logic",
		SystemPrompt: "You are a senior frontend developer. Build user interfaces with attention to accessibility, responsiveness, and state management. Keep components small and explain tradeoffs between approaches when they matter.",
		Keywords:     []string{"ui", "css", "component", "frontend"},
	},
	{
		Name:         "devops-eng",
		Description:  "Handles deployment, infrastructure, and automation",
		SystemPrompt: "You are a DevOps engineer. Handle CI/CD pipelines, containerization, infrastructure as code, and monitoring. Favor reproducible, automated setups and call out operational risks explicitly.",
		Keywords:     []string{"deploy", "docker", "ci", "infrastructure"},
	},
	{
		Name:         "doc-writer",
		Description:  "Writes clear technical documentation",
		SystemPrompt: "You are a technical writer. Produce documentation that a newcomer can follow without prior context: start with what the thing is for, then how to use it, then reference detail. Use concrete examples and plain language.",
		Keywords:     []string{"docs", "readme", "documentation", "guide"},
	},
	{
		Name:         "db-architect",
		Description:  "Designs schemas, queries, and data migrations",
		SystemPrompt: "You are a database architect. Design schemas, indexes, and migrations with attention to normalization, query patterns, and migration safety. Show the DDL and explain the access patterns each index serves.",
		Keywords:     []string{"schema", "sql", "migration", "index"},
	},
	{
		Name:         "test-runner",
		Description:  "Writes and runs tests, diagnoses failures",
		SystemPrompt: "You are a test engineer. Write focused tests that document behavior, run existing suites, and diagnose failures down to root cause. Prefer table-driven tests and name each case after the behavior it pins down.",
		Keywords:     []string{"test", "coverage", "failure", "assert"},
	},
	{
		Name:         "orchestrator",
		Description:  "Breaks large tasks into ordered, verifiable steps",
		SystemPrompt: "You are a project orchestrator. Break large tasks into small, ordered, independently verifiable steps. For each step state what to do, how to verify it, and what depends on it. Surface risks and open decisions early.",
		Keywords:     []string{"plan", "breakdown", "steps", "coordinate"},
	},
}

// AgentCatalog is the merged set of built-in and external agents.
type AgentCatalog struct {
	agents map[string]Agent
	order  []string
}

// NewAgentCatalog builds the catalog from the built-in set plus any
// external agents under <dataDir>/agents. External files win on name
// collisions.
func NewAgentCatalog(dataDir string) *AgentCatalog {
	c := &AgentCatalog{agents: make(map[string]Agent)}

	for _, a := range builtinAgents {
		c.add(a)
	}

	if dataDir != "" {
		external, err := loadExternalAgents(filepath.Join(dataDir, "agents"))
		if err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[catalog] Failed to load external agents: %v", err)
		}
		for _, a := range external {
			c.add(a)
		}
	}

	return c
}

func (c *AgentCatalog) add(a Agent) {
	if _, exists := c.agents[a.Name]; !exists {
		c.order = append(c.order, a.Name)
	}
	c.agents[a.Name] = a
}

// Get returns the named agent.
func (c *AgentCatalog) Get(name string) (Agent, bool) {
	a, ok := c.agents[name]
	return a, ok
}

// All returns every agent, built-ins first in their declared order.
func (c *AgentCatalog) All() []Agent {
	out := make([]Agent, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.agents[name])
	}
	return out
}

// FindByKeyword returns agents whose name, description, or keywords
// contain the query, sorted by name. Matching is case-insensitive.
func (c *AgentCatalog) FindByKeyword(query string) []Agent {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var matches []Agent
	for _, a := range c.agents {
		if agentMatches(a, query) {
			matches = append(matches, a)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Name < matches[j].Name
	})
	return matches
}

func agentMatches(a Agent, query string) bool {
	if strings.Contains(strings.ToLower(a.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(a.Description), query) {
		return true
	}
	for _, kw := range a.Keywords {
		if strings.Contains(strings.ToLower(kw), query) {
			return true
		}
	}
	return false
}

// loadExternalAgents reads *.md files with YAML front matter. The body is
// the system prompt; a missing name falls back to the filename.
func loadExternalAgents(dir string) ([]Agent, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read agents directory: %w", err)
	}

	var agents []Agent
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
				config.DebugLog.Printf("[catalog] Skipping agent file %s: %v", path, err)
			}
			continue
		}

		name := fm.Name
		if name == "" {
			name = strings.TrimSuffix(entry.Name(), ".md")
		}

		agents = append(agents, Agent{
			Name:         name,
			Description:  fm.Description,
			SystemPrompt: body,
			Keywords:     fm.Keywords,
			External:     true,
		})
	}

	return agents, nil
}
