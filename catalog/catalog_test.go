package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFrontMatter(t *testing.T) {
	doc := `---
name: security-auditor
description: Finds security issues
keywords:
  - security
  - audit
---

You are a security auditor. Find vulnerabilities.`

	fm, body, err := parseFrontMatter([]byte(doc))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if fm.Name != "security-auditor" {
		t.Errorf("name = %q", fm.Name)
	}
	if fm.Description != "Finds security issues" {
		t.Errorf("description = %q", fm.Description)
	}
	if len(fm.Keywords) != 2 || fm.Keywords[0] != "security" {
		t.Errorf("keywords = %v", fm.Keywords)
	}
	if !strings.HasPrefix(body, "You are a security auditor.") {
		t.Errorf("body = %q", body)
	}
}

func TestParseFrontMatterAbsent(t *testing.T) {
	fm, body, err := parseFrontMatter([]byte("Just a prompt, no header."))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if fm.Name != "" {
		t.Errorf("name = %q, want empty", fm.Name)
	}
	if body != "Just a prompt, no header." {
		t.Errorf("body = %q", body)
	}
}

func TestParseFrontMatterUnterminated(t *testing.T) {
	_, _, err := parseFrontMatter([]byte("---\nname: broken\nno closing delimiter"))
	if err == nil {
		t.Fatal("expected error for unterminated front matter")
	}
}

func TestAgentCatalogBuiltins(t *testing.T) {
	c := NewAgentCatalog("")

	if len(c.All()) < 8 {
		t.Fatalf("builtin agents = %d, want at least 8", len(c.All()))
	}

	reviewer, ok := c.Get("code-reviewer")
	if !ok {
		t.Fatal("code-reviewer missing")
	}
	if reviewer.SystemPrompt == "" {
		t.Error("agent has no system prompt")
	}
	if reviewer.External {
		t.Error("builtin agent flagged as external")
	}
}

func TestAgentCatalogExternal(t *testing.T) {
	dataDir := t.TempDir()
	agentsDir := filepath.Join(dataDir, "agents")
	if err := os.MkdirAll(agentsDir, 0700); err != nil {
		t.Fatal(err)
	}

	doc := "---\nname: incident-responder\ndescription: Handles outages\nkeywords: [incident]\n---\nYou handle production incidents."
	if err := os.WriteFile(filepath.Join(agentsDir, "incident.md"), []byte(doc), 0600); err != nil {
		t.Fatal(err)
	}

	c := NewAgentCatalog(dataDir)
	a, ok := c.Get("incident-responder")
	if !ok {
		t.Fatal("external agent not loaded")
	}
	if !a.External {
		t.Error("external agent not flagged")
	}
	if a.SystemPrompt != "You handle production incidents." {
		t.Errorf("prompt = %q", a.SystemPrompt)
	}
}

func TestFindByKeyword(t *testing.T) {
	c := NewAgentCatalog("")

	matches := c.FindByKeyword("docker")
	if len(matches) != 1 || matches[0].Name != "devops-eng" {
		t.Errorf("matches = %v", matches)
	}

	if got := c.FindByKeyword(""); got != nil {
		t.Errorf("empty query should match nothing, got %v", got)
	}
}

func TestSkillCatalog(t *testing.T) {
	c := NewSkillCatalog("")

	wantNames := []string{"commit", "review", "test", "docs", "refactor", "audit", "optimize", "fix", "explore", "git-push"}
	if len(c.All()) != len(wantNames) {
		t.Fatalf("skills = %d, want %d", len(c.All()), len(wantNames))
	}
	for _, name := range wantNames {
		if _, ok := c.Get(name); !ok {
			t.Errorf("skill %s missing", name)
		}
	}
}

func TestSkillCatalogExternal(t *testing.T) {
	dataDir := t.TempDir()
	skillsDir := filepath.Join(dataDir, "skills")
	if err := os.MkdirAll(skillsDir, 0700); err != nil {
		t.Fatal(err)
	}

	doc := "---\nname: deploy\ndescription: Deploy to staging\nrequires_args: true\n---\nDeploy {args} to the staging environment and report the result."
	if err := os.WriteFile(filepath.Join(skillsDir, "deploy.md"), []byte(doc), 0600); err != nil {
		t.Fatal(err)
	}

	c := NewSkillCatalog(dataDir)
	s, ok := c.Get("deploy")
	if !ok {
		t.Fatal("external skill not loaded")
	}
	if !s.RequiresArgs {
		t.Error("requires_args not honored")
	}
	if got := s.Render("the api service"); !strings.Contains(got, "the api service") {
		t.Errorf("rendered = %q", got)
	}
}

func TestSkillRender(t *testing.T) {
	c := NewSkillCatalog("")

	fix, _ := c.Get("fix")
	if !fix.RequiresArgs {
		t.Error("fix should require arguments")
	}

	prompt := fix.Render("the crash on empty input")
	if !strings.Contains(prompt, "the crash on empty input") {
		t.Errorf("prompt = %q", prompt)
	}
	if strings.Contains(prompt, "{args}") {
		t.Errorf("placeholder left in prompt: %q", prompt)
	}

	commit, _ := c.Get("commit")
	rendered := commit.Render("")
	if strings.Contains(rendered, "{args}") {
		t.Errorf("placeholder left in prompt: %q", rendered)
	}
	if strings.HasSuffix(rendered, " ") {
		t.Errorf("empty args should be trimmed: %q", rendered)
	}
}
