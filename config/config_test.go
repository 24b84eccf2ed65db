package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home := GetHomeDir()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"tilde prefix", "~/data/atui", filepath.Join(home, "data", "atui")},
		{"absolute unchanged", "/var/lib/atui", "/var/lib/atui"},
		{"empty", "", ""},
		{"cleans redundant segments", "/tmp//atui/./sessions", "/tmp/atui/sessions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.input); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpandPathEnvVars(t *testing.T) {
	t.Setenv("ATUI_TEST_DIR", "/srv/atui")

	if got := ExpandPath("$ATUI_TEST_DIR/sessions"); got != "/srv/atui/sessions" {
		t.Errorf("got %q", got)
	}
}

func TestUserConfigRoundTrip(t *testing.T) {
	dataDir := t.TempDir()

	cfg := DefaultUserConfig()
	cfg.API.Model = "claude-opus-4-1"
	cfg.API.Temperature = 0.2
	cfg.DefaultSystemPrompt = "Answer briefly."
	cfg.MCPServers = map[string]ServerConfig{
		"fetch": {Command: "uvx", Args: []string{"mcp-server-fetch"}},
	}

	if err := SaveUserConfig(cfg, dataDir); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadUserConfig(dataDir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.API.Model != "claude-opus-4-1" {
		t.Errorf("model = %q", loaded.API.Model)
	}
	if loaded.API.Temperature != 0.2 {
		t.Errorf("temperature = %g", loaded.API.Temperature)
	}
	if loaded.DefaultSystemPrompt != "Answer briefly." {
		t.Errorf("system prompt = %q", loaded.DefaultSystemPrompt)
	}
	srv, ok := loaded.MCPServers["fetch"]
	if !ok || srv.Command != "uvx" || len(srv.Args) != 1 {
		t.Errorf("mcp server = %+v", srv)
	}

	info, err := os.Stat(filepath.Join(dataDir, "config.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %o, want 0600", info.Mode().Perm())
	}
}

func TestLoadUserConfigCreatesTemplate(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := LoadUserConfig(dataDir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.API.Model != DefaultModel {
		t.Errorf("model = %q, want default", cfg.API.Model)
	}
	if !FileExists(filepath.Join(dataDir, "config.toml")) {
		t.Error("template config.toml not created")
	}
}

func TestConfigSet(t *testing.T) {
	cfg := &Config{
		DataDirectory: t.TempDir(),
		BaseURL:       DefaultBaseURL,
		DefaultModel:  DefaultModel,
		Temperature:   DefaultTemperature,
		MaxTokens:     DefaultMaxTokens,
	}

	if err := cfg.Set("temperature", "0.4"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if cfg.Temperature != 0.4 {
		t.Errorf("temperature = %g", cfg.Temperature)
	}

	if err := cfg.Set("max_tokens", "8192"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if cfg.MaxTokens != 8192 {
		t.Errorf("max_tokens = %d", cfg.MaxTokens)
	}

	if err := cfg.Set("temperature", "warm"); err == nil {
		t.Error("non-numeric temperature should fail")
	}
	if err := cfg.Set("colour", "blue"); err == nil {
		t.Error("unknown key should fail")
	}

	// Changes persist to the user config file.
	loaded, err := LoadUserConfig(cfg.DataDir())
	if err != nil {
		t.Fatal(err)
	}
	if loaded.API.Temperature != 0.4 || loaded.API.MaxTokens != 8192 {
		t.Errorf("persisted config = %+v", loaded.API)
	}
}

func TestResolveAPIKeyPrecedence(t *testing.T) {
	t.Setenv("ATUI_API_KEY", "from-atui")
	t.Setenv("ANTHROPIC_API_KEY", "from-anthropic")

	if got := ResolveAPIKey(); got != "from-atui" {
		t.Errorf("got %q, ATUI_API_KEY should win", got)
	}

	t.Setenv("ATUI_API_KEY", "")
	if got := ResolveAPIKey(); got != "from-anthropic" {
		t.Errorf("got %q", got)
	}
}

func TestValidateAPIKey(t *testing.T) {
	ok, _ := ValidateAPIKey(&Config{APIKey: "sk-test"})
	if !ok {
		t.Error("configured key reported missing")
	}

	ok, hint := ValidateAPIKey(&Config{})
	if ok {
		t.Error("missing key reported present")
	}
	if !strings.Contains(hint, "ATUI_API_KEY") {
		t.Errorf("hint = %q", hint)
	}
}
