package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type APIConfig struct {
	BaseURL     string  `toml:"base_url"`
	APIKey      string  `toml:"api_key,omitempty"`
	Model       string  `toml:"model"`
	Temperature float64 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
}

// ServerConfig describes one MCP tool server launched as a child process.
type ServerConfig struct {
	Command string            `toml:"command"`
	Args    []string          `toml:"args,omitempty"`
	Env     map[string]string `toml:"env,omitempty"`
}

type UserConfig struct {
	API                 APIConfig               `toml:"api"`
	DefaultSystemPrompt string                  `toml:"default_system_prompt,omitempty"`
	MCPServers          map[string]ServerConfig `toml:"mcp_servers,omitempty"`
}

type Config struct {
	DataDirectory       string
	BaseURL             string
	APIKey              string
	DefaultModel        string
	Temperature         float64
	MaxTokens           int
	DefaultSystemPrompt string
	MCPServers          map[string]ServerConfig
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("ATUI_BASE_URL"); url != "" {
		c.BaseURL = url
	}
	if model := os.Getenv("ATUI_MODEL"); model != "" {
		c.DefaultModel = model
	}
	if dataDir := os.Getenv("ATUI_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if key := ResolveAPIKey(); key != "" {
		c.APIKey = key
	}
}

func CheckDebug() bool {
	debug := os.Getenv("ATUI_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600: debug output may contain prompts and tool arguments
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (ATUI_DEBUG=%s) ===", os.Getenv("ATUI_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

func Load() (*Config, error) {
	cfg := &Config{
		DataDirectory: "~/.local/share/atui",
		BaseURL:       DefaultBaseURL,
		DefaultModel:  DefaultModel,
		Temperature:   DefaultTemperature,
		MaxTokens:     DefaultMaxTokens,
	}

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	cfg.DataDirectory = systemCfg.DataDirectory

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.applyUserConfig(userCfg)
	cfg.applyEnvOverrides()

	return cfg, nil
}

func (c *Config) applyUserConfig(userCfg *UserConfig) {
	if userCfg.API.BaseURL != "" {
		c.BaseURL = userCfg.API.BaseURL
	}
	if userCfg.API.APIKey != "" {
		c.APIKey = userCfg.API.APIKey
	}
	if userCfg.API.Model != "" {
		c.DefaultModel = userCfg.API.Model
	}
	if userCfg.API.Temperature > 0 {
		c.Temperature = userCfg.API.Temperature
	}
	if userCfg.API.MaxTokens > 0 {
		c.MaxTokens = userCfg.API.MaxTokens
	}
	c.DefaultSystemPrompt = userCfg.DefaultSystemPrompt
	c.MCPServers = userCfg.MCPServers
}

// Set updates a single user-facing setting and persists it to the user
// config file. Recognized keys: model, base_url, temperature, max_tokens,
// default_system_prompt.
func (c *Config) Set(key, value string) error {
	dataDir := c.DataDir()
	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return err
	}

	switch key {
	case "model":
		userCfg.API.Model = value
		c.DefaultModel = value
	case "base_url":
		userCfg.API.BaseURL = value
		c.BaseURL = value
	case "temperature":
		var t float64
		if _, err := fmt.Sscanf(value, "%g", &t); err != nil {
			return fmt.Errorf("invalid temperature %q", value)
		}
		userCfg.API.Temperature = t
		c.Temperature = t
	case "max_tokens":
		var n int
		if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
			return fmt.Errorf("invalid max_tokens %q", value)
		}
		userCfg.API.MaxTokens = n
		c.MaxTokens = n
	case "default_system_prompt":
		userCfg.DefaultSystemPrompt = value
		c.DefaultSystemPrompt = value
	default:
		return fmt.Errorf("unknown setting: %s", key)
	}

	return SaveUserConfig(userCfg, dataDir)
}
