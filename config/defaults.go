package config

// Version is the application version reported by -v and /version.
const Version = "1.0.0"

const (
	DefaultBaseURL     = "https://api.anthropic.com"
	DefaultModel       = "claude-sonnet-4-5-20250929"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 4096
)

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/atui",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		API: APIConfig{
			BaseURL:     DefaultBaseURL,
			Model:       DefaultModel,
			Temperature: DefaultTemperature,
			MaxTokens:   DefaultMaxTokens,
		},
	}
}

func GenerateSystemConfigTemplate() string {
	return `# ATUI System Configuration
# Location: ~/.config/atui/settings.toml
# This file uses TOML format: https://toml.io

# Directory where sessions and user config are stored
data_directory = "~/.local/share/atui"
`
}

func GenerateUserConfigTemplate() string {
	return `# ATUI User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

[api]
# Chat API endpoint (Anthropic-compatible)
base_url = "https://api.anthropic.com"

# API key. Prefer the ATUI_API_KEY or ANTHROPIC_API_KEY environment
# variable over storing the key here.
#api_key = ""

# Default model for new sessions
model = "claude-sonnet-4-5-20250929"

temperature = 0.7
max_tokens = 4096

# Default system prompt for new sessions (optional)
default_system_prompt = ""

# MCP tool servers, one table per server. Tools are exposed to the model
# as mcp__<name>__<tool>.
#
#[mcp_servers.filesystem]
#command = "npx"
#args = ["-y", "@modelcontextprotocol/server-filesystem", "/tmp"]
#
#[mcp_servers.fetch]
#command = "uvx"
#args = ["mcp-server-fetch"]
#[mcp_servers.fetch.env]
#HTTP_PROXY = ""
`
}
