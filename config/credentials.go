package config

import "os"

// apiKeyEnvVars are checked in order; the first non-empty value wins.
var apiKeyEnvVars = []string{
	"ATUI_API_KEY",
	"ANTHROPIC_API_KEY",
}

// ResolveAPIKey returns the API key from the environment, or "" when none
// of the recognized variables is set. The config file value is the fallback,
// applied by Load before this override.
func ResolveAPIKey() string {
	for _, name := range apiKeyEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// ValidateAPIKey reports whether an API key is available, with a
// user-facing hint when it is not.
func ValidateAPIKey(cfg *Config) (bool, string) {
	if cfg.APIKey != "" {
		return true, ""
	}
	return false, "No API key configured. Set ATUI_API_KEY or ANTHROPIC_API_KEY, " +
		"or add api_key under [api] in <data_directory>/config.toml"
}
