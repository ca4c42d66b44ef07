package llm

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider names a completion backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
	ProviderGemini Provider = "gemini"
)

// Config holds all configuration for the completion subsystem.
type Config struct {
	// Enabled turns the ollama provider on; hosted providers are enabled by
	// the presence of an API key.
	Enabled     bool     `yaml:"enabled"`
	LogCalls    bool     `yaml:"log_calls"`
	Provider    Provider `yaml:"provider"`
	APIKey      string   `yaml:"api_key"`
	Endpoint    string   `yaml:"endpoint"`
	Model       string   `yaml:"model"`
	TimeoutMs   int      `yaml:"timeout_ms"`
	Temperature float64  `yaml:"temperature"`
	MaxTokens   int      `yaml:"max_tokens"`
}

// DefaultConfig returns a Config with sensible defaults.
// Without an API key the hosted providers stay off.
func DefaultConfig() Config {
	return Config{
		Enabled:     false,
		LogCalls:    false,
		Provider:    ProviderOpenAI,
		TimeoutMs:   30000,
		Temperature: 0.7,
		MaxTokens:   1000,
	}
}

// LoadConfig reads configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overrides fields from TASKFLOW_LLM_* variables and the provider
// specific key variables (OPENAI_API_KEY, GEMINI_API_KEY).
func (c *Config) ApplyEnv() {
	if v := os.Getenv("TASKFLOW_LLM_ENABLED"); v != "" {
		c.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TASKFLOW_LLM_LOG_CALLS"); v != "" {
		c.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TASKFLOW_LLM_PROVIDER"); v != "" {
		c.Provider = Provider(strings.ToLower(strings.TrimSpace(v)))
	}
	if v := os.Getenv("TASKFLOW_LLM_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("TASKFLOW_LLM_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("TASKFLOW_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.TimeoutMs = n
		}
	}
	if v := os.Getenv("TASKFLOW_LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 2 {
			c.Temperature = f
		}
	}
	if v := os.Getenv("TASKFLOW_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxTokens = n
		}
	}

	if v := os.Getenv("TASKFLOW_LLM_API_KEY"); v != "" {
		c.APIKey = v
		return
	}
	switch c.Provider {
	case ProviderOpenAI:
		if v := os.Getenv("OPENAI_API_KEY"); v != "" {
			c.APIKey = v
		}
	case ProviderGemini:
		if v := os.Getenv("GEMINI_API_KEY"); v != "" {
			c.APIKey = v
		}
	}
}

// Timeout returns the per-call timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutMs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// ModelName returns the configured model or the provider default.
func (c Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderOllama:
		return "llama3.2"
	case ProviderGemini:
		return "gemini-2.0-flash"
	default:
		return "gpt-3.5-turbo"
	}
}

// EndpointURL returns the configured endpoint or the provider default.
// Hosted providers use their SDK default when empty.
func (c Config) EndpointURL() string {
	if c.Endpoint != "" {
		return strings.TrimRight(c.Endpoint, "/")
	}
	if c.Provider == ProviderOllama {
		return "http://localhost:11434"
	}
	return ""
}
