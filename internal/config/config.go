package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/alexanderramin/taskflow/internal/llm"
	"github.com/alexanderramin/taskflow/internal/logging"
	"github.com/alexanderramin/taskflow/internal/planner"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "taskflow.yaml"

type ServerConfig struct {
	Addr              string `yaml:"addr"`
	ShutdownTimeoutMs int    `yaml:"shutdown_timeout_ms"`
}

type PlannerConfig struct {
	// HeaderMarkers replaces the markers that open a category when a model
	// reply is parsed line by line.
	HeaderMarkers []string `yaml:"header_markers"`

	// KeywordRules replaces the offline classification table when set.
	KeywordRules []planner.KeywordRule `yaml:"keyword_rules"`
}

type Config struct {
	LLM     llm.Config     `yaml:"llm"`
	Server  ServerConfig   `yaml:"server"`
	Log     logging.Config `yaml:"log"`
	Planner PlannerConfig  `yaml:"planner"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM: llm.DefaultConfig(),
		Server: ServerConfig{
			Addr:              ":5000",
			ShutdownTimeoutMs: 10000,
		},
		Log: logging.DefaultConfig(),
		Planner: PlannerConfig{
			HeaderMarkers: domain.DefaultHeaderMarkers(),
		},
	}
}

// Load layers the YAML file at path (or TASKFLOW_CONFIG, or ./taskflow.yaml
// when present) over the defaults, then applies environment overrides.
// An explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("TASKFLOW_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("decoding %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv() {
	c.LLM.ApplyEnv()

	if v := os.Getenv("TASKFLOW_ADDR"); v != "" {
		c.Server.Addr = v
	} else if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
	if v := os.Getenv("TASKFLOW_SHUTDOWN_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Server.ShutdownTimeoutMs = n
		}
	}
	if v := os.Getenv("TASKFLOW_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TASKFLOW_LOG_DEVELOPMENT"); v != "" {
		c.Log.Development, _ = strconv.ParseBool(v)
	}
}

// ShutdownTimeout returns how long the server waits for in-flight requests.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	if s.ShutdownTimeoutMs <= 0 {
		return 10 * time.Second
	}
	return time.Duration(s.ShutdownTimeoutMs) * time.Millisecond
}
