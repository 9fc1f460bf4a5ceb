// Package config loads jockey settings from YAML files and the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in ~/.jockey and ./.jockey.
const FileName = "config.yaml"

// Defaults.
const (
	DefaultAPIURL         = "http://localhost:8123"
	DefaultConnectTimeout = 30 * time.Second
)

// Environment variables that override file settings.
const (
	EnvAPIURL        = "JOCKEY_API_URL"
	EnvIndexID       = "JOCKEY_INDEX_ID"
	EnvLegacyIndexID = "API_INDEX_ID"
	EnvAssistant     = "JOCKEY_ASSISTANT"
	EnvLogLevel      = "JOCKEY_LOG_LEVEL"
)

var validStreamModes = map[string]bool{
	"values":         true,
	"messages":       true,
	"messages-tuple": true,
	"updates":        true,
	"events":         true,
	"debug":          true,
	"custom":         true,
}

// Config is the full set of jockey settings.
type Config struct {
	// APIURL is the base URL of the LangGraph API server.
	APIURL string `yaml:"api_url"`
	// IndexID is prefixed to every question sent to the assistant.
	IndexID string `yaml:"index_id"`
	// Assistant selects an assistant by id, name or graph id. Empty picks the first one.
	Assistant string `yaml:"assistant"`
	// StreamMode is passed to runs/stream.
	StreamMode []string `yaml:"stream_mode"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// ConnectTimeout bounds dialing and waiting for response headers. The
	// stream body itself is not subject to a timeout.
	ConnectTimeout time.Duration `yaml:"connect_timeout"`

	Breaker   BreakerConfig   `yaml:"breaker"`
	Tracing   TracingConfig   `yaml:"tracing"`
	LoopGuard LoopGuardConfig `yaml:"loop_guard"`
}

// BreakerConfig configures the circuit breaker around orchestration calls.
type BreakerConfig struct {
	MaxFailures uint32        `yaml:"max_failures"`
	Timeout     time.Duration `yaml:"timeout"`
	Interval    time.Duration `yaml:"interval"`
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"`
}

// LoopGuardConfig bounds how long a supervisor may bounce between workers
// within one run. Zero disables a check.
type LoopGuardConfig struct {
	MaxHops          int  `yaml:"max_hops"`
	MaxRepeatedTools int  `yaml:"max_repeated_tools"`
	Abort            bool `yaml:"abort"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIURL:         DefaultAPIURL,
		StreamMode:     []string{"messages"},
		LogLevel:       "debug",
		ConnectTimeout: DefaultConnectTimeout,
		Breaker: BreakerConfig{
			MaxFailures: 5,
			Timeout:     30 * time.Second,
			Interval:    60 * time.Second,
		},
		Tracing: TracingConfig{
			Exporter: "stdout",
		},
		LoopGuard: LoopGuardConfig{
			MaxHops:          25,
			MaxRepeatedTools: 5,
		},
	}
}

// Load builds the configuration for workDir. Global settings from
// ~/.jockey/config.yaml are applied first, then ./.jockey/config.yaml, then
// the environment. Missing files are not an error.
func Load(workDir string) (*Config, error) {
	cfg := Default()

	if home, err := os.UserHomeDir(); err == nil {
		if err := cfg.mergeFile(filepath.Join(home, ".jockey", FileName)); err != nil {
			return nil, fmt.Errorf("loading global config: %w", err)
		}
	}

	if err := cfg.mergeFile(filepath.Join(workDir, ".jockey", FileName)); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a single YAML file on top of the defaults, then applies
// the environment.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.applyEnv(os.Getenv)
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
	if v := getenv(EnvLegacyIndexID); v != "" {
		c.IndexID = v
	}
	if v := getenv(EnvIndexID); v != "" {
		c.IndexID = v
	}
	if v := getenv(EnvAssistant); v != "" {
		c.Assistant = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api_url %q: %w", c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api_url %q: scheme must be http or https", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid api_url %q: missing host", c.APIURL)
	}

	if len(c.StreamMode) == 0 {
		return errors.New("stream_mode must not be empty")
	}
	for _, m := range c.StreamMode {
		if !validStreamModes[m] {
			return fmt.Errorf("unknown stream_mode %q", m)
		}
	}

	if c.ConnectTimeout < 0 {
		return fmt.Errorf("connect_timeout must not be negative, got %s", c.ConnectTimeout)
	}

	if c.LoopGuard.MaxHops < 0 || c.LoopGuard.MaxRepeatedTools < 0 {
		return errors.New("loop_guard limits must not be negative")
	}

	switch c.Tracing.Exporter {
	case "", "stdout", "noop":
	default:
		return fmt.Errorf("unsupported tracing exporter %q", c.Tracing.Exporter)
	}
	return nil
}
