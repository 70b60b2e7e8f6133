// Package config loads the syllabus configuration from TOML files and
// SYLLABUS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/syllabus/internal/extract"
	"github.com/JaimeStill/syllabus/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvSyllabusEnv             = "SYLLABUS_ENV"
	EnvSyllabusRunTimeout      = "SYLLABUS_RUN_TIMEOUT"
	EnvSyllabusShutdownTimeout = "SYLLABUS_SHUTDOWN_TIMEOUT"
	EnvSyllabusVersion         = "SYLLABUS_VERSION"
)

// ErrConfiguration indicates the configuration could not be loaded or is invalid.
var ErrConfiguration = errors.New("invalid configuration")

var extractEnv = &extract.Env{
	MaxFileSize:      "SYLLABUS_EXTRACT_MAX_FILE_SIZE",
	ScannedThreshold: "SYLLABUS_EXTRACT_SCANNED_THRESHOLD",
	OCRLanguage:      "SYLLABUS_EXTRACT_OCR_LANGUAGE",
	OCRPages:         "SYLLABUS_EXTRACT_OCR_PAGES",
	VisionPages:      "SYLLABUS_EXTRACT_VISION_PAGES",
	DPI:              "SYLLABUS_EXTRACT_DPI",
}

var storageEnv = &storage.Env{
	Backend:          "SYLLABUS_STORAGE_BACKEND",
	Directory:        "SYLLABUS_STORAGE_DIRECTORY",
	ContainerName:    "SYLLABUS_STORAGE_CONTAINER_NAME",
	ConnectionString: "SYLLABUS_STORAGE_CONNECTION_STRING",
}

// Config is the root configuration for the syllabus generator.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	API      APIConfig      `toml:"api"`
	Agent    AgentConfig    `toml:"agent"`
	Extract  extract.Config `toml:"extract"`
	Storage  storage.Config `toml:"storage"`
	Output   OutputConfig   `toml:"output"`
	Workflow WorkflowConfig `toml:"workflow"`
	// Prompts overrides stage instructions, keyed by stage name.
	Prompts         map[string]string `toml:"prompts"`
	RunTimeout      string            `toml:"run_timeout"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
	Version         string            `toml:"version"`
}

// Env returns the SYLLABUS_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvSyllabusEnv); env != "" {
		return env
	}
	return "local"
}

// RunTimeoutDuration returns RunTimeout as a time.Duration.
func (c *Config) RunTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RunTimeout)
	return d
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration. Every error wraps ErrConfiguration.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom is Load with config files resolved relative to dir.
func LoadFrom(dir string) (*Config, error) {
	cfg := &Config{}

	base := filepath.Join(dir, BaseConfigFile)
	if _, err := os.Stat(base); err == nil {
		loaded, err := load(base)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		cfg = loaded
	}

	if path := overlayPath(dir); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("%w: load overlay %s: %w", ErrConfiguration, path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.RunTimeout != "" {
		c.RunTimeout = overlay.RunTimeout
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if len(overlay.Prompts) > 0 {
		if c.Prompts == nil {
			c.Prompts = make(map[string]string, len(overlay.Prompts))
		}
		maps.Copy(c.Prompts, overlay.Prompts)
	}
	c.Server.Merge(&overlay.Server)
	c.API.Merge(&overlay.API)
	c.Agent.Merge(&overlay.Agent)
	c.Extract.Merge(&overlay.Extract)
	c.Storage.Merge(&overlay.Storage)
	c.Output.Merge(&overlay.Output)
	c.Workflow.Merge(&overlay.Workflow)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Agent.Finalize(); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	if err := c.Extract.Finalize(extractEnv); err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Output.Finalize(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := c.Workflow.Finalize(); err != nil {
		return fmt.Errorf("workflow: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.RunTimeout == "" {
		c.RunTimeout = "30m"
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvSyllabusRunTimeout); v != "" {
		c.RunTimeout = v
	}
	if v := os.Getenv(EnvSyllabusShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvSyllabusVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if d, err := time.ParseDuration(c.RunTimeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid run_timeout %q", c.RunTimeout)
	}
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(dir string) string {
	if env := os.Getenv(EnvSyllabusEnv); env != "" {
		path := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, env))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
