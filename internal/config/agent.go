package config

import (
	"fmt"
	"maps"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentProvider    = "SYLLABUS_AGENT_PROVIDER"
	EnvAgentBaseURL     = "SYLLABUS_AGENT_BASE_URL"
	EnvAgentModel       = "SYLLABUS_AGENT_MODEL"
	EnvAgentVisionModel = "SYLLABUS_AGENT_VISION_MODEL"
	EnvAgentToken       = "SYLLABUS_AGENT_TOKEN"
	EnvAgentDeployment  = "SYLLABUS_AGENT_DEPLOYMENT"
	EnvAgentAPIVersion  = "SYLLABUS_AGENT_API_VERSION"
)

// ProviderOllama is the only provider that runs without a token.
const ProviderOllama = "ollama"

// AgentConfig describes the language models used for generation. The text model
// serves text-layer PDFs; the vision model serves scanned PDFs.
type AgentConfig struct {
	Name        string         `toml:"name"`
	Provider    string         `toml:"provider"`
	BaseURL     string         `toml:"base_url"`
	Model       string         `toml:"model"`
	VisionModel string         `toml:"vision_model"`
	Token       string         `toml:"token"`
	Deployment  string         `toml:"deployment"`
	APIVersion  string         `toml:"api_version"`
	Options     map[string]any `toml:"options"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AgentConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. Options are merged by key.
func (c *AgentConfig) Merge(overlay *AgentConfig) {
	if overlay.Name != "" {
		c.Name = overlay.Name
	}
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.VisionModel != "" {
		c.VisionModel = overlay.VisionModel
	}
	if overlay.Token != "" {
		c.Token = overlay.Token
	}
	if overlay.Deployment != "" {
		c.Deployment = overlay.Deployment
	}
	if overlay.APIVersion != "" {
		c.APIVersion = overlay.APIVersion
	}
	if len(overlay.Options) > 0 {
		if c.Options == nil {
			c.Options = make(map[string]any, len(overlay.Options))
		}
		maps.Copy(c.Options, overlay.Options)
	}
}

// Text returns the go-agents configuration for the text model.
func (c *AgentConfig) Text() gaconfig.AgentConfig {
	return c.agent(c.Name, c.Model)
}

// Vision returns the go-agents configuration for the vision model.
func (c *AgentConfig) Vision() gaconfig.AgentConfig {
	return c.agent(c.Name+"-vision", c.VisionModel)
}

// agent layers the configured values over go-agents DefaultAgentConfig.
func (c *AgentConfig) agent(name, model string) gaconfig.AgentConfig {
	overlay := gaconfig.AgentConfig{
		Name: name,
		Provider: &gaconfig.ProviderConfig{
			Name:    c.Provider,
			BaseURL: c.BaseURL,
		},
		Model: &gaconfig.ModelConfig{
			Name: model,
		},
	}

	cfg := gaconfig.DefaultAgentConfig()
	cfg.Merge(&overlay)

	if cfg.Provider == nil {
		cfg.Provider = &gaconfig.ProviderConfig{Name: c.Provider, BaseURL: c.BaseURL}
	}
	options := make(map[string]any, len(cfg.Provider.Options)+len(c.Options)+3)
	maps.Copy(options, cfg.Provider.Options)
	maps.Copy(options, c.Options)

	setOption := func(key, value string) {
		if value != "" {
			options[key] = value
		}
	}
	setOption("token", c.Token)
	setOption("deployment", c.Deployment)
	setOption("api_version", c.APIVersion)

	cfg.Provider.Options = options
	return cfg
}

func (c *AgentConfig) loadDefaults() {
	if c.Name == "" {
		c.Name = "syllabus"
	}
	if c.Provider == "" {
		c.Provider = ProviderOllama
	}
	if c.BaseURL == "" && c.Provider == ProviderOllama {
		c.BaseURL = "http://localhost:11434"
	}
	if c.Model == "" {
		c.Model = "llama3.2:3b"
	}
	if c.VisionModel == "" {
		c.VisionModel = c.Model
	}
}

func (c *AgentConfig) loadEnv() {
	set := func(name string, dst *string) {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	set(EnvAgentProvider, &c.Provider)
	set(EnvAgentBaseURL, &c.BaseURL)
	set(EnvAgentModel, &c.Model)
	set(EnvAgentVisionModel, &c.VisionModel)
	set(EnvAgentToken, &c.Token)
	set(EnvAgentDeployment, &c.Deployment)
	set(EnvAgentAPIVersion, &c.APIVersion)
}

func (c *AgentConfig) validate() error {
	if c.Model == "" {
		return fmt.Errorf("model required")
	}
	if c.Provider != ProviderOllama && c.Token == "" {
		return fmt.Errorf("token required for provider %q", c.Provider)
	}
	return nil
}
