package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	EnvOutputLabel            = "SYLLABUS_OUTPUT_LABEL"
	EnvOutputJSONDump         = "SYLLABUS_OUTPUT_JSON_DUMP"
	EnvWorkflowMaxPromptChars = "SYLLABUS_WORKFLOW_MAX_PROMPT_CHARS"
)

// OutputConfig controls how finished lesson plans are named and what is stored with them.
type OutputConfig struct {
	Label string `toml:"label"`
	// JSONDump stores the merged run state next to the document when true.
	JSONDump *bool `toml:"json_dump"`
}

// DumpJSON reports whether the state dump is enabled.
func (c *OutputConfig) DumpJSON() bool {
	return c.JSONDump != nil && *c.JSONDump
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *OutputConfig) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *OutputConfig) Merge(overlay *OutputConfig) {
	if overlay.Label != "" {
		c.Label = overlay.Label
	}
	if overlay.JSONDump != nil {
		c.JSONDump = overlay.JSONDump
	}
}

func (c *OutputConfig) loadDefaults() {
	if c.Label == "" {
		c.Label = "lesson_plan"
	}
	if c.JSONDump == nil {
		enabled := true
		c.JSONDump = &enabled
	}
}

func (c *OutputConfig) loadEnv() error {
	if v := os.Getenv(EnvOutputLabel); v != "" {
		c.Label = v
	}
	if v := os.Getenv(EnvOutputJSONDump); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvOutputJSONDump, err)
		}
		c.JSONDump = &enabled
	}
	return nil
}

func (c *OutputConfig) validate() error {
	if strings.ContainsAny(c.Label, `/\`) {
		return fmt.Errorf("label must not contain path separators")
	}
	return nil
}

// WorkflowConfig tunes prompt composition.
type WorkflowConfig struct {
	// MaxPromptChars bounds the textbook text included in each prompt.
	MaxPromptChars int `toml:"max_prompt_chars"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *WorkflowConfig) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *WorkflowConfig) Merge(overlay *WorkflowConfig) {
	if overlay.MaxPromptChars != 0 {
		c.MaxPromptChars = overlay.MaxPromptChars
	}
}

func (c *WorkflowConfig) loadDefaults() {
	if c.MaxPromptChars == 0 {
		c.MaxPromptChars = 12000
	}
}

func (c *WorkflowConfig) loadEnv() error {
	if v := os.Getenv(EnvWorkflowMaxPromptChars); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvWorkflowMaxPromptChars, err)
		}
		c.MaxPromptChars = n
	}
	return nil
}

func (c *WorkflowConfig) validate() error {
	if c.MaxPromptChars < 0 {
		return fmt.Errorf("max_prompt_chars must not be negative")
	}
	return nil
}
