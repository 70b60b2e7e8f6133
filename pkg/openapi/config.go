package openapi

import "os"

// Config is the document metadata for the served API description.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	// ServerURL is the externally visible API root, such as a proxy address.
	// Empty leaves only the API base path.
	ServerURL string `toml:"server_url"`
}

// ConfigEnv names the environment variables that override Config fields.
type ConfigEnv struct {
	Title       string
	Description string
	ServerURL   string
}

// Finalize applies defaults and environment variable overrides.
func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.ServerURL != "" {
		c.ServerURL = overlay.ServerURL
	}
}

func (c *Config) loadDefaults() {
	if c.Title == "" {
		c.Title = "Syllabus API"
	}
	if c.Description == "" {
		c.Description = "Generates structured lesson plans from textbook PDFs."
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	for name, field := range map[string]*string{
		env.Title:       &c.Title,
		env.Description: &c.Description,
		env.ServerURL:   &c.ServerURL,
	} {
		if name == "" {
			continue
		}
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}
}
