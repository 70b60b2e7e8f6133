package prompts

import (
	"fmt"
	"strings"
)

// Catalog resolves stage instructions, preferring configured overrides over
// the built-in defaults. Specifications cannot be overridden.
type Catalog struct {
	overrides map[Stage]string
}

// NewCatalog validates overrides keyed by stage name and builds a Catalog.
// Blank overrides are ignored.
func NewCatalog(overrides map[string]string) (*Catalog, error) {
	c := &Catalog{overrides: make(map[Stage]string, len(overrides))}

	for name, text := range overrides {
		stage, err := ParseStage(name)
		if err != nil {
			return nil, fmt.Errorf("override %q: %w", name, err)
		}
		if text = strings.TrimSpace(text); text != "" {
			c.overrides[stage] = text
		}
	}

	return c, nil
}

// Instructions returns the override for stage when one is configured,
// otherwise the default instructions.
func (c *Catalog) Instructions(stage Stage) (string, error) {
	if c != nil {
		if text, ok := c.overrides[stage]; ok {
			return text, nil
		}
	}
	return Instructions(stage)
}

// Spec returns the output specification for stage.
func (c *Catalog) Spec(stage Stage) (string, error) {
	return Spec(stage)
}

// Overridden reports whether stage uses configured instructions.
func (c *Catalog) Overridden(stage Stage) bool {
	if c == nil {
		return false
	}
	_, ok := c.overrides[stage]
	return ok
}
