package workflow

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JaimeStill/syllabus/internal/prompts"
)

// Section is one labelled block of context appended to the user prompt.
// String values are written verbatim; anything else is rendered as indented JSON.
type Section struct {
	Label string
	Value any
}

// ComposePrompt builds the request for a generation stage. The system prompt
// combines tunable instructions with the immutable specification; the user
// prompt carries the context sections in order.
func ComposePrompt(
	catalog *prompts.Catalog,
	stage prompts.Stage,
	sections ...Section,
) (Request, error) {
	instructions, err := catalog.Instructions(stage)
	if err != nil {
		return Request{}, fmt.Errorf("load instructions for %s: %w", stage, err)
	}

	spec, err := catalog.Spec(stage)
	if err != nil {
		return Request{}, fmt.Errorf("load spec for %s: %w", stage, err)
	}

	var sb strings.Builder
	for i, section := range sections {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(section.Label)
		sb.WriteString(":\n\n")

		if text, ok := section.Value.(string); ok {
			sb.WriteString(text)
			continue
		}

		data, err := json.MarshalIndent(section.Value, "", "  ")
		if err != nil {
			return Request{}, fmt.Errorf("serialize %s: %w", strings.ToLower(section.Label), err)
		}
		sb.Write(data)
	}

	return Request{
		Stage:  stage,
		System: instructions + "\n\n" + spec,
		User:   sb.String(),
	}, nil
}

// truncate bounds s to limit runes. A non-positive limit leaves s unchanged.
func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
