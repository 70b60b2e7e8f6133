// Package agent implements workflow.Generator over go-agents. Text requests
// use the text model; requests flagged for vision use the vision model and
// attach any page images.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	gaagent "github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/syllabus/internal/workflow"
)

var (
	ErrGeneration    = errors.New("generation failed")
	ErrEmptyResponse = errors.New("empty model response")
)

// Generator sends workflow requests to the configured models.
type Generator struct {
	text   gaconfig.AgentConfig
	vision gaconfig.AgentConfig
	logger *slog.Logger
}

// New creates a Generator. The configs must already be finalized.
func New(text, vision gaconfig.AgentConfig, logger *slog.Logger) *Generator {
	return &Generator{
		text:   text,
		vision: vision,
		logger: logger.With("system", "agent"),
	}
}

// ConfigFor returns the agent configuration a request is routed to.
func (g *Generator) ConfigFor(req workflow.Request) gaconfig.AgentConfig {
	if req.Vision {
		return g.vision
	}
	return g.text
}

// Generate implements workflow.Generator.
func (g *Generator) Generate(ctx context.Context, req workflow.Request) (string, error) {
	cfg := g.ConfigFor(req)

	a, err := gaagent.New(&cfg)
	if err != nil {
		return "", fmt.Errorf("%w: create agent: %w", ErrGeneration, err)
	}

	prompt := Prompt(req)

	var content string
	if req.Vision && len(req.Images) > 0 {
		resp, err := a.Vision(ctx, prompt, req.Images)
		if err != nil {
			return "", fmt.Errorf("%w: vision call: %w", ErrGeneration, err)
		}
		content = resp.Content()
	} else {
		resp, err := a.Chat(ctx, prompt)
		if err != nil {
			return "", fmt.Errorf("%w: chat call: %w", ErrGeneration, err)
		}
		content = resp.Content()
	}

	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: %w", ErrGeneration, ErrEmptyResponse)
	}

	g.logger.InfoContext(
		ctx, "generation complete",
		"stage", req.Stage,
		"model", modelName(cfg),
		"vision", req.Vision,
		"images", len(req.Images),
		"response_chars", len(content),
	)

	return content, nil
}

// Prompt joins the system and user parts of a request into one message.
func Prompt(req workflow.Request) string {
	system := strings.TrimSpace(req.System)
	user := strings.TrimSpace(req.User)

	switch {
	case system == "":
		return user
	case user == "":
		return system
	}
	return system + "\n\n" + user
}

func modelName(cfg gaconfig.AgentConfig) string {
	if cfg.Model == nil {
		return ""
	}
	return cfg.Model.Name
}
