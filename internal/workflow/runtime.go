package workflow

import (
	"context"
	"log/slog"

	"github.com/JaimeStill/syllabus/internal/artifact"
	"github.com/JaimeStill/syllabus/internal/prompts"
	"github.com/JaimeStill/syllabus/internal/state"
)

// Extractor reads a textbook PDF.
type Extractor interface {
	Extract(ctx context.Context, path string) (*artifact.Source, error)
}

// Generator sends a composed request to a language model and returns its raw reply.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Persister stores a rendered document and returns where it was written.
// snapshot is the merged run state, stored alongside the document when enabled.
type Persister interface {
	Persist(ctx context.Context, course, document string, snapshot any) (string, error)
}

// Request is one generation call.
type Request struct {
	Stage  prompts.Stage
	System string
	User   string
	// Vision routes the request to the vision model.
	Vision bool
	// Images holds data URIs attached to a vision request.
	Images []string
}

// Runtime bundles the dependencies that workflow stages require.
// It is constructed by higher-level composition code from Infrastructure.
type Runtime struct {
	Extractor Extractor
	Generator Generator
	Persister Persister
	Prompts   *prompts.Catalog
	Logger    *slog.Logger

	// MaxPromptChars bounds the textbook text sent to the model. Zero disables the bound.
	MaxPromptChars int

	// Progress, when set, is called as each phase starts.
	Progress func(phase state.Phase)
}

func (rt *Runtime) progress(phase state.Phase) {
	if rt.Progress != nil {
		rt.Progress(phase)
	}
}

func (rt *Runtime) logger() *slog.Logger {
	if rt.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return rt.Logger
}
