// Package infrastructure provides core service initialization for application startup.
// It assembles the dependencies a lesson-plan run requires: logging, lifecycle,
// storage and the workflow collaborators.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/syllabus/internal/agent"
	"github.com/JaimeStill/syllabus/internal/archive"
	"github.com/JaimeStill/syllabus/internal/config"
	"github.com/JaimeStill/syllabus/internal/extract"
	"github.com/JaimeStill/syllabus/internal/prompts"
	"github.com/JaimeStill/syllabus/internal/state"
	"github.com/JaimeStill/syllabus/internal/workflow"
	"github.com/JaimeStill/syllabus/pkg/lifecycle"
	"github.com/JaimeStill/syllabus/pkg/storage"
)

// Infrastructure holds the core systems required by a run.
// It provides a single point of initialization for lifecycle coordination,
// logging, file storage and the workflow collaborators.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Storage   storage.System
	Extractor *extract.Extractor
	Generator *agent.Generator
	Archive   *archive.Archive
	Prompts   *prompts.Catalog

	maxPromptChars int
}

// New creates an Infrastructure from the application configuration, logging
// to stderr. It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithLog(cfg, os.Stderr)
}

// NewWithLog is New with log records written to w.
func NewWithLog(cfg *config.Config, w io.Writer) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(w, nil))

	catalog, err := prompts.NewCatalog(cfg.Prompts)
	if err != nil {
		return nil, fmt.Errorf("%w: prompts: %w", config.ErrConfiguration, err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: storage init failed: %w", config.ErrConfiguration, err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Storage:   store,
		Extractor: extract.New(&cfg.Extract, logger),
		Generator: agent.New(cfg.Agent.Text(), cfg.Agent.Vision(), logger),
		Archive: archive.New(store, archive.Options{
			Label:    cfg.Output.Label,
			DumpJSON: cfg.Output.DumpJSON(),
		}, logger),
		Prompts:        catalog,
		maxPromptChars: cfg.Workflow.MaxPromptChars,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}

// Runtime assembles the workflow runtime. progress may be nil.
func (i *Infrastructure) Runtime(progress func(state.Phase)) *workflow.Runtime {
	return &workflow.Runtime{
		Extractor:      i.Extractor,
		Generator:      i.Generator,
		Persister:      i.Archive,
		Prompts:        i.Prompts,
		Logger:         i.Logger.With("system", "workflow"),
		MaxPromptChars: i.maxPromptChars,
		Progress:       progress,
	}
}
