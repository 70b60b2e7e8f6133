package plans

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JaimeStill/syllabus/internal/archive"
	"github.com/JaimeStill/syllabus/internal/workflow"
	"github.com/JaimeStill/syllabus/pkg/storage"
)

type service struct {
	runtime    *workflow.Runtime
	archive    *archive.Archive
	storage    storage.System
	runTimeout time.Duration
	logger     *slog.Logger
}

// New creates a lesson-plan service implementing the System interface.
// runtime supplies the workflow collaborators; its Persister is replaced per
// run so the stored keys can be reported back to the caller.
func New(
	runtime *workflow.Runtime,
	arc *archive.Archive,
	store storage.System,
	runTimeout time.Duration,
	logger *slog.Logger,
) System {
	return &service{
		runtime:    runtime,
		archive:    arc,
		storage:    store,
		runTimeout: runTimeout,
		logger:     logger.With("system", "plans"),
	}
}

func (s *service) Handler(maxUploadSize int64) *Handler {
	return NewHandler(s, s.logger, maxUploadSize)
}

func (s *service) Generate(ctx context.Context, cmd GenerateCommand) (*Run, error) {
	if cmd.TotalHours <= 0 {
		return nil, ErrInvalidHours
	}

	name := filepath.Base(strings.ReplaceAll(cmd.Filename, `\`, "/"))
	if !strings.EqualFold(filepath.Ext(name), ".pdf") || len(name) <= len(".pdf") {
		return nil, ErrInvalidFile
	}

	dir, err := os.MkdirTemp("", "syllabus-upload-*")
	if err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, cmd.Data, 0o600); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}

	if s.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.runTimeout)
		defer cancel()
	}

	recorder := s.archive.Record()
	rt := *s.runtime
	rt.Persister = recorder

	result := workflow.Execute(ctx, &rt, path, cmd.TotalHours)

	run := &Run{
		RunID:       result.RunID,
		Filename:    name,
		TotalHours:  cmd.TotalHours,
		Phase:       result.Phase,
		Stage:       result.Stage,
		Stored:      recorder.Stored(),
		Log:         result.State.Log,
		CompletedAt: result.CompletedAt,
	}
	if err := result.Err(); err != nil {
		run.Error = err.Error()
		run.Stored = nil
	}
	if run.Log == nil {
		run.Log = []string{}
	}

	return run, nil
}

func (s *service) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	rc, err := s.storage.Download(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rc, nil
}

func (s *service) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, key); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.logger.InfoContext(ctx, "lesson plan deleted", "key", key)
	return nil
}

// validateKey limits access to objects the archive writes.
func validateKey(key string) error {
	switch filepath.Ext(key) {
	case ".md", ".json":
		return nil
	}
	return ErrInvalidKey
}
