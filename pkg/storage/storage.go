// Package storage provides object storage with local filesystem and Azure
// Blob Storage implementations.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/JaimeStill/syllabus/pkg/lifecycle"
)

// System manages storage operations and lifecycle coordination.
type System interface {
	// Start registers a startup hook that prepares the backing directory or container.
	Start(lc *lifecycle.Coordinator) error
	// Upload streams data to the object at key with the specified content type.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Download returns a stream for the object at key. The caller must close the reader.
	// Returns ErrNotFound if the object does not exist.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object at key. Returns ErrNotFound if the object does not exist.
	Delete(ctx context.Context, key string) error
	// Exists reports whether an object exists at key.
	Exists(ctx context.Context, key string) (bool, error)
	// Location returns the file path or URL an object at key is stored under.
	Location(key string) string
}

// New creates the storage system selected by cfg.Backend.
// It validates configuration but does not touch the backend until Start is called.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Backend {
	case BackendLocal:
		return newLocal(cfg, logger), nil
	case BackendAzure:
		return newAzure(cfg, logger)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return ErrInvalidKey
	}
	for _, segment := range strings.Split(path.Clean(key), "/") {
		if segment == ".." {
			return ErrInvalidKey
		}
	}
	return nil
}
