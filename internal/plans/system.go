package plans

import (
	"context"
	"io"
)

// System defines the public contract for lesson-plan operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	Generate(ctx context.Context, cmd GenerateCommand) (*Run, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
