package workflow

import "errors"

var (
	ErrInvalidHours = errors.New("total hours must be a positive integer")
	ErrMissingInput = errors.New("missing upstream input")
	ErrNoContent    = errors.New("extracted source has no usable content")
	ErrStagePanic   = errors.New("stage panicked")
)

// RunError is the caller-facing failure of a run.
type RunError struct {
	// Stage is the phase that failed, or "persist".
	Stage   string
	Message string
}

func (e *RunError) Error() string {
	return e.Message
}
