package plans

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/syllabus/pkg/storage"
)

// Domain errors for lesson-plan operations.
var (
	ErrNotFound     = errors.New("lesson plan not found")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	ErrInvalidFile  = errors.New("invalid file: a PDF upload is required")
	ErrInvalidHours = errors.New("total_hours must be a positive integer")
	ErrInvalidKey   = errors.New("invalid lesson plan key")
)

// MapHTTPStatus maps lesson-plan domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidFile),
		errors.Is(err, ErrInvalidHours),
		errors.Is(err, ErrInvalidKey),
		errors.Is(err, storage.ErrEmptyKey),
		errors.Is(err, storage.ErrInvalidKey):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
