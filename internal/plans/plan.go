// Package plans implements the lesson-plan domain for the HTTP API.
// It accepts uploaded textbook PDFs, runs the generation workflow for each
// one, and serves and removes the stored results.
package plans

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/syllabus/internal/archive"
	"github.com/JaimeStill/syllabus/internal/state"
)

// Run reports the outcome of one generation request.
// On success, Stored is populated and Error is empty.
// On failure, Stage names the failed stage and Error carries its message.
type Run struct {
	RunID       uuid.UUID       `json:"run_id"`
	Filename    string          `json:"filename"`
	TotalHours  int             `json:"total_hours"`
	Phase       state.Phase     `json:"phase"`
	Stage       string          `json:"stage,omitempty"`
	Error       string          `json:"error,omitempty"`
	Stored      *archive.Stored `json:"stored,omitempty"`
	Log         []string        `json:"log"`
	CompletedAt time.Time       `json:"completed_at"`
}

// Failed reports whether the run ended in the error phase.
func (r *Run) Failed() bool {
	return r.Phase == state.PhaseError
}

// GenerateCommand carries an uploaded textbook and its class-hour total.
type GenerateCommand struct {
	Data       []byte
	Filename   string
	TotalHours int
}
