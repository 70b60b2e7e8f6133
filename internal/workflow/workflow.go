// Package workflow runs the lesson-plan pipeline: extract, objectives,
// knowledge, activities, assessment and format, followed by persistence.
// Each stage returns a partial update that is merged into the run state; the
// first stage to record an error ends the run.
package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/syllabus/internal/state"
)

const persistStage = "persist"

// Result is the outcome of a single run.
type Result struct {
	RunID uuid.UUID
	// Phase is state.PhaseDone or state.PhaseError.
	Phase state.Phase
	// Stage names the failed stage when Phase is state.PhaseError.
	Stage string
	State state.State
	// Path is the storage location of the persisted document on success.
	Path        string
	CompletedAt time.Time
}

// Err returns the run failure, or nil when the run reached done.
func (r *Result) Err() error {
	if r.Phase != state.PhaseError {
		return nil
	}
	return &RunError{Stage: r.Stage, Message: r.State.ErrorMessage}
}

type step struct {
	phase state.Phase
	run   StageFunc
}

func pipeline(rt *Runtime, path string) []step {
	return []step{
		{state.PhaseExtract, ExtractStage(rt, path)},
		{state.PhaseObjectives, ObjectivesStage(rt)},
		{state.PhaseKnowledge, KnowledgeStage(rt)},
		{state.PhaseActivities, ActivitiesStage(rt)},
		{state.PhaseAssessment, AssessmentStage(rt)},
		{state.PhaseFormat, FormatStage(rt)},
	}
}

// Execute runs the pipeline for the PDF at path. Stages run in fixed order;
// after each merge a recorded error moves the run to the error phase and no
// further stage runs. On reaching done the document is persisted. Callers
// bound the whole run through ctx.
func Execute(ctx context.Context, rt *Runtime, path string, totalHours int) *Result {
	runID := uuid.New()

	run := *rt
	run.Logger = rt.logger().With("run_id", runID)

	result := &Result{RunID: runID}
	s := state.New(totalHours)

	for _, st := range pipeline(&run, path) {
		run.progress(st.phase)

		s = s.Apply(st.run(ctx, s))
		if s.Failed() {
			return finish(result, s, state.PhaseError, string(st.phase))
		}
	}

	run.progress(state.PhaseDone)

	stored, err := run.Persister.Persist(ctx, s.SourceContent.Title, s.FinalDocument, s)
	if err != nil {
		run.Logger.ErrorContext(ctx, "persist failed", "error", err)
		s = s.Apply(state.Fail(persistStage, err))
		return finish(result, s, state.PhaseError, persistStage)
	}

	s = s.Apply(state.Update{
		ProgressStatus: "lesson plan saved",
		Log:            []string{persistStage + ": saved to " + stored},
	})
	result.Path = stored

	run.Logger.InfoContext(ctx, "workflow complete", "path", stored)

	return finish(result, s, state.PhaseDone, "")
}

func finish(r *Result, s state.State, phase state.Phase, stage string) *Result {
	r.Phase = phase
	r.Stage = stage
	r.State = s
	r.CompletedAt = time.Now()
	return r
}
