package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/syllabus/internal/artifact"
	"github.com/JaimeStill/syllabus/internal/state"
	"github.com/JaimeStill/syllabus/pkg/formatting"
)

// StageFunc runs one pipeline stage against a read-only state and returns the
// fields it changed. Failures are reported through Update.ErrorMessage.
type StageFunc func(ctx context.Context, s state.State) state.Update

type stageBody func(ctx context.Context, rt *Runtime, s state.State) (state.Update, error)

// guard converts errors and panics raised by body into an error update.
func guard(rt *Runtime, phase state.Phase, body stageBody) StageFunc {
	return func(ctx context.Context, s state.State) (u state.Update) {
		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("%w: %v", ErrStagePanic, r)
				rt.logger().ErrorContext(ctx, "stage panicked", "stage", phase, "error", err)
				u = state.Fail(string(phase), err)
			}
		}()

		if err := ctx.Err(); err != nil {
			return state.Fail(string(phase), err)
		}

		u, err := body(ctx, rt, s)
		if err != nil {
			rt.logger().ErrorContext(ctx, "stage failed", "stage", phase, "error", err)
			return state.Fail(string(phase), err)
		}
		return u
	}
}

// generate sends req and decodes the reply as a JSON object.
func generate(ctx context.Context, rt *Runtime, req Request) (map[string]any, error) {
	content, err := rt.Generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return formatting.Parse[map[string]any](content)
}

// courseSection describes the fixed course parameters every prompt carries.
func courseSection(s state.State) Section {
	params := map[string]any{
		"total_hours":   s.TotalHours,
		"total_minutes": s.TotalHours * artifact.MinutesPerHour,
	}
	if s.SourceContent != nil && s.SourceContent.Title != "" {
		params["course"] = s.SourceContent.Title
	}
	return Section{Label: "Course parameters", Value: params}
}

func completed(stage, status, line string) state.Update {
	return state.Update{
		ProgressStatus: status,
		Log:            []string{stage + ": " + line},
	}
}
