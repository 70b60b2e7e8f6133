package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/syllabus/internal/render"
	"github.com/JaimeStill/syllabus/internal/state"
)

// FormatStage returns the stage that renders the merged state as Markdown.
func FormatStage(rt *Runtime) StageFunc {
	return guard(rt, state.PhaseFormat, func(ctx context.Context, rt *Runtime, s state.State) (state.Update, error) {
		if s.AssessmentPlan == nil {
			return state.Update{}, fmt.Errorf("%w: assessment plan", ErrMissingInput)
		}

		doc := render.Document(s)

		rt.logger().InfoContext(ctx, "format stage complete", "bytes", len(doc))

		u := completed("format", "document rendered", fmt.Sprintf("rendered %d bytes", len(doc)))
		u.FinalDocument = doc
		return u, nil
	})
}
