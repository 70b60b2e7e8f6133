package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/syllabus/internal/artifact"
	"github.com/JaimeStill/syllabus/internal/prompts"
	"github.com/JaimeStill/syllabus/internal/state"
)

// KnowledgeStage returns the stage that analyses knowledge points from the
// teaching objectives.
func KnowledgeStage(rt *Runtime) StageFunc {
	return guard(rt, state.PhaseKnowledge, func(ctx context.Context, rt *Runtime, s state.State) (state.Update, error) {
		if s.Objectives == nil {
			return state.Update{}, fmt.Errorf("%w: objectives", ErrMissingInput)
		}

		req, err := ComposePrompt(rt.Prompts, prompts.StageKnowledge,
			courseSection(s),
			Section{Label: "Teaching objectives", Value: s.Objectives},
		)
		if err != nil {
			return state.Update{}, err
		}
		req.Vision = s.Scanned()

		payload, err := generate(ctx, rt, req)
		if err != nil {
			return state.Update{}, err
		}

		set, err := artifact.DecodeKnowledge(payload)
		if err != nil {
			return state.Update{}, err
		}
		points := set.Points()

		rt.logger().InfoContext(
			ctx, "knowledge stage complete",
			"basic", len(set.Basic),
			"advanced", len(set.Advanced),
			"key", len(set.KeyPoints),
			"difficult", len(set.DifficultPoints),
		)

		u := completed("knowledge", "knowledge points analysed",
			fmt.Sprintf("identified %d knowledge points", len(points)))
		u.KnowledgePoints = points
		return u, nil
	})
}
