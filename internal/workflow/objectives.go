package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/syllabus/internal/artifact"
	"github.com/JaimeStill/syllabus/internal/prompts"
	"github.com/JaimeStill/syllabus/internal/state"
)

// ObjectivesStage returns the stage that derives teaching objectives from the
// textbook content. Scanned sources attach their page images.
func ObjectivesStage(rt *Runtime) StageFunc {
	return guard(rt, state.PhaseObjectives, func(ctx context.Context, rt *Runtime, s state.State) (state.Update, error) {
		if s.SourceContent == nil {
			return state.Update{}, fmt.Errorf("%w: source content", ErrMissingInput)
		}

		req, err := ComposePrompt(rt.Prompts, prompts.StageObjectives,
			courseSection(s),
			Section{Label: "Textbook content", Value: truncate(s.SourceContent.Text, rt.MaxPromptChars)},
		)
		if err != nil {
			return state.Update{}, err
		}
		req.Vision = s.Scanned()
		if req.Vision {
			req.Images = s.SourceContent.Images
		}

		payload, err := generate(ctx, rt, req)
		if err != nil {
			return state.Update{}, err
		}

		objectives, err := artifact.DecodeObjectives(payload)
		if err != nil {
			return state.Update{}, err
		}

		rt.logger().InfoContext(
			ctx, "objectives stage complete",
			"knowledge", len(objectives.Knowledge),
			"ability", len(objectives.Ability),
			"emotion", len(objectives.Emotion),
		)

		u := completed("objectives", "objectives generated",
			fmt.Sprintf("generated %d objectives", objectives.Count()))
		u.Objectives = objectives
		return u, nil
	})
}
