package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/syllabus/internal/artifact"
	"github.com/JaimeStill/syllabus/internal/prompts"
	"github.com/JaimeStill/syllabus/internal/state"
)

// AssessmentStage returns the stage that designs the assessment plan.
func AssessmentStage(rt *Runtime) StageFunc {
	return guard(rt, state.PhaseAssessment, func(ctx context.Context, rt *Runtime, s state.State) (state.Update, error) {
		if s.Objectives == nil {
			return state.Update{}, fmt.Errorf("%w: objectives", ErrMissingInput)
		}
		if len(s.KnowledgePoints) == 0 {
			return state.Update{}, fmt.Errorf("%w: knowledge points", ErrMissingInput)
		}

		sections := []Section{
			courseSection(s),
			{Label: "Teaching objectives", Value: s.Objectives},
			{Label: "Knowledge points", Value: s.KnowledgePoints},
		}
		if len(s.Activities) > 0 {
			sections = append(sections, Section{Label: "Teaching activities", Value: s.Activities})
		}

		req, err := ComposePrompt(rt.Prompts, prompts.StageAssessment, sections...)
		if err != nil {
			return state.Update{}, err
		}
		req.Vision = s.Scanned()

		payload, err := generate(ctx, rt, req)
		if err != nil {
			return state.Update{}, err
		}

		plan, err := artifact.DecodeAssessment(payload)
		if err != nil {
			return state.Update{}, err
		}

		rt.logger().InfoContext(
			ctx, "assessment stage complete",
			"process_items", len(plan.Process.Items),
			"final_items", len(plan.Final.Items),
		)

		u := completed("assessment", "assessment designed",
			fmt.Sprintf("designed %d assessment items", len(plan.Process.Items)+len(plan.Final.Items)))
		u.AssessmentPlan = plan
		return u, nil
	})
}
