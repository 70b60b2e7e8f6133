package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/syllabus/internal/artifact"
	"github.com/JaimeStill/syllabus/internal/prompts"
	"github.com/JaimeStill/syllabus/internal/state"
)

// ActivitiesStage returns the stage that plans teaching activities and the
// hour allocation for the knowledge points.
func ActivitiesStage(rt *Runtime) StageFunc {
	return guard(rt, state.PhaseActivities, func(ctx context.Context, rt *Runtime, s state.State) (state.Update, error) {
		if len(s.KnowledgePoints) == 0 {
			return state.Update{}, fmt.Errorf("%w: knowledge points", ErrMissingInput)
		}

		req, err := ComposePrompt(rt.Prompts, prompts.StageActivities,
			courseSection(s),
			Section{Label: "Knowledge points", Value: s.KnowledgePoints},
		)
		if err != nil {
			return state.Update{}, err
		}
		req.Vision = s.Scanned()

		payload, err := generate(ctx, rt, req)
		if err != nil {
			return state.Update{}, err
		}

		plan, err := artifact.DecodeActivities(payload, s.TotalHours)
		if err != nil {
			return state.Update{}, err
		}
		activities := plan.List()

		rt.logger().InfoContext(
			ctx, "activities stage complete",
			"activities", len(activities),
			"total_hours", s.TotalHours,
		)

		u := completed("activities", "activities planned",
			fmt.Sprintf("planned %d activities over %d class hours", len(activities), s.TotalHours))
		u.Activities = activities
		u.HoursPerSection = plan.Hours()
		return u, nil
	})
}
