package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/syllabus/internal/state"
)

// ExtractStage returns the stage that validates the requested class hours
// and reads the textbook at path.
func ExtractStage(rt *Runtime, path string) StageFunc {
	return guard(rt, state.PhaseExtract, func(ctx context.Context, rt *Runtime, s state.State) (state.Update, error) {
		if s.TotalHours <= 0 {
			return state.Update{}, fmt.Errorf("%w: got %d", ErrInvalidHours, s.TotalHours)
		}

		source, err := rt.Extractor.Extract(ctx, path)
		if err != nil {
			return state.Update{}, err
		}
		if source == nil || (strings.TrimSpace(source.Text) == "" && len(source.Images) == 0) {
			return state.Update{}, ErrNoContent
		}

		scanned := source.Scanned

		rt.logger().InfoContext(
			ctx, "extract stage complete",
			"title", source.Title,
			"pages", source.Pages,
			"chars", len([]rune(source.Text)),
			"scanned", scanned,
		)

		u := completed("extract",
			"textbook extracted",
			fmt.Sprintf("read %d pages from %s (scanned: %t)", source.Pages, source.Title, scanned))
		u.SourceContent = source
		u.IsScannedSource = &scanned
		return u, nil
	})
}
