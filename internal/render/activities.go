package render

import (
	"maps"
	"slices"

	"github.com/JaimeStill/syllabus/internal/artifact"
)

var categoryTitles = map[string]string{
	"knowledge":  "Knowledge instruction",
	"skill":      "Skill training",
	"practice":   "Practice",
	"discussion": "Discussion",
	"assessment": "Assessment",
}

var phaseTitles = map[string]string{
	"introduction": "Introduction",
	"development":  "Development",
	"summary":      "Summary",
}

func activities(w *writer, hours map[string]float64, list []artifact.Activity) {
	if len(hours) == 0 && len(list) == 0 {
		w.line(Missing)
		w.blank()
		return
	}

	w.line("### Hour allocation")
	w.blank()
	allocation(w, hours)
	w.blank()

	w.line("### Activity plan")
	w.blank()
	if len(list) == 0 {
		w.line("- %s", Unspecified)
		w.blank()
		return
	}

	for i, a := range list {
		activity(w, i+1, a)
	}
}

// allocation writes the canonical categories first, then any other keys sorted.
func allocation(w *writer, hours map[string]float64) {
	if len(hours) == 0 {
		w.line("- %s", Unspecified)
		return
	}

	for _, key := range allocationKeys(hours) {
		label, ok := categoryTitles[key]
		if !ok {
			label = key
		}

		value, ok := hours[key]
		if !ok {
			w.field(0, label, "")
			continue
		}
		w.line("- %s: %s class hours", label, number(value))
	}
}

func allocationKeys(hours map[string]float64) []string {
	keys := slices.Clone(artifact.AllocationCategories)

	extra := slices.Sorted(maps.Keys(hours))
	for _, k := range extra {
		if !slices.Contains(artifact.AllocationCategories, k) {
			keys = append(keys, k)
		}
	}
	return keys
}

func activity(w *writer, n int, a artifact.Activity) {
	w.line("#### Activity %d: %s", n, orUnspecified(a.Title))
	w.blank()

	duration := ""
	if a.Duration > 0 {
		duration = a.Duration.String() + " minutes"
	}
	w.field(0, "Duration", duration)
	w.field(0, "Focus", string(a.Focus))
	w.field(0, "Method", string(a.Method))

	if a.Process == nil {
		w.field(0, "Process", "")
	} else {
		w.line("- Process:")
		for _, name := range artifact.ProcessPhases {
			phase(w, phaseTitles[name], a.Process.Phase(name))
		}
	}

	w.field(0, "Highlights", string(a.Highlights))
	w.field(0, "Expected outcome", string(a.ExpectedOutcome))
	w.field(0, "Potential issues", string(a.PotentialIssues))
	w.field(0, "Chapter", string(a.Chapter))
	w.blank()
}

func phase(w *writer, title string, p *artifact.Phase) {
	if p == nil {
		w.field(1, title, "")
		return
	}

	if p.Duration > 0 {
		w.line("  - %s (%s minutes): %s", title, p.Duration.String(), orUnspecified(string(p.Content)))
	} else {
		w.field(1, title, string(p.Content))
	}
	w.list(2, "Activities", p.Activities)
	w.list(2, "Materials", p.Materials)
}
