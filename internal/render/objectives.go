package render

import "github.com/JaimeStill/syllabus/internal/artifact"

var domainTitles = map[string]string{
	"knowledge": "Knowledge objectives",
	"ability":   "Ability objectives",
	"emotion":   "Emotion and attitude objectives",
}

func objectives(w *writer, o *artifact.Objectives) {
	if o == nil {
		w.line(Missing)
		w.blank()
		return
	}

	for _, domain := range artifact.ObjectiveDomains {
		w.line("### %s", domainTitles[domain])
		w.blank()

		goals := o.Domain(domain)
		if len(goals) == 0 {
			w.line("- %s", Unspecified)
			w.blank()
			continue
		}

		for _, g := range goals {
			w.line("- %s", orUnspecified(g.Description))
			w.field(1, "Level", g.Level)
			w.field(1, "Evaluation", g.Evaluation)
		}
		w.blank()
	}
}
