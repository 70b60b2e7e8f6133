package render

import "github.com/JaimeStill/syllabus/internal/artifact"

var tierTitles = map[artifact.Tier]string{
	artifact.TierBasic:     "Basic knowledge points",
	artifact.TierAdvanced:  "Advanced knowledge points",
	artifact.TierKey:       "Key points",
	artifact.TierDifficult: "Difficult points",
}

func knowledge(w *writer, points []artifact.KnowledgePoint) {
	if len(points) == 0 {
		w.line(Missing)
		w.blank()
		return
	}

	for _, tier := range artifact.Tiers {
		w.line("### %s", tierTitles[tier])
		w.blank()

		group := artifact.ByTier(points, tier)
		if len(group) == 0 {
			w.line("- %s", Unspecified)
			w.blank()
			continue
		}

		if tier == artifact.TierKey || tier == artifact.TierDifficult {
			for _, p := range group {
				w.line("- %s", orUnspecified(p.Name))
			}
			w.blank()
			continue
		}

		for _, p := range group {
			w.line("#### %s", orUnspecified(p.Name))
			w.blank()
			w.field(0, "Content", string(p.Content))
			w.field(0, "Difficulty", string(p.Difficulty))
			w.field(0, "Importance", string(p.Importance))
			if len(p.Prerequisites) == 0 {
				w.field(0, "Prerequisites", "none")
			} else {
				w.list(0, "Prerequisites", p.Prerequisites)
			}
			w.list(0, "Objectives served", p.Objectives)
			w.field(0, "Teaching suggestions", string(p.TeachingSuggestions))
			w.blank()
		}
	}
}
