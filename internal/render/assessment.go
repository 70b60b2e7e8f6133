package render

import "github.com/JaimeStill/syllabus/internal/artifact"

func assessment(w *writer, plan *artifact.AssessmentPlan) {
	if plan == nil {
		w.line(Missing)
		w.blank()
		return
	}

	category(w, "Process assessment", plan.Process)
	category(w, "Final assessment", plan.Final)

	w.line("### Feedback mechanism")
	w.blank()
	if plan.Feedback == nil {
		w.line("- %s", Unspecified)
		w.blank()
		return
	}
	w.list(0, "Methods", plan.Feedback.Methods)
	w.field(0, "Frequency", string(plan.Feedback.Frequency))
	w.list(0, "Improvement", plan.Feedback.Improvement)
	w.blank()
}

func category(w *writer, title string, c *artifact.AssessmentCategory) {
	if c == nil {
		w.line("### %s", title)
		w.blank()
		w.line("- %s", Unspecified)
		w.blank()
		return
	}

	w.line("### %s (%s%%)", title, c.TotalPercentage.String())
	w.blank()

	if len(c.Items) == 0 {
		w.line("- %s", Unspecified)
		w.blank()
		return
	}

	for _, item := range c.Items {
		w.line("#### %s (%s%%)", orUnspecified(string(item.Name)), item.Percentage.String())
		w.blank()
		w.field(0, "Description", string(item.Description))
		w.list(0, "Criteria", item.Criteria)
		w.list(0, "Methods", item.Methods)
		w.blank()
	}
}
