// Package render turns a run state into the lesson-plan Markdown document.
// Rendering is total and deterministic: absent sections and fields become
// placeholders, lists keep their input order and maps are written in a fixed
// key order.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JaimeStill/syllabus/internal/artifact"
	"github.com/JaimeStill/syllabus/internal/state"
)

const (
	// Missing marks a section that has not been generated.
	Missing = "_Not yet generated._"
	// Unspecified marks an absent field within a generated section.
	Unspecified = "not specified"
)

// Section headers in document order.
const (
	HeaderObjectives = "## 1. Teaching Objectives"
	HeaderKnowledge  = "## 2. Knowledge Points"
	HeaderActivities = "## 3. Teaching Activities"
	HeaderAssessment = "## 4. Assessment"
)

// Document renders s as Markdown.
func Document(s state.State) string {
	w := &writer{}

	title := "Lesson Plan"
	if s.SourceContent != nil && strings.TrimSpace(s.SourceContent.Title) != "" {
		title = strings.TrimSpace(s.SourceContent.Title) + " Lesson Plan"
	}
	w.line("# %s", title)
	w.blank()

	hours := Unspecified
	if s.TotalHours > 0 {
		hours = fmt.Sprintf("%d class hours (%d minutes)", s.TotalHours, s.TotalHours*artifact.MinutesPerHour)
	}
	w.line("**Total hours:** %s", hours)
	w.blank()

	w.line(HeaderObjectives)
	w.blank()
	objectives(w, s.Objectives)

	w.line(HeaderKnowledge)
	w.blank()
	knowledge(w, s.KnowledgePoints)

	w.line(HeaderActivities)
	w.blank()
	activities(w, s.HoursPerSection, s.Activities)

	w.line(HeaderAssessment)
	w.blank()
	assessment(w, s.AssessmentPlan)

	return strings.TrimRight(w.String(), "\n") + "\n"
}

type writer struct {
	strings.Builder
}

func (w *writer) line(format string, args ...any) {
	if len(args) == 0 {
		w.WriteString(format)
	} else {
		fmt.Fprintf(w, format, args...)
	}
	w.WriteByte('\n')
}

func (w *writer) blank() {
	w.WriteByte('\n')
}

// field writes "- label: value" with a placeholder for blank values.
func (w *writer) field(indent int, label, value string) {
	w.line("%s- %s: %s", strings.Repeat("  ", indent), label, orUnspecified(value))
}

// list writes "- label:" followed by one nested bullet per item.
func (w *writer) list(indent int, label string, items []string) {
	pad := strings.Repeat("  ", indent)

	var kept []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}

	if len(kept) == 0 {
		w.line("%s- %s: %s", pad, label, Unspecified)
		return
	}

	w.line("%s- %s:", pad, label)
	for _, item := range kept {
		w.line("%s  - %s", pad, item)
	}
}

func orUnspecified(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return Unspecified
	}
	return s
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
