package artifact_test

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/JaimeStill/syllabus/internal/artifact"
)

func TestDecodeObjectives(t *testing.T) {
	o, err := artifact.DecodeObjectives(payload(t, objectivesJSON))
	if err != nil {
		t.Fatalf("DecodeObjectives: %v", err)
	}

	if o.Count() != 3 {
		t.Errorf("Count = %d, want 3", o.Count())
	}
	if got := o.Domain("ability")[0].Description; got != "能够解决实际问题" {
		t.Errorf("ability description = %q", got)
	}

	var nilObjectives *artifact.Objectives
	if nilObjectives.Count() != 0 || nilObjectives.Domain("knowledge") != nil {
		t.Error("nil Objectives should report no goals")
	}
}

func TestDecodeKnowledge(t *testing.T) {
	set, err := artifact.DecodeKnowledge(payload(t, knowledgeJSON))
	if err != nil {
		t.Fatalf("DecodeKnowledge: %v", err)
	}

	points := set.Points()

	var tiers []artifact.Tier
	for _, p := range points {
		tiers = append(tiers, p.Tier)
	}
	want := []artifact.Tier{artifact.TierBasic, artifact.TierKey, artifact.TierDifficult}
	if !slices.Equal(tiers, want) {
		t.Errorf("tiers = %v, want %v", tiers, want)
	}

	basic := artifact.ByTier(points, artifact.TierBasic)
	if len(basic) != 1 || !basic[0].Detailed() || basic[0].Difficulty != "容易" {
		t.Errorf("basic points = %+v", basic)
	}

	key := artifact.ByTier(points, artifact.TierKey)
	if len(key) != 1 || key[0].Detailed() || key[0].Name != "变量作用域" {
		t.Errorf("key points = %+v", key)
	}
}

func TestDecodeActivities(t *testing.T) {
	plan, err := artifact.DecodeActivities(payload(t, activitiesJSON), 2)
	if err != nil {
		t.Fatalf("DecodeActivities: %v", err)
	}

	hours := plan.Hours()
	if hours["practice"] != 0.5 || hours["assessment"] != 0.25 {
		t.Errorf("Hours = %v", hours)
	}

	list := plan.List()
	if len(list) != 2 {
		t.Fatalf("List length = %d, want 2", len(list))
	}
	if list[1].Duration != 45 {
		t.Errorf("numeric string duration = %v, want 45", list[1].Duration)
	}

	intro := list[0].Process.Phase("introduction")
	if intro == nil || intro.Duration != 5 {
		t.Fatalf("introduction phase = %+v", intro)
	}
	if !slices.Equal(intro.Materials, artifact.Lines{"PPT"}) {
		t.Errorf("Materials = %v, want [PPT]", intro.Materials)
	}
	if list[1].Process.Phase("summary") != nil {
		t.Error("missing process should yield nil phases")
	}
}

func TestDecodeAssessment(t *testing.T) {
	plan, err := artifact.DecodeAssessment(payload(t, assessmentJSON))
	if err != nil {
		t.Fatalf("DecodeAssessment: %v", err)
	}

	if plan.Final.Items[0].Percentage != 40 {
		t.Errorf("percent string decoded as %v, want 40", plan.Final.Items[0].Percentage)
	}
	if got := plan.Process.Items[0].Criteria; !slices.Equal(got, artifact.Lines{"正确率"}) {
		t.Errorf("single criteria = %v", got)
	}
	if got := plan.Process.Items[1].Criteria; len(got) != 2 {
		t.Errorf("list criteria = %v", got)
	}
}

func TestDecodeRejectsBeforeDecoding(t *testing.T) {
	_, err := artifact.DecodeKnowledge(map[string]any{"knowledge_points": []any{}})
	if !errors.Is(err, artifact.ErrSchemaViolation) {
		t.Errorf("error = %v, want ErrSchemaViolation", err)
	}
}

func TestAssessmentPlanMerge(t *testing.T) {
	base := &artifact.AssessmentPlan{
		Process:  &artifact.AssessmentCategory{TotalPercentage: 60},
		Feedback: &artifact.FeedbackMechanism{Frequency: "weekly"},
	}
	overlay := &artifact.AssessmentPlan{
		Final:    &artifact.AssessmentCategory{TotalPercentage: 40},
		Feedback: &artifact.FeedbackMechanism{Frequency: "monthly"},
	}

	merged := base.Merge(overlay)

	if merged.Process != base.Process {
		t.Error("Merge dropped process section")
	}
	if merged.Final != overlay.Final {
		t.Error("Merge did not take final section")
	}
	if merged.Feedback.Frequency != "monthly" {
		t.Errorf("Feedback = %q, want overlay", merged.Feedback.Frequency)
	}
	if base.Final != nil {
		t.Error("Merge mutated receiver")
	}

	var empty *artifact.AssessmentPlan
	if empty.Merge(nil) != nil {
		t.Error("nil.Merge(nil) should be nil")
	}
	if empty.Merge(overlay) != overlay {
		t.Error("nil.Merge(x) should be x")
	}
}

func TestFlexibleFields(t *testing.T) {
	var v struct {
		Q artifact.Quantity `json:"q"`
		T artifact.Text     `json:"t"`
		L artifact.Lines    `json:"l"`
	}

	if err := json.Unmarshal([]byte(`{"q":"90 分钟","t":["a","b"],"l":"single"}`), &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if v.Q != 90 || v.T != "a; b" || !slices.Equal(v.L, artifact.Lines{"single"}) {
		t.Errorf("decoded = %+v", v)
	}
	if v.Q.String() != "90" {
		t.Errorf("Quantity.String = %q", v.Q.String())
	}

	if err := json.Unmarshal([]byte(`{"q":"ninety"}`), &v); err == nil {
		t.Error("expected error for non-numeric quantity")
	}
}
