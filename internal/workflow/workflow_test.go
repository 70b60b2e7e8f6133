package workflow_test

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/JaimeStill/syllabus/internal/artifact"
	"github.com/JaimeStill/syllabus/internal/prompts"
	"github.com/JaimeStill/syllabus/internal/render"
	"github.com/JaimeStill/syllabus/internal/state"
	"github.com/JaimeStill/syllabus/internal/workflow"
)

type harness struct {
	extractor *fakeExtractor
	generator *fakeGenerator
	persister *fakePersister
	phases    []state.Phase
	rt        *workflow.Runtime
}

func newHarness(t *testing.T, hours int) *harness {
	t.Helper()

	h := &harness{
		extractor: &fakeExtractor{source: &artifact.Source{
			Title: "algorithms",
			Path:  "algorithms.pdf",
			Text:  strings.Repeat("Recursion is a method of solving problems. ", 20),
			Pages: 12,
		}},
		generator: newGenerator(hours),
		persister: &fakePersister{},
	}

	catalog, err := prompts.NewCatalog(nil)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	h.rt = &workflow.Runtime{
		Extractor:      h.extractor,
		Generator:      h.generator,
		Persister:      h.persister,
		Prompts:        catalog,
		Logger:         slog.New(slog.DiscardHandler),
		MaxPromptChars: 100,
		Progress: func(p state.Phase) {
			h.phases = append(h.phases, p)
		},
	}
	return h
}

func (h *harness) run(hours int) *workflow.Result {
	return workflow.Execute(context.Background(), h.rt, "algorithms.pdf", hours)
}

func TestExecuteSuccess(t *testing.T) {
	h := newHarness(t, 16)
	result := h.run(16)

	if err := result.Err(); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Phase != state.PhaseDone {
		t.Fatalf("Phase = %s, want done", result.Phase)
	}
	if h.persister.calls != 1 {
		t.Errorf("persist calls = %d, want 1", h.persister.calls)
	}
	if h.persister.document == "" || h.persister.document != result.State.FinalDocument {
		t.Error("persisted document does not match final document")
	}
	if h.persister.course != "algorithms" {
		t.Errorf("course = %q, want algorithms", h.persister.course)
	}
	if result.Path != "/out/algorithms.md" {
		t.Errorf("Path = %q", result.Path)
	}

	doc := result.State.FinalDocument
	last := -1
	for _, header := range []string{render.HeaderObjectives, render.HeaderKnowledge, render.HeaderActivities, render.HeaderAssessment} {
		i := strings.Index(doc, header)
		if i <= last {
			t.Errorf("header %q missing or out of order", header)
		}
		last = i
	}
	if strings.Contains(doc, render.Missing) {
		t.Error("final document contains a missing-section placeholder")
	}

	wantPhases := []state.Phase{
		state.PhaseExtract, state.PhaseObjectives, state.PhaseKnowledge,
		state.PhaseActivities, state.PhaseAssessment, state.PhaseFormat, state.PhaseDone,
	}
	if !slices.Equal(h.phases, wantPhases) {
		t.Errorf("progress = %v, want %v", h.phases, wantPhases)
	}

	s := result.State
	if s.TotalHours != 16 || len(s.Activities) != 8 || s.HoursPerSection["knowledge"] != 12 {
		t.Errorf("merged state: hours=%d activities=%d allocation=%v", s.TotalHours, len(s.Activities), s.HoursPerSection)
	}
	if len(s.KnowledgePoints) != 3 {
		t.Errorf("knowledge points = %d, want 3", len(s.KnowledgePoints))
	}
	if len(s.Log) != 7 {
		t.Errorf("log lines = %d, want 7: %v", len(s.Log), s.Log)
	}
}

func TestExecuteMissingPrerequisites(t *testing.T) {
	h := newHarness(t, 16)
	h.generator.responses[prompts.StageKnowledge] = knowledgeReplyNoPrerequisites

	result := h.run(16)

	if result.Phase != state.PhaseError || result.Stage != string(state.PhaseKnowledge) {
		t.Fatalf("Phase = %s Stage = %s, want error at knowledge", result.Phase, result.Stage)
	}

	for _, stage := range []prompts.Stage{prompts.StageActivities, prompts.StageAssessment} {
		if n := h.generator.calls(stage); n != 0 {
			t.Errorf("%s generator calls = %d, want 0", stage, n)
		}
	}
	if h.persister.calls != 0 {
		t.Errorf("persist calls = %d, want 0", h.persister.calls)
	}
	if result.State.FinalDocument != "" {
		t.Error("final document set on failure")
	}

	var runErr *workflow.RunError
	if !errors.As(result.Err(), &runErr) {
		t.Fatalf("Err() = %v, want *RunError", result.Err())
	}
	if !strings.HasPrefix(runErr.Message, "knowledge: ") || !strings.Contains(runErr.Message, "prerequisites") {
		t.Errorf("message = %q", runErr.Message)
	}
}

func TestExecuteAllocationMismatch(t *testing.T) {
	h := newHarness(t, 16)
	h.generator.responses[prompts.StageActivities] = activitiesReply(15, 16)

	result := h.run(16)

	if result.Stage != string(state.PhaseActivities) {
		t.Fatalf("Stage = %q, want activities (%s)", result.Stage, result.State.ErrorMessage)
	}
	msg := result.State.ErrorMessage
	for _, want := range []string{"time_allocation", "is 15", "expected 16", "off by 1"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q does not contain %q", msg, want)
		}
	}
	if h.generator.calls(prompts.StageAssessment) != 0 {
		t.Error("assessment ran after activities failed")
	}
}

func TestExecuteStickyError(t *testing.T) {
	h := newHarness(t, 16)
	h.generator.errs[prompts.StageObjectives] = errors.New("upstream 503")

	result := h.run(16)

	if result.State.ErrorMessage != "objectives: upstream 503" {
		t.Errorf("ErrorMessage = %q", result.State.ErrorMessage)
	}
	for _, stage := range []prompts.Stage{prompts.StageKnowledge, prompts.StageActivities, prompts.StageAssessment} {
		if n := h.generator.calls(stage); n != 0 {
			t.Errorf("%s generator calls = %d, want 0", stage, n)
		}
	}
	if slices.Contains(h.phases, state.PhaseKnowledge) {
		t.Errorf("progress continued past failure: %v", h.phases)
	}
}

func TestExecuteRecoversPanics(t *testing.T) {
	h := newHarness(t, 16)
	h.generator.panics[prompts.StageActivities] = true

	result := h.run(16)

	if result.Stage != string(state.PhaseActivities) {
		t.Fatalf("Stage = %q, want activities", result.Stage)
	}
	if !strings.Contains(result.State.ErrorMessage, "generator exploded") {
		t.Errorf("ErrorMessage = %q", result.State.ErrorMessage)
	}
	if result.State.Objectives == nil || len(result.State.KnowledgePoints) == 0 {
		t.Error("earlier stage results lost after panic")
	}
}

func TestExecuteInvalidHours(t *testing.T) {
	for _, hours := range []int{0, -3} {
		h := newHarness(t, 16)
		result := h.run(hours)

		if result.Stage != string(state.PhaseExtract) {
			t.Errorf("hours %d: Stage = %q, want extract", hours, result.Stage)
		}
		if h.extractor.calls != 0 {
			t.Errorf("hours %d: extractor called", hours)
		}
	}
}

func TestExecuteExtractionFailure(t *testing.T) {
	h := newHarness(t, 16)
	h.extractor.err = errors.New("not a pdf")

	result := h.run(16)

	if result.State.ErrorMessage != "extract: not a pdf" {
		t.Errorf("ErrorMessage = %q", result.State.ErrorMessage)
	}
	if len(h.generator.requests) != 0 {
		t.Errorf("generator called %d times", len(h.generator.requests))
	}
}

func TestExecuteEmptySource(t *testing.T) {
	h := newHarness(t, 16)
	h.extractor.source = &artifact.Source{Title: "blank", Text: "   "}

	result := h.run(16)

	if !strings.Contains(result.State.ErrorMessage, workflow.ErrNoContent.Error()) {
		t.Errorf("ErrorMessage = %q", result.State.ErrorMessage)
	}
}

func TestExecutePersistFailure(t *testing.T) {
	h := newHarness(t, 16)
	h.persister.err = errors.New("disk full")

	result := h.run(16)

	if result.Phase != state.PhaseError || result.Stage != "persist" {
		t.Fatalf("Phase = %s Stage = %q", result.Phase, result.Stage)
	}
	if result.Path != "" {
		t.Errorf("Path = %q, want empty", result.Path)
	}
	if result.Err().Error() != "persist: disk full" {
		t.Errorf("Err() = %v", result.Err())
	}
}

func TestExecuteCancelled(t *testing.T) {
	h := newHarness(t, 16)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := workflow.Execute(ctx, h.rt, "algorithms.pdf", 16)

	if result.Stage != string(state.PhaseExtract) || !strings.Contains(result.State.ErrorMessage, context.Canceled.Error()) {
		t.Errorf("Stage = %q message = %q", result.Stage, result.State.ErrorMessage)
	}
}

func TestScannedSourceRouting(t *testing.T) {
	h := newHarness(t, 16)
	h.extractor.source.Scanned = true
	h.extractor.source.Images = []string{"data:image/png;base64,AAAA"}

	if err := h.run(16).Err(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	obj, _ := h.generator.request(prompts.StageObjectives)
	if !obj.Vision || len(obj.Images) != 1 {
		t.Errorf("objectives request vision=%v images=%d", obj.Vision, len(obj.Images))
	}

	know, _ := h.generator.request(prompts.StageKnowledge)
	if !know.Vision || len(know.Images) != 0 {
		t.Errorf("knowledge request vision=%v images=%d", know.Vision, len(know.Images))
	}
}

func TestRequestComposition(t *testing.T) {
	h := newHarness(t, 16)
	if err := h.run(16).Err(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	obj, _ := h.generator.request(prompts.StageObjectives)
	spec, _ := prompts.Spec(prompts.StageObjectives)
	if !strings.HasSuffix(obj.System, spec) {
		t.Error("system prompt does not end with the stage spec")
	}
	if obj.Vision {
		t.Error("text source routed to vision")
	}
	if !strings.Contains(obj.User, `"total_minutes": 720`) {
		t.Errorf("user prompt missing course parameters: %s", obj.User)
	}

	_, body, _ := strings.Cut(obj.User, "Textbook content:\n\n")
	if got := len([]rune(body)); got != 100 {
		t.Errorf("textbook content length = %d, want truncated to 100", got)
	}

	assess, _ := h.generator.request(prompts.StageAssessment)
	for _, label := range []string{"Teaching objectives:", "Knowledge points:", "Teaching activities:"} {
		if !strings.Contains(assess.User, label) {
			t.Errorf("assessment prompt missing %q", label)
		}
	}
}
