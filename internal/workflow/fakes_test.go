package workflow_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/JaimeStill/syllabus/internal/artifact"
	"github.com/JaimeStill/syllabus/internal/prompts"
	"github.com/JaimeStill/syllabus/internal/workflow"
)

type fakeExtractor struct {
	source *artifact.Source
	err    error
	calls  int
}

func (f *fakeExtractor) Extract(ctx context.Context, path string) (*artifact.Source, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.source, nil
}

// fakeGenerator replies with a canned response per stage and records requests.
type fakeGenerator struct {
	mu        sync.Mutex
	responses map[prompts.Stage]string
	errs      map[prompts.Stage]error
	panics    map[prompts.Stage]bool
	requests  []workflow.Request
}

func newGenerator(hours int) *fakeGenerator {
	return &fakeGenerator{
		responses: map[prompts.Stage]string{
			prompts.StageObjectives: objectivesReply,
			prompts.StageKnowledge:  knowledgeReply,
			prompts.StageActivities: activitiesReply(hours, hours),
			prompts.StageAssessment: assessmentReply,
		},
		errs:   map[prompts.Stage]error{},
		panics: map[prompts.Stage]bool{},
	}
}

func (g *fakeGenerator) Generate(ctx context.Context, req workflow.Request) (string, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	g.mu.Unlock()

	if g.panics[req.Stage] {
		panic("generator exploded")
	}
	if err := g.errs[req.Stage]; err != nil {
		return "", err
	}
	return g.responses[req.Stage], nil
}

func (g *fakeGenerator) calls(stage prompts.Stage) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := 0
	for _, r := range g.requests {
		if r.Stage == stage {
			n++
		}
	}
	return n
}

func (g *fakeGenerator) request(stage prompts.Stage) (workflow.Request, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, r := range g.requests {
		if r.Stage == stage {
			return r, true
		}
	}
	return workflow.Request{}, false
}

type fakePersister struct {
	err       error
	calls     int
	course    string
	document  string
	snapshots []any
}

func (p *fakePersister) Persist(ctx context.Context, course, document string, snapshot any) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	p.course = course
	p.document = document
	p.snapshots = append(p.snapshots, snapshot)
	return "/out/" + course + ".md", nil
}

const objectivesReply = "```json\n" + `{
  "objectives": {
    "knowledge": [{"level": "understand", "description": "Explain recursion", "evaluation": "quiz"}],
    "ability": [{"level": "apply", "description": "Write recursive functions", "evaluation": "lab"}],
    "emotion": [{"level": "value", "description": "Appreciate elegance", "evaluation": "discussion"}]
  }
}` + "\n```"

const knowledgeReply = `{
  "knowledge_points": {
    "basic": [{
      "name": "Recursion",
      "content": "functions calling themselves",
      "difficulty": "medium",
      "importance": "core",
      "prerequisites": ["Functions"],
      "objectives": ["Explain recursion"],
      "teaching_suggestions": "trace small examples"
    }],
    "advanced": [],
    "key_points": ["Base case"],
    "difficult_points": ["Stack depth"]
  }
}`

const knowledgeReplyNoPrerequisites = `{
  "knowledge_points": {
    "basic": [{
      "name": "Recursion",
      "content": "functions calling themselves",
      "difficulty": "medium",
      "importance": "core",
      "objectives": ["Explain recursion"],
      "teaching_suggestions": "trace small examples"
    }],
    "advanced": [],
    "key_points": ["Base case"],
    "difficult_points": ["Stack depth"]
  }
}`

// activitiesReply allocates allocated hours across the five categories and
// plans enough 90 and 45 minute activities to fill planned class hours.
func activitiesReply(allocated, planned int) string {
	knowledge := allocated - 4
	alloc := fmt.Sprintf(`{"knowledge": %d, "skill": 1, "practice": "1", "discussion": 1, "assessment": 1}`, knowledge)

	var acts []string
	minutes := planned * artifact.MinutesPerHour
	for i := 0; minutes > 0; i++ {
		d := 90
		if minutes < 90 {
			d = 45
		}
		acts = append(acts, fmt.Sprintf(`{"activity": {"title": "Session %d", "duration": %d, "chapter": "Chapter %d"}}`, i+1, d, i+1))
		minutes -= d
	}

	return fmt.Sprintf(`{"time_allocation": %s, "activities": [%s]}`, alloc, strings.Join(acts, ", "))
}

const assessmentReply = `{
  "process_assessment": {"total_percentage": 60, "items": [
    {"name": "Homework", "description": "weekly sets", "percentage": 40, "criteria": "correctness", "methods": ["grading"]},
    {"name": "Participation", "description": "in class", "percentage": 20, "criteria": ["attendance"], "methods": "observation"}
  ]},
  "final_assessment": {"total_percentage": 40, "items": [
    {"name": "Exam", "description": "closed book", "percentage": 40, "criteria": "paper", "methods": ["written"]}
  ]},
  "feedback_mechanism": {"methods": ["office hours"], "frequency": "weekly", "improvement": ["adjust pacing"]}
}`
