package prompts_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/JaimeStill/syllabus/internal/prompts"
)

func TestStageCatalogComplete(t *testing.T) {
	for _, stage := range prompts.Stages() {
		t.Run(string(stage), func(t *testing.T) {
			instructions, err := prompts.Instructions(stage)
			if err != nil || instructions == "" {
				t.Errorf("Instructions(%s) = %q, %v", stage, instructions, err)
			}

			spec, err := prompts.Spec(stage)
			if err != nil {
				t.Fatalf("Spec(%s): %v", stage, err)
			}
			if !strings.Contains(spec, "valid JSON") {
				t.Errorf("Spec(%s) does not require JSON", stage)
			}
		})
	}
}

func TestSpecsNameCanonicalKeys(t *testing.T) {
	tests := []struct {
		stage prompts.Stage
		keys  []string
	}{
		{prompts.StageObjectives, []string{`"objectives"`, `"knowledge"`, `"ability"`, `"emotion"`}},
		{prompts.StageKnowledge, []string{`"knowledge_points"`, `"prerequisites"`, `"key_points"`, `"difficult_points"`}},
		{prompts.StageActivities, []string{`"time_allocation"`, `"activity"`, `"duration"`, "15, 30, 45 or 90"}},
		{prompts.StageAssessment, []string{`"process_assessment"`, `"final_assessment"`, `"feedback_mechanism"`, "exactly 60"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			spec, _ := prompts.Spec(tt.stage)
			for _, key := range tt.keys {
				if !strings.Contains(spec, key) {
					t.Errorf("spec missing %s", key)
				}
			}
		})
	}
}

func TestParseStage(t *testing.T) {
	tests := []struct {
		input   string
		want    prompts.Stage
		wantErr bool
	}{
		{"objectives", prompts.StageObjectives, false},
		{"assessment", prompts.StageAssessment, false},
		{"classify", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := prompts.ParseStage(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStage(%q) error = %v", tt.input, err)
			}
			if tt.wantErr && !errors.Is(err, prompts.ErrInvalidStage) {
				t.Errorf("error = %v, want ErrInvalidStage", err)
			}
			if got != tt.want {
				t.Errorf("ParseStage(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStageUnmarshal(t *testing.T) {
	var m map[prompts.Stage]string
	if err := json.Unmarshal([]byte(`{"knowledge":"x"}`), &m); err != nil {
		t.Fatalf("Unmarshal map key: %v", err)
	}
	if m[prompts.StageKnowledge] != "x" {
		t.Errorf("map = %v", m)
	}

	var s prompts.Stage
	if err := json.Unmarshal([]byte(`"enhance"`), &s); !errors.Is(err, prompts.ErrInvalidStage) {
		t.Errorf("error = %v, want ErrInvalidStage", err)
	}
}

func TestCatalog(t *testing.T) {
	c, err := prompts.NewCatalog(map[string]string{
		"knowledge":  "  custom knowledge instructions  ",
		"activities": "   ",
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	got, _ := c.Instructions(prompts.StageKnowledge)
	if got != "custom knowledge instructions" {
		t.Errorf("override = %q", got)
	}
	if !c.Overridden(prompts.StageKnowledge) {
		t.Error("knowledge should be overridden")
	}

	def, _ := prompts.Instructions(prompts.StageActivities)
	if got, _ := c.Instructions(prompts.StageActivities); got != def {
		t.Error("blank override should fall back to default")
	}

	if _, err := prompts.NewCatalog(map[string]string{"finalize": "x"}); !errors.Is(err, prompts.ErrInvalidStage) {
		t.Errorf("unknown stage error = %v, want ErrInvalidStage", err)
	}

	var nilCatalog *prompts.Catalog
	if got, _ := nilCatalog.Instructions(prompts.StageObjectives); got == "" {
		t.Error("nil catalog should return defaults")
	}
}
