// Package prompts holds the instructions and output specifications sent to
// the model at each generation stage, with optional per-stage instruction
// overrides.
package prompts

import (
	"encoding/json"
	"slices"
)

// Stage identifies a generation stage.
type Stage string

// Generation stages in pipeline order.
const (
	StageObjectives Stage = "objectives"
	StageKnowledge  Stage = "knowledge"
	StageActivities Stage = "activities"
	StageAssessment Stage = "assessment"
)

var stages = []Stage{
	StageObjectives,
	StageKnowledge,
	StageActivities,
	StageAssessment,
}

// Stages returns the generation stages in pipeline order.
func Stages() []Stage {
	return stages
}

// UnmarshalText validates that the decoded string is a known stage value.
// It lets Stage be used as a TOML or JSON map key.
func (s *Stage) UnmarshalText(data []byte) error {
	v, err := ParseStage(string(data))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// UnmarshalJSON validates that the decoded string is a known stage value.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return s.UnmarshalText([]byte(raw))
}

// ParseStage validates a string as a known generation stage.
// Returns ErrInvalidStage if the value is not recognized.
func ParseStage(s string) (Stage, error) {
	v := Stage(s)
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}
