// Package state holds the record threaded through a lesson-plan run and the
// per-field merge rules applied to each stage's partial update.
package state

import (
	"github.com/JaimeStill/syllabus/internal/artifact"
	"github.com/JaimeStill/syllabus/pkg/reduce"
)

// State is the accumulated result of a run. It is replaced by Apply, never
// modified in place.
type State struct {
	Objectives      *artifact.Objectives      `json:"objectives,omitempty"`
	KnowledgePoints []artifact.KnowledgePoint `json:"knowledge_points,omitempty"`
	Activities      []artifact.Activity       `json:"activities,omitempty"`
	AssessmentPlan  *artifact.AssessmentPlan  `json:"assessment_plan,omitempty"`
	HoursPerSection map[string]float64        `json:"hours_per_section,omitempty"`
	TotalHours      int                       `json:"total_hours"`
	SourceContent   *artifact.Source          `json:"source_content,omitempty"`
	IsScannedSource *bool                     `json:"is_scanned_source,omitempty"`
	ProgressStatus  string                    `json:"progress_status,omitempty"`
	ErrorMessage    string                    `json:"error_message,omitempty"`
	FinalDocument   string                    `json:"final_document,omitempty"`
	Log             []string                  `json:"log,omitempty"`
}

// Update is the partial result of one stage. Zero values mean the stage
// left the field alone.
type Update struct {
	Objectives      *artifact.Objectives
	KnowledgePoints []artifact.KnowledgePoint
	Activities      []artifact.Activity
	AssessmentPlan  *artifact.AssessmentPlan
	HoursPerSection map[string]float64
	TotalHours      *int
	SourceContent   *artifact.Source
	IsScannedSource *bool
	ProgressStatus  string
	ErrorMessage    string
	FinalDocument   string
	Log             []string
}

// New seeds the state for a run.
func New(totalHours int) State {
	return State{TotalHours: totalHours}
}

// Apply merges u into s field by field and returns the merged state.
func (s State) Apply(u Update) State {
	var hours int
	if u.TotalHours != nil {
		hours = *u.TotalHours
	}

	return State{
		Objectives:      reduce.LastNonNull(s.Objectives, u.Objectives),
		KnowledgePoints: reduce.Concat(s.KnowledgePoints, u.KnowledgePoints),
		Activities:      reduce.Concat(s.Activities, u.Activities),
		AssessmentPlan:  s.AssessmentPlan.Merge(u.AssessmentPlan),
		HoursPerSection: reduce.Overlay(s.HoursPerSection, u.HoursPerSection),
		TotalHours:      reduce.FirstNonZero(s.TotalHours, hours),
		SourceContent:   reduce.FirstNonNull(s.SourceContent, u.SourceContent),
		IsScannedSource: reduce.FirstNonNull(s.IsScannedSource, u.IsScannedSource),
		ProgressStatus:  reduce.LastNonZero(s.ProgressStatus, u.ProgressStatus),
		ErrorMessage:    reduce.LastNonZero(s.ErrorMessage, u.ErrorMessage),
		FinalDocument:   reduce.LastNonZero(s.FinalDocument, u.FinalDocument),
		Log:             reduce.Concat(s.Log, u.Log),
	}
}

// Failed reports whether a stage has recorded an error.
func (s State) Failed() bool {
	return s.ErrorMessage != ""
}

// Scanned reports whether the source was a scanned PDF.
func (s State) Scanned() bool {
	return s.IsScannedSource != nil && *s.IsScannedSource
}

// Fail builds the update a stage returns when it cannot complete.
func Fail(stage string, err error) Update {
	msg := stage + ": " + err.Error()
	return Update{
		ErrorMessage: msg,
		Log:          []string{msg},
	}
}
