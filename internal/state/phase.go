package state

// Phase is a position of the run's state machine.
type Phase string

const (
	PhaseExtract    Phase = "extract"
	PhaseObjectives Phase = "objectives"
	PhaseKnowledge  Phase = "knowledge"
	PhaseActivities Phase = "activities"
	PhaseAssessment Phase = "assessment"
	PhaseFormat     Phase = "format"
	PhaseDone       Phase = "done"
	PhaseError      Phase = "error"
)

// Terminal reports whether no further transition leaves p.
func (p Phase) Terminal() bool {
	return p == PhaseDone || p == PhaseError
}
