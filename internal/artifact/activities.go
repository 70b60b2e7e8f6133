package artifact

import (
	"maps"
	"slices"
)

// MinutesPerHour is the length of one class hour.
const MinutesPerHour = 45

// ActivityDurations are the permitted activity lengths in minutes.
var ActivityDurations = []float64{15, 30, 45, 90}

// AllocationCategories are the required time_allocation keys in rendering order.
var AllocationCategories = []string{"knowledge", "skill", "practice", "discussion", "assessment"}

// ProcessPhases are the optional teaching process phases in rendering order.
var ProcessPhases = []string{"introduction", "development", "summary"}

// Phase is one step of an activity's teaching process.
type Phase struct {
	Content    Text     `json:"content,omitempty"`
	Duration   Quantity `json:"duration,omitempty"`
	Activities Lines    `json:"activities,omitempty"`
	Materials  Lines    `json:"materials,omitempty"`
}

// Process is the optional phased breakdown of an activity.
type Process struct {
	Introduction *Phase `json:"introduction,omitempty"`
	Development  *Phase `json:"development,omitempty"`
	Summary      *Phase `json:"summary,omitempty"`
}

// Phase returns the named phase from ProcessPhases, or nil.
func (p *Process) Phase(name string) *Phase {
	if p == nil {
		return nil
	}
	switch name {
	case "introduction":
		return p.Introduction
	case "development":
		return p.Development
	case "summary":
		return p.Summary
	}
	return nil
}

// Activity is one planned teaching activity.
type Activity struct {
	Title           string   `json:"title"`
	Duration        Quantity `json:"duration"`
	Focus           Text     `json:"focus,omitempty"`
	Method          Text     `json:"method,omitempty"`
	Process         *Process `json:"process,omitempty"`
	Highlights      Text     `json:"highlights,omitempty"`
	ExpectedOutcome Text     `json:"expected_outcome,omitempty"`
	PotentialIssues Text     `json:"potential_issues,omitempty"`
	Chapter         Text     `json:"chapter,omitempty"`
}

// ActivityEntry wraps an activity the way the payload nests it.
type ActivityEntry struct {
	Activity Activity `json:"activity"`
}

// ActivityPlan is the decoded activities payload.
type ActivityPlan struct {
	TimeAllocation map[string]Quantity `json:"time_allocation"`
	Activities     []ActivityEntry     `json:"activities"`
}

// Hours converts the allocation to plain hours per category.
func (p *ActivityPlan) Hours() map[string]float64 {
	out := make(map[string]float64, len(p.TimeAllocation))
	for k, v := range p.TimeAllocation {
		out[k] = float64(v)
	}
	return out
}

// List returns the activities without their wrapper records.
func (p *ActivityPlan) List() []Activity {
	out := make([]Activity, len(p.Activities))
	for i, a := range p.Activities {
		out[i] = a.Activity
	}
	return out
}

const activitiesArtifact schema = "activities"

// ValidateActivities checks payload against
// {"time_allocation": {...}, "activities": [{"activity": A}]}. Every allocation
// value must be a non-negative number and the AllocationCategories hours must
// sum to totalHours; other allocation keys are kept but not summed. Activity
// durations, each one of ActivityDurations, must sum to totalHours class hours
// in minutes.
func ValidateActivities(payload any, totalHours int) error {
	s := activitiesArtifact

	if totalHours <= 0 {
		return s.fail("", "total hours must be positive, got %d", totalHours)
	}

	root, err := s.object(payload, "")
	if err != nil {
		return err
	}

	allocation, err := s.objectField(root, "", "time_allocation")
	if err != nil {
		return err
	}

	var hours float64
	for _, key := range AllocationCategories {
		n, err := allocationHours(s, allocation, key)
		if err != nil {
			return err
		}
		hours += n
	}
	for _, key := range slices.Sorted(maps.Keys(allocation)) {
		if slices.Contains(AllocationCategories, key) {
			continue
		}
		if _, err := allocationHours(s, allocation, key); err != nil {
			return err
		}
	}
	if err := s.sum("time_allocation", "sum of allocated hours", hours, float64(totalHours)); err != nil {
		return err
	}

	entries, err := s.listField(root, "", "activities", true)
	if err != nil {
		return err
	}

	var minutes float64
	for i, e := range entries {
		path := index("activities", i)
		entry, err := s.object(e, path)
		if err != nil {
			return err
		}

		activity, err := s.objectField(entry, path, "activity")
		if err != nil {
			return err
		}
		path = join(path, "activity")

		if _, err := s.stringField(activity, path, "title"); err != nil {
			return err
		}

		d, err := s.numberField(activity, path, "duration")
		if err != nil {
			return err
		}
		if !slices.Contains(ActivityDurations, d) {
			return s.fail(join(path, "duration"), "duration %s minutes is not one of %v", num(d), ActivityDurations)
		}
		minutes += d

		if p, ok := activity["process"]; ok && p != nil {
			if err := validateProcess(s, p, join(path, "process")); err != nil {
				return err
			}
		}
	}

	return s.sum("activities", "total activity time in minutes",
		minutes, float64(totalHours*MinutesPerHour))
}

func allocationHours(s schema, allocation map[string]any, key string) (float64, error) {
	n, err := s.numberField(allocation, "time_allocation", key)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, s.fail(join("time_allocation", key), "hours must not be negative, got %s", num(n))
	}
	return n, nil
}

func validateProcess(s schema, v any, path string) error {
	process, err := s.object(v, path)
	if err != nil {
		return err
	}

	for _, name := range ProcessPhases {
		raw, ok := process[name]
		if !ok || raw == nil {
			continue
		}
		phase, err := s.object(raw, join(path, name))
		if err != nil {
			return err
		}
		if _, ok := phase["duration"]; ok {
			if _, err := s.numberField(phase, join(path, name), "duration"); err != nil {
				return err
			}
		}
	}
	return nil
}

// DecodeActivities validates payload and decodes it.
func DecodeActivities(payload any, totalHours int) (*ActivityPlan, error) {
	if err := ValidateActivities(payload, totalHours); err != nil {
		return nil, err
	}

	plan, err := decode[ActivityPlan](string(activitiesArtifact), payload)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}
