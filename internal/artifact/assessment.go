package artifact

// Required category weights in percent.
const (
	ProcessPercentage = 60
	FinalPercentage   = 40
)

// AssessmentItem is one weighted assessment activity.
type AssessmentItem struct {
	Name        Text     `json:"name"`
	Description Text     `json:"description"`
	Percentage  Quantity `json:"percentage"`
	Criteria    Lines    `json:"criteria"`
	Methods     Lines    `json:"methods"`
}

// AssessmentCategory groups items under a total weight.
type AssessmentCategory struct {
	TotalPercentage Quantity         `json:"total_percentage"`
	Items           []AssessmentItem `json:"items"`
}

// FeedbackMechanism describes how assessment results flow back to students.
type FeedbackMechanism struct {
	Methods     Lines `json:"methods"`
	Frequency   Text  `json:"frequency"`
	Improvement Lines `json:"improvement"`
}

// AssessmentPlan splits assessment into process (formative) and final
// (summative) categories plus a feedback mechanism.
type AssessmentPlan struct {
	Process  *AssessmentCategory `json:"process_assessment,omitempty"`
	Final    *AssessmentCategory `json:"final_assessment,omitempty"`
	Feedback *FeedbackMechanism  `json:"feedback_mechanism,omitempty"`
}

// Merge returns a new plan where non-nil sections of overlay replace those of p.
// Either side may be nil.
func (p *AssessmentPlan) Merge(overlay *AssessmentPlan) *AssessmentPlan {
	if overlay == nil {
		return p
	}
	if p == nil {
		return overlay
	}

	merged := *p
	if overlay.Process != nil {
		merged.Process = overlay.Process
	}
	if overlay.Final != nil {
		merged.Final = overlay.Final
	}
	if overlay.Feedback != nil {
		merged.Feedback = overlay.Feedback
	}
	return &merged
}

const assessmentArtifact schema = "assessment"

// ValidateAssessment checks payload against
// {"process_assessment": C, "final_assessment": C, "feedback_mechanism": F}.
// Process must weigh exactly 60 percent, final exactly 40, and each category's
// item percentages must sum to its total.
func ValidateAssessment(payload any) error {
	s := assessmentArtifact

	root, err := s.object(payload, "")
	if err != nil {
		return err
	}

	for _, category := range []struct {
		key   string
		total float64
	}{
		{"process_assessment", ProcessPercentage},
		{"final_assessment", FinalPercentage},
	} {
		if err := validateCategory(s, root, category.key, category.total); err != nil {
			return err
		}
	}

	feedback, err := s.objectField(root, "", "feedback_mechanism")
	if err != nil {
		return err
	}
	if err := s.stringListField(feedback, "feedback_mechanism", "methods", false); err != nil {
		return err
	}
	if _, err := s.stringField(feedback, "feedback_mechanism", "frequency"); err != nil {
		return err
	}
	return s.stringListField(feedback, "feedback_mechanism", "improvement", false)
}

func validateCategory(s schema, root map[string]any, key string, required float64) error {
	category, err := s.objectField(root, "", key)
	if err != nil {
		return err
	}

	total, err := s.numberField(category, key, "total_percentage")
	if err != nil {
		return err
	}
	if total != required {
		return s.fail(join(key, "total_percentage"), "must be exactly %s, got %s", num(required), num(total))
	}

	items, err := s.listField(category, key, "items", true)
	if err != nil {
		return err
	}

	var sum float64
	for i, v := range items {
		path := index(join(key, "items"), i)
		item, err := s.object(v, path)
		if err != nil {
			return err
		}
		for _, k := range []string{"name", "description", "criteria", "methods"} {
			if _, err := s.field(item, path, k); err != nil {
				return err
			}
		}
		p, err := s.numberField(item, path, "percentage")
		if err != nil {
			return err
		}
		sum += p
	}

	return s.sum(join(key, "items"), "sum of item percentages", sum, total)
}

// DecodeAssessment validates payload and decodes it.
func DecodeAssessment(payload any) (*AssessmentPlan, error) {
	if err := ValidateAssessment(payload); err != nil {
		return nil, err
	}

	plan, err := decode[AssessmentPlan](string(assessmentArtifact), payload)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}
