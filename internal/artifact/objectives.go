package artifact

// ObjectiveDomains lists the objective categories in rendering order.
var ObjectiveDomains = []string{"knowledge", "ability", "emotion"}

// Goal is a single teaching objective.
type Goal struct {
	Level       string `json:"level"`
	Description string `json:"description"`
	Evaluation  string `json:"evaluation"`
}

// Objectives groups goals by domain.
type Objectives struct {
	Knowledge []Goal `json:"knowledge"`
	Ability   []Goal `json:"ability"`
	Emotion   []Goal `json:"emotion"`
}

// Domain returns the goals for one of ObjectiveDomains.
func (o *Objectives) Domain(name string) []Goal {
	if o == nil {
		return nil
	}
	switch name {
	case "knowledge":
		return o.Knowledge
	case "ability":
		return o.Ability
	case "emotion":
		return o.Emotion
	}
	return nil
}

// Count returns the total number of goals.
func (o *Objectives) Count() int {
	if o == nil {
		return 0
	}
	return len(o.Knowledge) + len(o.Ability) + len(o.Emotion)
}

const objectivesArtifact schema = "objectives"

// ValidateObjectives checks payload against
// {"objectives": {"knowledge": [G], "ability": [G], "emotion": [G]}}.
func ValidateObjectives(payload any) error {
	s := objectivesArtifact

	root, err := s.object(payload, "")
	if err != nil {
		return err
	}

	objectives, err := s.objectField(root, "", "objectives")
	if err != nil {
		return err
	}

	for _, domain := range ObjectiveDomains {
		path := join("objectives", domain)
		goals, err := s.listField(objectives, "objectives", domain, true)
		if err != nil {
			return err
		}

		for i, g := range goals {
			gp := index(path, i)
			goal, err := s.object(g, gp)
			if err != nil {
				return err
			}
			for _, key := range []string{"level", "description", "evaluation"} {
				if _, err := s.stringField(goal, gp, key); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// DecodeObjectives validates payload and decodes it.
func DecodeObjectives(payload any) (*Objectives, error) {
	if err := ValidateObjectives(payload); err != nil {
		return nil, err
	}

	wrapper, err := decode[struct {
		Objectives Objectives `json:"objectives"`
	}](string(objectivesArtifact), payload)
	if err != nil {
		return nil, err
	}
	return &wrapper.Objectives, nil
}
