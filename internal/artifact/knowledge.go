package artifact

// Tier classifies a knowledge point.
type Tier string

const (
	TierBasic     Tier = "basic"
	TierAdvanced  Tier = "advanced"
	TierKey       Tier = "key"
	TierDifficult Tier = "difficult"
)

// Tiers lists every tier in rendering order.
var Tiers = []Tier{TierBasic, TierAdvanced, TierKey, TierDifficult}

// KnowledgePoint is one analysed point. Key and difficult points only carry a Name.
type KnowledgePoint struct {
	Tier                Tier     `json:"tier"`
	Name                string   `json:"name"`
	Content             Text     `json:"content,omitempty"`
	Difficulty          Text     `json:"difficulty,omitempty"`
	Importance          Text     `json:"importance,omitempty"`
	Prerequisites       []string `json:"prerequisites,omitempty"`
	Objectives          []string `json:"objectives,omitempty"`
	TeachingSuggestions Text     `json:"teaching_suggestions,omitempty"`
}

// Detailed reports whether the point is a structured basic or advanced record.
func (k KnowledgePoint) Detailed() bool {
	return k.Tier == TierBasic || k.Tier == TierAdvanced
}

// KnowledgeSet is the decoded knowledge_points payload.
type KnowledgeSet struct {
	Basic           []KnowledgePoint `json:"basic"`
	Advanced        []KnowledgePoint `json:"advanced"`
	KeyPoints       []string         `json:"key_points"`
	DifficultPoints []string         `json:"difficult_points"`
}

// Points flattens the set into tier-tagged records in tier order.
func (s KnowledgeSet) Points() []KnowledgePoint {
	out := make([]KnowledgePoint, 0,
		len(s.Basic)+len(s.Advanced)+len(s.KeyPoints)+len(s.DifficultPoints))

	for _, p := range s.Basic {
		p.Tier = TierBasic
		out = append(out, p)
	}
	for _, p := range s.Advanced {
		p.Tier = TierAdvanced
		out = append(out, p)
	}
	for _, name := range s.KeyPoints {
		out = append(out, KnowledgePoint{Tier: TierKey, Name: name})
	}
	for _, name := range s.DifficultPoints {
		out = append(out, KnowledgePoint{Tier: TierDifficult, Name: name})
	}
	return out
}

// ByTier returns the points of a tier preserving input order.
func ByTier(points []KnowledgePoint, tier Tier) []KnowledgePoint {
	var out []KnowledgePoint
	for _, p := range points {
		if p.Tier == tier {
			out = append(out, p)
		}
	}
	return out
}

const knowledgeArtifact schema = "knowledge_points"

var knowledgeTextKeys = []string{"name", "content", "difficulty", "importance", "teaching_suggestions"}

// ValidateKnowledge checks payload against
// {"knowledge_points": {"basic": [K], "advanced": [K], "key_points": [string], "difficult_points": [string]}}.
// basic, key_points and difficult_points must be non-empty.
func ValidateKnowledge(payload any) error {
	s := knowledgeArtifact

	root, err := s.object(payload, "")
	if err != nil {
		return err
	}

	kp, err := s.objectField(root, "", "knowledge_points")
	if err != nil {
		return err
	}

	for _, tier := range []struct {
		key      string
		nonEmpty bool
	}{
		{"basic", true},
		{"advanced", false},
	} {
		points, err := s.listField(kp, "knowledge_points", tier.key, tier.nonEmpty)
		if err != nil {
			return err
		}
		for i, p := range points {
			if err := validatePoint(s, p, index(join("knowledge_points", tier.key), i)); err != nil {
				return err
			}
		}
	}

	if err := s.stringListField(kp, "knowledge_points", "key_points", true); err != nil {
		return err
	}
	return s.stringListField(kp, "knowledge_points", "difficult_points", true)
}

func validatePoint(s schema, v any, path string) error {
	point, err := s.object(v, path)
	if err != nil {
		return err
	}

	for _, key := range knowledgeTextKeys {
		if _, err := s.field(point, path, key); err != nil {
			return err
		}
	}
	if _, err := s.stringField(point, path, "name"); err != nil {
		return err
	}

	if err := s.stringListField(point, path, "prerequisites", false); err != nil {
		return err
	}
	return s.stringListField(point, path, "objectives", false)
}

// DecodeKnowledge validates payload and decodes it.
func DecodeKnowledge(payload any) (*KnowledgeSet, error) {
	if err := ValidateKnowledge(payload); err != nil {
		return nil, err
	}

	wrapper, err := decode[struct {
		KnowledgePoints KnowledgeSet `json:"knowledge_points"`
	}](string(knowledgeArtifact), payload)
	if err != nil {
		return nil, err
	}
	return &wrapper.KnowledgePoints, nil
}
