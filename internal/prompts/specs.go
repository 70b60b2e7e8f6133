package prompts

const objectivesSpec = `Respond with a JSON object matching this exact structure:

{
  "objectives": {
    "knowledge": [{"level": "<level>", "description": "<objective>", "evaluation": "<evaluation>"}],
    "ability": [{"level": "<level>", "description": "<objective>", "evaluation": "<evaluation>"}],
    "emotion": [{"level": "<level>", "description": "<objective>", "evaluation": "<evaluation>"}]
  }
}

Field constraints:
- knowledge, ability, emotion: non-empty arrays of objectives
- level: cognitive level of the objective (e.g. remember, understand, apply, analyse)
- description: what the student will be able to do, stated concretely
- evaluation: how attainment is measured
- every field is a non-empty string

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Use exactly the keys shown; do not rename or add top-level keys`

const knowledgeSpec = `Respond with a JSON object matching this exact structure:

{
  "knowledge_points": {
    "basic": [{
      "name": "<name>",
      "content": "<content>",
      "difficulty": "<easy|medium|hard>",
      "importance": "<general|important|core>",
      "prerequisites": ["<prerequisite>"],
      "objectives": ["<objective description>"],
      "teaching_suggestions": "<suggestion>"
    }],
    "advanced": [],
    "key_points": ["<key point>"],
    "difficult_points": ["<difficult point>"]
  }
}

Field constraints:
- basic: non-empty array of foundational knowledge points
- advanced: array of advanced knowledge points with the same fields as basic; may be empty
- prerequisites: always present; an empty array when nothing is required
- objectives: descriptions of the teaching objectives the point serves
- key_points, difficult_points: non-empty arrays of strings

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Include every field shown for every knowledge point`

const activitiesSpec = `Respond with a JSON object matching this exact structure:

{
  "time_allocation": {
    "knowledge": <hours>,
    "skill": <hours>,
    "practice": <hours>,
    "discussion": <hours>,
    "assessment": <hours>
  },
  "activities": [
    {
      "activity": {
        "title": "<title>",
        "duration": <minutes>,
        "focus": "<teaching focus>",
        "method": "<teaching method>",
        "process": {
          "introduction": {"content": "<content>", "duration": <minutes>, "activities": ["<step>"], "materials": ["<material>"]},
          "development": {"content": "<content>", "duration": <minutes>, "activities": ["<step>"], "materials": ["<material>"]},
          "summary": {"content": "<content>", "duration": <minutes>, "activities": ["<step>"], "materials": ["<material>"]}
        },
        "highlights": "<design highlights>",
        "expected_outcome": "<expected outcome>",
        "potential_issues": "<potential issues>",
        "chapter": "<textbook chapter>"
      }
    }
  ]
}

Field constraints:
- time_allocation: all five categories present as numbers of class hours; they must sum to total_hours
- duration: one of 15, 30, 45 or 90 minutes, as a number
- the durations of all activities must sum to total_minutes
- title and duration are required; every other activity field is strongly recommended

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Wrap every activity in an object with a single "activity" key`

const assessmentSpec = `Respond with a JSON object matching this exact structure:

{
  "process_assessment": {
    "total_percentage": 60,
    "items": [{"name": "<name>", "description": "<description>", "percentage": <number>, "criteria": "<criteria>", "methods": ["<method>"]}]
  },
  "final_assessment": {
    "total_percentage": 40,
    "items": [{"name": "<name>", "description": "<description>", "percentage": <number>, "criteria": "<criteria>", "methods": ["<method>"]}]
  },
  "feedback_mechanism": {
    "methods": ["<method>"],
    "frequency": "<frequency>",
    "improvement": ["<improvement measure>"]
  }
}

Field constraints:
- process_assessment.total_percentage: exactly 60
- final_assessment.total_percentage: exactly 40
- items: non-empty; item percentages within a category sum to its total_percentage
- frequency: a single string

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Use percentages as plain numbers without a percent sign`

var specs = map[Stage]string{
	StageObjectives: objectivesSpec,
	StageKnowledge:  knowledgeSpec,
	StageActivities: activitiesSpec,
	StageAssessment: assessmentSpec,
}

// Spec returns the hardcoded specification for a generation stage.
// Specifications define the expected output format and behavioral constraints.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
