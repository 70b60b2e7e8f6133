package artifact_test

import (
	"testing"

	"github.com/JaimeStill/syllabus/pkg/formatting"
)

const objectivesJSON = `{
  "objectives": {
    "knowledge": [{"level": "理解", "description": "掌握基本概念", "evaluation": "课堂测验"}],
    "ability": [{"level": "应用", "description": "能够解决实际问题", "evaluation": "作业"}],
    "emotion": [{"level": "认同", "description": "培养科学态度", "evaluation": "课堂观察"}]
  }
}`

const knowledgeJSON = `{
  "knowledge_points": {
    "basic": [{
      "name": "变量",
      "content": "变量的定义与作用域",
      "difficulty": "容易",
      "importance": "核心",
      "prerequisites": [],
      "objectives": ["掌握基本概念"],
      "teaching_suggestions": "结合示例讲解"
    }],
    "advanced": [],
    "key_points": ["变量作用域"],
    "difficult_points": ["闭包"]
  }
}`

// two class hours: 90 minutes of activities
const activitiesJSON = `{
  "time_allocation": {"knowledge": 0.5, "skill": 0.5, "practice": "0.5", "discussion": 0.25, "assessment": 0.25},
  "activities": [
    {"activity": {"title": "概念讲解", "duration": 45, "method": "讲授",
      "process": {"introduction": {"content": "导入", "duration": "5分钟", "activities": ["提问"], "materials": "PPT"}}}},
    {"activity": {"title": "上机练习", "duration": "45分钟", "chapter": "第一章"}}
  ]
}`

const assessmentJSON = `{
  "process_assessment": {
    "total_percentage": 60,
    "items": [
      {"name": "作业", "description": "每周作业", "percentage": 30, "criteria": "正确率", "methods": ["批改"]},
      {"name": "课堂表现", "description": "参与度", "percentage": 30, "criteria": ["出勤", "发言"], "methods": "观察"}
    ]
  },
  "final_assessment": {
    "total_percentage": 40,
    "items": [{"name": "期末考试", "description": "闭卷", "percentage": "40%", "criteria": "试卷", "methods": ["笔试"]}]
  },
  "feedback_mechanism": {"methods": ["面谈"], "frequency": "每两周", "improvement": ["调整进度"]}
}`

// payload decodes js and applies each mutation in order.
func payload(t *testing.T, js string, mutations ...func(map[string]any)) map[string]any {
	t.Helper()

	m, err := formatting.Parse[map[string]any](js)
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	for _, mutate := range mutations {
		mutate(m)
	}
	return m
}

func obj(v any, keys ...string) map[string]any {
	m := v.(map[string]any)
	for _, k := range keys {
		m = m[k].(map[string]any)
	}
	return m
}

func item(v any, i int) map[string]any {
	return v.([]any)[i].(map[string]any)
}
