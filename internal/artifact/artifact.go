// Package artifact defines the generated lesson-plan artifacts (objectives,
// knowledge points, activities and the assessment plan), the extracted
// textbook source they are generated from, and the validators that enforce
// each artifact's canonical schema before it is decoded.
package artifact

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/JaimeStill/syllabus/pkg/formatting"
)

// Tolerance is the allowed difference for every numeric-sum check.
const Tolerance = 0.1

// Source is the textbook content extracted from a PDF.
type Source struct {
	Title string `json:"title"`
	Path  string `json:"path"`
	Text  string `json:"text"`
	Pages int    `json:"pages"`
	// Scanned is set when the text came from OCR instead of a text layer.
	Scanned bool `json:"scanned"`
	// Images holds PNG data URIs of leading pages for vision requests.
	Images []string `json:"-"`
}

// Quantity is a number that models may emit either as a JSON number or as a
// numeric string with a unit suffix ("45", "45分钟", "60%").
type Quantity float64

func (q *Quantity) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*q = 0
		return nil
	}
	n, ok := formatting.Number(raw)
	if !ok {
		return fmt.Errorf("not a number: %s", data)
	}
	*q = Quantity(n)
	return nil
}

// String renders q without trailing zeros.
func (q Quantity) String() string {
	return strconv.FormatFloat(float64(q), 'f', -1, 64)
}

// Text is a free-form field that models occasionally return as a list.
// Lists are joined with "; ".
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Text(joinText(raw))
	return nil
}

// Lines is a list of strings that also accepts a single string.
type Lines []string

func (l *Lines) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*l = nil
	case []any:
		out := make(Lines, 0, len(v))
		for _, item := range v {
			if s := joinText(item); s != "" {
				out = append(out, s)
			}
		}
		*l = out
	default:
		if s := joinText(v); s != "" {
			*l = Lines{s}
		} else {
			*l = nil
		}
	}
	return nil
}

func joinText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := joinText(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	case map[string]any:
		data, _ := json.Marshal(t)
		return string(data)
	}
	return fmt.Sprint(v)
}

func decode[T any](name string, payload any) (T, error) {
	var out T

	data, err := json.Marshal(payload)
	if err != nil {
		return out, &SchemaViolation{Artifact: name, Reason: fmt.Sprintf("re-encode payload: %v", err)}
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, &SchemaViolation{Artifact: name, Reason: fmt.Sprintf("decode payload: %v", err)}
	}
	return out, nil
}
