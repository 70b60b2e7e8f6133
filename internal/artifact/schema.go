package artifact

import (
	"fmt"
	"math"
	"strconv"

	"github.com/JaimeStill/syllabus/pkg/formatting"
)

// schema carries the artifact name into every violation it reports.
type schema string

func (s schema) fail(path, format string, args ...any) error {
	return &SchemaViolation{
		Artifact: string(s),
		Path:     path,
		Reason:   fmt.Sprintf(format, args...),
	}
}

func (s schema) object(v any, path string) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, s.fail(path, "expected an object, got %s", kind(v))
	}
	return m, nil
}

func (s schema) field(m map[string]any, path, key string) (any, error) {
	v, ok := m[key]
	if !ok {
		return nil, s.fail(join(path, key), "required field missing")
	}
	return v, nil
}

func (s schema) objectField(m map[string]any, path, key string) (map[string]any, error) {
	v, err := s.field(m, path, key)
	if err != nil {
		return nil, err
	}
	return s.object(v, join(path, key))
}

func (s schema) listField(m map[string]any, path, key string, nonEmpty bool) ([]any, error) {
	v, err := s.field(m, path, key)
	if err != nil {
		return nil, err
	}

	list, ok := v.([]any)
	if !ok {
		return nil, s.fail(join(path, key), "expected a list, got %s", kind(v))
	}
	if nonEmpty && len(list) == 0 {
		return nil, s.fail(join(path, key), "list must not be empty")
	}
	return list, nil
}

func (s schema) stringField(m map[string]any, path, key string) (string, error) {
	v, err := s.field(m, path, key)
	if err != nil {
		return "", err
	}

	str, ok := v.(string)
	if !ok {
		return "", s.fail(join(path, key), "expected a string, got %s", kind(v))
	}
	if str == "" {
		return "", s.fail(join(path, key), "string must not be empty")
	}
	return str, nil
}

func (s schema) stringListField(m map[string]any, path, key string, nonEmpty bool) error {
	list, err := s.listField(m, path, key, nonEmpty)
	if err != nil {
		return err
	}
	for i, item := range list {
		if _, ok := item.(string); !ok {
			return s.fail(index(join(path, key), i), "expected a string, got %s", kind(item))
		}
	}
	return nil
}

func (s schema) numberField(m map[string]any, path, key string) (float64, error) {
	v, err := s.field(m, path, key)
	if err != nil {
		return 0, err
	}

	n, ok := formatting.Number(v)
	if !ok {
		return 0, s.fail(join(path, key), "expected a number, got %v", v)
	}
	return n, nil
}

// sum reports a mismatch between actual and expected beyond Tolerance.
func (s schema) sum(path, what string, actual, expected float64) error {
	diff := actual - expected
	if math.Abs(diff) <= Tolerance {
		return nil
	}
	return s.fail(path, "%s is %s, expected %s (off by %s)",
		what, num(actual), num(expected), num(math.Abs(diff)))
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*1000)/1000, 'f', -1, 64)
}

func kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "list"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	}
	return fmt.Sprintf("%T", v)
}
