package artifact

import (
	"errors"
	"fmt"
)

// ErrSchemaViolation matches every *SchemaViolation via errors.Is.
var ErrSchemaViolation = errors.New("schema violation")

// SchemaViolation reports a generated payload that does not match its
// artifact's canonical schema.
type SchemaViolation struct {
	Artifact string
	// Path locates the offending value, e.g. "activities[2].activity.duration".
	Path   string
	Reason string
}

func (v *SchemaViolation) Error() string {
	if v.Path == "" {
		return fmt.Sprintf("%s %s: %s", v.Artifact, ErrSchemaViolation, v.Reason)
	}
	return fmt.Sprintf("%s %s at %s: %s", v.Artifact, ErrSchemaViolation, v.Path, v.Reason)
}

func (v *SchemaViolation) Is(target error) bool {
	return target == ErrSchemaViolation
}
