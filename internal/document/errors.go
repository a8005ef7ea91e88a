package document

import (
	"fmt"
	"strings"
)

// StructureError reports a schema that cannot be used to validate anything.
type StructureError struct {
	Reason string
}

func (e *StructureError) Error() string {
	return "document schema: " + e.Reason
}

// Violation is a single problem found in a document.
type Violation struct {
	Line    int
	Message string
}

func (v Violation) String() string {
	if v.Line > 0 {
		return fmt.Sprintf("line %d: %s", v.Line, v.Message)
	}
	return v.Message
}

// ValidationError carries every violation found in a rejected document.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	switch len(e.Violations) {
	case 0:
		return "document invalid"
	case 1:
		return "document invalid: " + e.Violations[0].String()
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("document invalid: %d violations: %s", len(e.Violations), strings.Join(parts, "; "))
}
