package schema

import (
	"errors"
	"fmt"
)

// ErrSchemaViolation is the sentinel all schema validation failures wrap,
// so callers can match the whole class with errors.Is.
var ErrSchemaViolation = errors.New("schema violation")

// Violation reports exactly which field broke which rule. Mutation callers
// (the agent loop) rely on the specificity to drive targeted corrections,
// so a generic failure message is never acceptable here.
type Violation struct {
	Field  string // field that failed (e.g. "airport", "distance")
	Rule   string // rule broken (e.g. "icao", "range 1-10")
	Detail string // human-readable specifics
}

// Error implements the error interface.
func (v *Violation) Error() string {
	if v.Detail != "" {
		return fmt.Sprintf("schema violation: %s: %s (%s)", v.Field, v.Rule, v.Detail)
	}
	return fmt.Sprintf("schema violation: %s: %s", v.Field, v.Rule)
}

// Is matches the ErrSchemaViolation sentinel.
func (v *Violation) Is(target error) bool {
	return target == ErrSchemaViolation
}

func violation(field, rule, format string, args ...any) error {
	return &Violation{Field: field, Rule: rule, Detail: fmt.Sprintf(format, args...)}
}

// IsViolation reports whether err is any schema violation.
func IsViolation(err error) bool {
	return errors.Is(err, ErrSchemaViolation)
}
