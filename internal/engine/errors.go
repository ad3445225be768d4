package engine

import "fmt"

// InvalidInputError reports a snapshot field the caller must fix
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvariantViolation is raised with panic when a stage receives a value that
// input validation should have made impossible. It signals a bug, not bad input.
type InvariantViolation struct {
	Stage  string
	Detail string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violated in %s: %s", e.Stage, e.Detail)
}

func violate(stage, format string, args ...interface{}) {
	panic(&InvariantViolation{Stage: stage, Detail: fmt.Sprintf(format, args...)})
}
