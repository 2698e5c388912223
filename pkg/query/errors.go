package query

import "fmt"

// ValidationError reports malformed sort or filter input. The engines
// never return it to callers; they log it and degrade to a no-op.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
