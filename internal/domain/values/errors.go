package values

import "fmt"

// LookupError indicates an externally supplied value is not one of the
// fixed domain symbols (stem, branch, pillar, solar term, ...).
type LookupError struct {
	Kind  string
	Value string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("unknown %s: %q", e.Kind, e.Value)
}

// NewLookupError creates a new lookup error.
func NewLookupError(kind, value string) *LookupError {
	return &LookupError{Kind: kind, Value: value}
}
