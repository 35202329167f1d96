package physics

import (
	"errors"
	"fmt"
)

// ErrZeroVector is returned by Vec2.Unit when the vector has no direction.
// Inside the resolver it marks the coincident-centers case and is recovered
// with a fallback axis; it never escapes a Tick.
var ErrZeroVector = errors.New("physics: unit of zero-length vector")

// ValidationError reports malformed construction input. It is only ever
// produced at body or world construction time; a world that constructed
// successfully cannot fail during Tick.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("physics: invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
