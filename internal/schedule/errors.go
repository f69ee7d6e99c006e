package schedule

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the referenced game schedule does not exist.
// Zero-row updates and deletes report it explicitly instead of folding into
// a generic store failure.
var ErrNotFound = errors.New("game schedule not found")

// ValidationError reports a missing required form field. No format
// validation happens beyond presence; times and dates are trusted from the
// caller.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}
