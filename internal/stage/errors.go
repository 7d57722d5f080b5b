package stage

import (
	"errors"
	"fmt"
)

var (
	// ErrStageNotFound is returned when a stage number is outside the catalog.
	ErrStageNotFound = errors.New("stage: not found")

	// ErrInvalidCatalog is wrapped by catalog validation failures.
	ErrInvalidCatalog = errors.New("stage: invalid catalog")

	// ErrNotMonotonic is returned by CheckMonotonic.
	ErrNotMonotonic = errors.New("stage: difficulty is not monotonic")
)

// ConfigurationError reports a stage lookup or data problem. The game falls
// back to a safe menu state when it sees one.
type ConfigurationError struct {
	Stage int
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("stage %d: %v", e.Stage, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
