package collector

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned when the requested facet size is not
	// positive.
	ErrInvalidSize = errors.New("collector: requested size must be positive")

	// ErrNoFields is returned when a collector is constructed without
	// any field to count.
	ErrNoFields = errors.New("collector: at least one field is required")
)

// PhaseError reports a facet-execution failure, carrying the facet name
// and the root cause. It is raised when segment data cannot be read; the
// facet is not retried.
//
// The underlying error can be accessed via errors.Unwrap.
type PhaseError struct {
	Facet string
	Msg   string
	cause error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("facet [%s]: %s: %v", e.Facet, e.Msg, e.cause)
}

func (e *PhaseError) Unwrap() error { return e.cause }
