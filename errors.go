package facetgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/facetgo/collector"
)

var (
	// ErrInvalidSize is returned when a facet's requested size is not
	// positive.
	ErrInvalidSize = errors.New("facet size must be positive")

	// ErrNoFields is returned when a facet names no fields to count.
	ErrNoFields = errors.New("facet requires at least one field")

	// ErrRemote is returned when a received facet response carries the
	// error flag instead of a payload.
	ErrRemote = errors.New("remote facet execution failed")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Argument normalization.
	if errors.Is(err, collector.ErrInvalidSize) {
		return fmt.Errorf("%w: %w", ErrInvalidSize, err)
	}
	if errors.Is(err, collector.ErrNoFields) {
		return fmt.Errorf("%w: %w", ErrNoFields, err)
	}

	// PhaseError already carries the facet name and root cause.
	return err
}
