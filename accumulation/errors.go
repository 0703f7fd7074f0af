package accumulation

import (
	"errors"
	"fmt"
)

var (
	ErrBoundExceeded       = errors.New("accumulation bound exceeded")
	ErrRelationMismatch    = errors.New("relation mismatch")
	ErrNothingToAccumulate = errors.New("nothing to accumulate")
	ErrInvalidDepth        = errors.New("depth must be at least 1")
)

// BoundExceededError reports more inputs or prior accumulators than allowed.
type BoundExceededError struct {
	What  string
	Bound int
	Got   int
}

func (e *BoundExceededError) Error() string {
	return fmt.Sprintf("%v: %d %s, at most %d allowed", ErrBoundExceeded, e.Got, e.What, e.Bound)
}

func (e *BoundExceededError) Unwrap() error { return ErrBoundExceeded }

// RelationMismatchError reports an input or accumulator that does not belong
// to the indexed relation.
type RelationMismatchError struct {
	What   string
	Index  int
	Reason string
}

func (e *RelationMismatchError) Error() string {
	return fmt.Sprintf("%v: %s %d: %s", ErrRelationMismatch, e.What, e.Index, e.Reason)
}

func (e *RelationMismatchError) Unwrap() error { return ErrRelationMismatch }
