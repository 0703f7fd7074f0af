package r1csnark

import (
	"errors"
	"fmt"
)

var (
	ErrConstraintGeneration = errors.New("constraint generation failed")
	ErrDimensionMismatch    = errors.New("dimension mismatch")
	ErrMissingRandomness    = errors.New("zero-knowledge requested without a randomness source")
	ErrInvalidEncoding      = errors.New("invalid encoding")
)

// DimensionMismatchError reports the sizes of a synthesized assignment that
// disagree with the index it is proved against.
type DimensionMismatchError struct {
	ExpectedVariables, ActualVariables                 int
	ExpectedInstanceVariables, ActualInstanceVariables int
	ExpectedConstraints, ActualConstraints             int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%v: expected %d variables (%d instance) and %d constraints, got %d variables (%d instance) and %d constraints",
		ErrDimensionMismatch,
		e.ExpectedVariables, e.ExpectedInstanceVariables, e.ExpectedConstraints,
		e.ActualVariables, e.ActualInstanceVariables, e.ActualConstraints)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }
