package statics

import (
	"errors"
	"fmt"
	"math"
)

// Validation errors for manipulator inputs.
var (
	// ErrNegativeMass indicates a point mass below zero.
	ErrNegativeMass = errors.New("statics: mass must be non-negative")

	// ErrNonPositiveLength indicates a link length that is zero or negative.
	ErrNonPositiveLength = errors.New("statics: link length must be positive")

	// ErrNegativeLimit indicates a torque limit below zero.
	ErrNegativeLimit = errors.New("statics: torque limit must be non-negative")

	// ErrNonPositiveGravity indicates a gravitational constant that is zero or negative.
	ErrNonPositiveGravity = errors.New("statics: gravity must be positive")

	// ErrNotFinite indicates a NaN or infinite input.
	ErrNotFinite = errors.New("statics: value must be finite")
)

// ValidationError names the input that failed validation.
type ValidationError struct {
	Field   string
	Value   float64
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s = %g: %v", e.Field, e.Value, e.Wrapped)
}

func (e *ValidationError) Unwrap() error {
	return e.Wrapped
}

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: field, Value: v, Wrapped: ErrNotFinite}
	}
	return nil
}

func checkNonNegative(field string, v float64, sentinel error) error {
	if err := checkFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return &ValidationError{Field: field, Value: v, Wrapped: sentinel}
	}
	return nil
}

func checkPositive(field string, v float64, sentinel error) error {
	if err := checkFinite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return &ValidationError{Field: field, Value: v, Wrapped: sentinel}
	}
	return nil
}

// CheckMass validates a mass value.
func CheckMass(field string, v float64) error {
	return checkNonNegative(field, v, ErrNegativeMass)
}

// CheckLength validates a link length.
func CheckLength(field string, v float64) error {
	return checkPositive(field, v, ErrNonPositiveLength)
}

// CheckGravity validates a gravitational constant.
func CheckGravity(v float64) error {
	return checkPositive("gravity", v, ErrNonPositiveGravity)
}
