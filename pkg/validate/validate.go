// Package validate reports configuration problems found before any
// generation starts.
package validate

import (
	"fmt"
	"math"
	"strings"
)

// ConfigurationError is a single rejected configuration value.
type ConfigurationError struct {
	Field  string
	Reason string
	Value  any
}

func (e *ConfigurationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("config %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("config %q: %s (got %v)", e.Field, e.Reason, e.Value)
}

// Errors collects every problem found in one configuration.
type Errors []error

func (e Errors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d configuration errors:", len(e))
	for i, err := range e {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, err)
	}
	return b.String()
}

// Unwrap lets errors.As find the individual ConfigurationErrors.
func (e Errors) Unwrap() []error {
	return e
}

// Add records err if it is not nil.
func (e *Errors) Add(err error) {
	if err == nil {
		return
	}
	if nested, ok := err.(Errors); ok {
		*e = append(*e, nested...)
		return
	}
	*e = append(*e, err)
}

// Err returns nil if nothing was recorded.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Finite rejects NaN and infinities.
func Finite(field string, v float64) error {
	if !finite(v) {
		return &ConfigurationError{Field: field, Reason: "must be a finite number", Value: v}
	}
	return nil
}

// NonNegative rejects v < 0 and values that are not finite.
func NonNegative(field string, v float64) error {
	if !finite(v) {
		return Finite(field, v)
	}
	if v < 0 {
		return &ConfigurationError{Field: field, Reason: "must not be negative", Value: v}
	}
	return nil
}

// NonNegativeInt rejects counts below zero.
func NonNegativeInt(field string, v int) error {
	if v < 0 {
		return &ConfigurationError{Field: field, Reason: "must not be negative", Value: v}
	}
	return nil
}

// Probability rejects values outside [0, 1], including NaN.
func Probability(field string, v float64) error {
	if !finite(v) || v < 0 || v > 1 {
		return &ConfigurationError{Field: field, Reason: "must be within [0, 1]", Value: v}
	}
	return nil
}

// Ordered rejects ranges whose minimum exceeds their maximum.
func Ordered(field string, lo, hi float64) error {
	if !finite(lo) || !finite(hi) {
		return &ConfigurationError{
			Field:  field,
			Reason: "bounds must be finite numbers",
			Value:  fmt.Sprintf("[%g, %g]", lo, hi),
		}
	}
	if lo > hi {
		return &ConfigurationError{
			Field:  field,
			Reason: "minimum exceeds maximum",
			Value:  fmt.Sprintf("[%g, %g]", lo, hi),
		}
	}
	return nil
}
