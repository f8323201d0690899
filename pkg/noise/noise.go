// Package noise turns a uniform random source into the distributions the
// generators sample dimensions from.
package noise

import (
	"math"

	"github.com/willbeason/procedural-trees/pkg/validate"
)

// A Source produces uniform values in [0, 1).
//
// *math/rand.Rand satisfies Source.
type Source interface {
	Float64() float64
}

// Range returns a uniform value in [lo, hi).
func Range(src Source, lo, hi float64) float64 {
	return lo + (hi-lo)*src.Float64()
}

// Gaussian draws a normally distributed value using the Box-Muller transform.
// The first uniform draw is repeated while it is exactly zero since the
// logarithm is undefined there.
func Gaussian(src Source, mean, stddev float64) float64 {
	u1 := src.Float64()
	for u1 == 0 {
		u1 = src.Float64()
	}
	u2 := src.Float64()

	return stddev*math.Sqrt(-2*math.Log(u1))*math.Cos(2*math.Pi*u2) + mean
}

// Normal is a normal distribution parameterized by its mean and standard
// deviation.
type Normal struct {
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"std"`
}

// Sample draws one value from n.
func (n Normal) Sample(src Source) float64 {
	return Gaussian(src, n.Mean, n.StdDev)
}

// Validate rejects a mean that is not finite and negative or non-finite
// standard deviations.
func (n Normal) Validate(field string) error {
	var errs validate.Errors
	errs.Add(validate.Finite(field+".mean", n.Mean))
	errs.Add(validate.NonNegative(field+".std", n.StdDev))
	return errs.Err()
}
