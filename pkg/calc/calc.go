// Package calc provides small numeric helpers over float64 slices.
package calc

import (
	"math"

	"github.com/rxtech-lab/zentools/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Add returns a + b.
func Add(a, b float64) float64 {
	return a + b
}

// Sum returns the sum of values.
func Sum(values []float64) float64 {
	return floats.Sum(values)
}

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, errors.NewInsufficientData("mean", 1, 0)
	}

	return stat.Mean(values, nil), nil
}

// Variance returns the sample variance (n-1 denominator) of values.
func Variance(values []float64) (float64, error) {
	if len(values) < 2 {
		return 0, errors.NewInsufficientData("variance", 2, len(values))
	}

	return stat.Variance(values, nil), nil
}

// StandardDeviation returns the sample standard deviation of values.
func StandardDeviation(values []float64) (float64, error) {
	v, err := Variance(values)
	if err != nil {
		return 0, err
	}

	return math.Sqrt(v), nil
}
