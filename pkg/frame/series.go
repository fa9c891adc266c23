package frame

import (
	"math"

	"github.com/rxtech-lab/zentools/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Series is a named column of float64 values. NaN marks a missing value.
type Series struct {
	Name   string
	Values []float64
}

// NewSeries creates a series that owns the given values.
func NewSeries(name string, values []float64) *Series {
	return &Series{Name: name, Values: values}
}

// Len returns the number of values in the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// At returns the value at position i.
func (s *Series) At(i int) float64 {
	return s.Values[i]
}

// Copy returns a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	return &Series{Name: s.Name, Values: values}
}

// Rename returns a copy of the series with a new name.
func (s *Series) Rename(name string) *Series {
	out := s.Copy()
	out.Name = name

	return out
}

// HasNaN reports whether any value is missing.
func (s *Series) HasNaN() bool {
	return floats.HasNaN(s.Values)
}

// Sub returns s - other elementwise.
func (s *Series) Sub(other *Series) (*Series, error) {
	if err := s.checkLength(other); err != nil {
		return nil, err
	}

	out := make([]float64, len(s.Values))
	floats.SubTo(out, s.Values, other.Values)

	return NewSeries(s.Name, out), nil
}

// Add returns s + other elementwise.
func (s *Series) Add(other *Series) (*Series, error) {
	if err := s.checkLength(other); err != nil {
		return nil, err
	}

	out := make([]float64, len(s.Values))
	floats.AddTo(out, s.Values, other.Values)

	return NewSeries(s.Name, out), nil
}

// Mul returns s * other elementwise.
func (s *Series) Mul(other *Series) (*Series, error) {
	if err := s.checkLength(other); err != nil {
		return nil, err
	}

	out := make([]float64, len(s.Values))
	floats.MulTo(out, s.Values, other.Values)

	return NewSeries(s.Name, out), nil
}

// Div returns s / other elementwise. Division by zero follows IEEE 754
// (±Inf, or NaN for 0/0).
func (s *Series) Div(other *Series) (*Series, error) {
	if err := s.checkLength(other); err != nil {
		return nil, err
	}

	out := make([]float64, len(s.Values))
	floats.DivTo(out, s.Values, other.Values)

	return NewSeries(s.Name, out), nil
}

// Neg returns -s.
func (s *Series) Neg() *Series {
	out := s.Copy()
	floats.Scale(-1, out.Values)

	return out
}

// Apply returns a new series with fn applied to every value.
func (s *Series) Apply(fn func(float64) float64) *Series {
	out := make([]float64, len(s.Values))
	for i, v := range s.Values {
		out[i] = fn(v)
	}

	return NewSeries(s.Name, out)
}

// Where keeps values for which cond holds and replaces the rest with other.
// cond is never true for NaN comparisons, so missing values are replaced too.
func (s *Series) Where(cond func(float64) bool, other float64) *Series {
	return s.Apply(func(v float64) float64 {
		if cond(v) {
			return v
		}

		return other
	})
}

// Diff returns the first discrete difference s[t] - s[t-periods].
// The first periods values are NaN.
func (s *Series) Diff(periods int) *Series {
	return s.shifted(periods, func(cur, prev float64) float64 {
		return cur - prev
	})
}

// PctChange returns the fractional change s[t]/s[t-periods] - 1.
// The first periods values are NaN; a zero base yields ±Inf or NaN.
func (s *Series) PctChange(periods int) *Series {
	return s.shifted(periods, func(cur, prev float64) float64 {
		return cur/prev - 1
	})
}

// Clip bounds every value to [lower, upper]. NaN stays NaN.
func (s *Series) Clip(lower, upper float64) *Series {
	return s.Apply(func(v float64) float64 {
		if math.IsNaN(v) {
			return v
		}

		return math.Min(math.Max(v, lower), upper)
	})
}

func (s *Series) shifted(periods int, fn func(cur, prev float64) float64) *Series {
	out := make([]float64, len(s.Values))
	for i := range out {
		j := i - periods
		if j < 0 || j >= len(s.Values) {
			out[i] = math.NaN()

			continue
		}

		out[i] = fn(s.Values[i], s.Values[j])
	}

	return NewSeries(s.Name, out)
}

func (s *Series) checkLength(other *Series) error {
	if other == nil {
		return errors.New(errors.ErrCodeInvalidParameter, "series operand is nil")
	}

	if len(s.Values) != len(other.Values) {
		return errors.Newf(errors.ErrCodeLengthMismatch, "series %q has %d values, %q has %d", s.Name, len(s.Values), other.Name, len(other.Values))
	}

	return nil
}
