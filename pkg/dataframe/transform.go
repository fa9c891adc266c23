package dataframe

import (
	"math"

	"github.com/rxtech-lab/zentools/pkg/frame"
)

// MakeStationary differences the given columns, or every float column when columns is nil.
// With usePct the fractional change is used instead of the difference. Unknown and non-float
// columns are skipped.
func MakeStationary(f *frame.Frame, columns []string, usePct bool) *frame.Frame {
	return mapColumns(f, columns, func(s *frame.Series) *frame.Series {
		if usePct {
			return s.PctChange(1)
		}

		return s.Diff(1)
	})
}

// ClipColumns bounds the given columns, or every float column when columns is nil, to
// [minValue, maxValue].
func ClipColumns(f *frame.Frame, minValue, maxValue float64, columns []string) *frame.Frame {
	return mapColumns(f, columns, func(s *frame.Series) *frame.Series {
		return s.Clip(minValue, maxValue)
	})
}

// InfToNaN replaces positive and negative infinity with NaN in every float column.
func InfToNaN(f *frame.Frame) *frame.Frame {
	return mapColumns(f, nil, func(s *frame.Series) *frame.Series {
		return s.Apply(func(v float64) float64 {
			if math.IsInf(v, 0) {
				return math.NaN()
			}

			return v
		})
	})
}

// NaNToZero replaces NaN with 0 in every float column.
func NaNToZero(f *frame.Frame) *frame.Frame {
	return mapColumns(f, nil, func(s *frame.Series) *frame.Series {
		return s.Apply(func(v float64) float64 {
			if math.IsNaN(v) {
				return 0
			}

			return v
		})
	})
}

func mapColumns(f *frame.Frame, columns []string, fn func(*frame.Series) *frame.Series) *frame.Frame {
	if columns == nil {
		columns = f.NumericColumns()
	}

	out := f.Copy()

	for _, name := range columns {
		s, err := out.Series(name)
		if err != nil {
			continue
		}

		// lengths always match since fn works row by row
		_ = out.SetSeries(fn(s))
	}

	return out
}
