package frame

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Rolling is a fixed-size trailing window over a series.
type Rolling struct {
	series     *Series
	window     int
	minPeriods int
}

// Rolling returns a trailing window of the given size. A row gets a value only when its
// window holds at least minPeriods non-NaN observations.
func (s *Series) Rolling(window, minPeriods int) Rolling {
	return Rolling{series: s, window: window, minPeriods: minPeriods}
}

// Mean returns the mean of each window. NaN observations are ignored, not counted.
// A non-positive window never fills, so every row is NaN.
func (r Rolling) Mean() *Series {
	values := r.series.Values
	out := make([]float64, len(values))
	buf := make([]float64, 0, max(r.window, 0))

	for i := range values {
		if r.window <= 0 {
			out[i] = math.NaN()

			continue
		}

		buf = buf[:0]

		for j := max(0, i-r.window+1); j <= i; j++ {
			if !math.IsNaN(values[j]) {
				buf = append(buf, values[j])
			}
		}

		if len(buf) == 0 || len(buf) < r.minPeriods {
			out[i] = math.NaN()

			continue
		}

		out[i] = stat.Mean(buf, nil)
	}

	return NewSeries(r.series.Name, out)
}

// EWM is an exponentially weighted window over a series.
type EWM struct {
	series *Series
	alpha  float64
}

// EWM returns an exponentially weighted window with smoothing factor alpha = 2/(span+1).
// The span is not validated.
func (s *Series) EWM(span float64) EWM {
	return EWM{series: s, alpha: 2.0 / (span + 1)}
}

// Alpha returns the smoothing factor.
func (e EWM) Alpha() float64 {
	return e.alpha
}

// Mean returns the recursive, non-adjusted exponential moving average seeded with the first
// observation: ema[0] = x[0], ema[t] = ((1-alpha)*ema[t-1] + alpha*x[t]) / ((1-alpha) + alpha).
// This is pandas ewm(span, adjust=False).mean() with ignore_na=False:
//   - rows before the first observation are NaN;
//   - a NaN row repeats the previous average, and the weight of that average keeps decaying
//     by (1-alpha) for every skipped row;
//   - an observation equal to the current average leaves it untouched, so constant input
//     is a fixed point.
func (e EWM) Mean() *Series {
	values := e.series.Values
	out := make([]float64, len(values))

	ema := math.NaN()
	oldWeight := 1.0

	for i, v := range values {
		observed := !math.IsNaN(v)

		switch {
		case math.IsNaN(ema):
			if observed {
				ema = v
			}
		default:
			oldWeight *= 1 - e.alpha

			if observed {
				if ema != v {
					ema = (oldWeight*ema + e.alpha*v) / (oldWeight + e.alpha)
				}

				oldWeight = 1
			}
		}

		out[i] = ema
	}

	return NewSeries(e.series.Name, out)
}
