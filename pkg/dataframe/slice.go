// Package dataframe holds frame-level helpers for preparing price tables: date-range
// slicing, stationarity transforms, clipping and missing-value cleanup. Every helper
// returns a new frame and leaves its input untouched.
package dataframe

import (
	"sort"

	"github.com/rxtech-lab/zentools/pkg/errors"
	"github.com/rxtech-lab/zentools/pkg/frame"
)

// SliceByDate returns the rows whose timestamp falls within [start, end], both inclusive.
// The frame must be indexed by time. An unsorted index is sorted first.
func SliceByDate(f *frame.Frame, start, end string) (*frame.Frame, error) {
	if !f.Index().IsTime() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "frame index must be a time index")
	}

	startTime, err := frame.ParseTimestamp(start)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidInput, err, "invalid start date %q", start)
	}

	endTime, err := frame.ParseTimestamp(end)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidInput, err, "invalid end date %q", end)
	}

	if !f.IsIndexMonotonicIncreasing() {
		f = f.SortByIndex()
	}

	index := f.Index()
	n := index.Len()

	lo := sort.Search(n, func(i int) bool {
		return !index.At(i).Before(startTime)
	})
	hi := sort.Search(n, func(i int) bool {
		return index.At(i).After(endTime)
	})

	return f.Rows(lo, hi), nil
}
