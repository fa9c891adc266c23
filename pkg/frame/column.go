package frame

import (
	"math"
	"time"

	"github.com/moznion/go-optional"
)

// Kind is the storage type of a column.
type Kind int

const (
	KindFloat Kind = iota
	KindString
	KindTime
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Column is a named, typed column of a frame. Exactly one of the backing slices is used,
// selected by kind.
type Column struct {
	name    string
	kind    Kind
	floats  []float64
	strings []optional.Option[string]
	times   []optional.Option[time.Time]
}

// NewFloatColumn creates a float column. NaN marks a missing value.
func NewFloatColumn(name string, values []float64) *Column {
	return &Column{name: name, kind: KindFloat, floats: values}
}

// NewStringColumn creates a string column. None marks a missing value.
func NewStringColumn(name string, values []optional.Option[string]) *Column {
	return &Column{name: name, kind: KindString, strings: values}
}

// NewTimeColumn creates a time column. None marks a missing value.
func NewTimeColumn(name string, values []optional.Option[time.Time]) *Column {
	return &Column{name: name, kind: KindTime, times: values}
}

// StringValues wraps plain strings as present values.
func StringValues(values ...string) []optional.Option[string] {
	out := make([]optional.Option[string], len(values))
	for i, v := range values {
		out[i] = optional.Some(v)
	}

	return out
}

// TimeValues wraps plain times as present values.
func TimeValues(values ...time.Time) []optional.Option[time.Time] {
	out := make([]optional.Option[time.Time], len(values))
	for i, v := range values {
		out[i] = optional.Some(v)
	}

	return out
}

// Name returns the column name.
func (c *Column) Name() string {
	return c.name
}

// Kind returns the column kind.
func (c *Column) Kind() Kind {
	return c.kind
}

// Len returns the number of rows.
func (c *Column) Len() int {
	switch c.kind {
	case KindString:
		return len(c.strings)
	case KindTime:
		return len(c.times)
	default:
		return len(c.floats)
	}
}

// IsMissing reports whether row i holds no value.
func (c *Column) IsMissing(i int) bool {
	switch c.kind {
	case KindString:
		return c.strings[i].IsNone()
	case KindTime:
		return c.times[i].IsNone()
	default:
		return math.IsNaN(c.floats[i])
	}
}

// HasMissing reports whether any row holds no value.
func (c *Column) HasMissing() bool {
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			return true
		}
	}

	return false
}

// FloatAt returns the float value at row i. Only valid for float columns.
func (c *Column) FloatAt(i int) float64 {
	return c.floats[i]
}

// StringAt returns the string value at row i. Only valid for string columns.
func (c *Column) StringAt(i int) optional.Option[string] {
	return c.strings[i]
}

// TimeAt returns the time value at row i. Only valid for time columns.
func (c *Column) TimeAt(i int) optional.Option[time.Time] {
	return c.times[i]
}

// Series returns a copy of a float column as a series.
func (c *Column) Series() (*Series, bool) {
	if c.kind != KindFloat {
		return nil, false
	}

	return NewSeries(c.name, append([]float64(nil), c.floats...)), true
}

func (c *Column) rename(name string) *Column {
	out := c.copy()
	out.name = name

	return out
}

func (c *Column) copy() *Column {
	out := &Column{name: c.name, kind: c.kind}

	switch c.kind {
	case KindString:
		out.strings = append([]optional.Option[string](nil), c.strings...)
	case KindTime:
		out.times = append([]optional.Option[time.Time](nil), c.times...)
	default:
		out.floats = append([]float64(nil), c.floats...)
	}

	return out
}

func (c *Column) take(rows []int) *Column {
	out := &Column{name: c.name, kind: c.kind}

	switch c.kind {
	case KindString:
		out.strings = make([]optional.Option[string], len(rows))
		for i, r := range rows {
			out.strings[i] = c.strings[r]
		}
	case KindTime:
		out.times = make([]optional.Option[time.Time], len(rows))
		for i, r := range rows {
			out.times[i] = c.times[r]
		}
	default:
		out.floats = make([]float64, len(rows))
		for i, r := range rows {
			out.floats[i] = c.floats[r]
		}
	}

	return out
}

func (c *Column) equal(other *Column) bool {
	if c.name != other.name || c.kind != other.kind || c.Len() != other.Len() {
		return false
	}

	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) != other.IsMissing(i) {
			return false
		}

		if c.IsMissing(i) {
			continue
		}

		switch c.kind {
		case KindString:
			if c.strings[i].Unwrap() != other.strings[i].Unwrap() {
				return false
			}
		case KindTime:
			if !c.times[i].Unwrap().Equal(other.times[i].Unwrap()) {
				return false
			}
		default:
			if c.floats[i] != other.floats[i] {
				return false
			}
		}
	}

	return true
}
