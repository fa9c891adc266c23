// Package frame provides a small labeled, time-indexed columnar table with NaN semantics,
// rolling and exponentially weighted windows, and the elementwise helpers the indicator
// and frame-tool packages build on.
package frame

import (
	"sort"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/zentools/pkg/errors"
)

// Index labels the rows of a frame. A range index is positional only; a time index carries
// one timestamp per row.
type Index struct {
	name  string
	n     int
	times []time.Time
}

// NewRangeIndex creates a positional index over n rows.
func NewRangeIndex(n int) Index {
	return Index{n: n}
}

// NewTimeIndex creates a time index named name. The index owns times.
func NewTimeIndex(name string, times []time.Time) Index {
	return Index{name: name, n: len(times), times: times}
}

// IsTime reports whether the index carries timestamps.
func (i Index) IsTime() bool {
	return i.times != nil
}

// Name returns the index name (empty for range indexes).
func (i Index) Name() string {
	return i.name
}

// Len returns the number of rows the index labels.
func (i Index) Len() int {
	return i.n
}

// At returns the timestamp of row r. Only valid for time indexes.
func (i Index) At(r int) time.Time {
	return i.times[r]
}

// Times returns a copy of the timestamps, or nil for a range index.
func (i Index) Times() []time.Time {
	if i.times == nil {
		return nil
	}

	return append([]time.Time(nil), i.times...)
}

func (i Index) take(rows []int) Index {
	if i.times == nil {
		return NewRangeIndex(len(rows))
	}

	times := make([]time.Time, len(rows))
	for k, r := range rows {
		times[k] = i.times[r]
	}

	return NewTimeIndex(i.name, times)
}

func (i Index) equal(other Index) bool {
	if i.IsTime() != other.IsTime() || i.n != other.n || i.name != other.name {
		return false
	}

	for r := range i.times {
		if !i.times[r].Equal(other.times[r]) {
			return false
		}
	}

	return true
}

// Frame is an ordered set of equally long, uniquely named columns sharing one index.
type Frame struct {
	index   Index
	order   []string
	columns map[string]*Column
}

// New creates a frame from an index and columns. Every column must match the index length
// and names must be unique.
func New(index Index, columns ...*Column) (*Frame, error) {
	f := &Frame{
		index:   index,
		order:   make([]string, 0, len(columns)),
		columns: make(map[string]*Column, len(columns)),
	}

	for _, c := range columns {
		if _, exists := f.columns[c.Name()]; exists {
			return nil, errors.Newf(errors.ErrCodeColumnAlreadyExists, "duplicate column %q", c.Name())
		}

		if err := f.SetColumn(c); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return f.index.Len()
}

// Index returns the row index.
func (f *Frame) Index() Index {
	return f.index
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.order...)
}

// HasColumn reports whether a column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.columns[name]

	return ok
}

// Column returns the named column.
func (f *Frame) Column(name string) (*Column, error) {
	c, ok := f.columns[name]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeColumnNotFound, "column %q not found", name).WithColumn(name)
	}

	return c, nil
}

// Series returns a copy of the named float column.
func (f *Frame) Series(name string) (*Series, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}

	s, ok := c.Series()
	if !ok {
		return nil, errors.Newf(errors.ErrCodeInvalidType, "column %q is %s, not float", name, c.Kind())
	}

	return s, nil
}

// SetSeries adds or overwrites a float column named after the series. The frame keeps a copy.
func (f *Frame) SetSeries(s *Series) error {
	return f.SetColumn(NewFloatColumn(s.Name, append([]float64(nil), s.Values...)))
}

// SetColumn adds or overwrites a column. New columns are appended after existing ones;
// overwritten columns keep their position.
func (f *Frame) SetColumn(c *Column) error {
	if c.Len() != f.Len() {
		return errors.Newf(errors.ErrCodeLengthMismatch, "column %q has %d rows, frame has %d", c.Name(), c.Len(), f.Len())
	}

	if _, exists := f.columns[c.Name()]; !exists {
		f.order = append(f.order, c.Name())
	}

	f.columns[c.Name()] = c

	return nil
}

// DropColumn removes a column if present.
func (f *Frame) DropColumn(name string) {
	if _, ok := f.columns[name]; !ok {
		return
	}

	delete(f.columns, name)

	for i, n := range f.order {
		if n == name {
			f.order = append(f.order[:i], f.order[i+1:]...)

			break
		}
	}
}

// NumericColumns returns the names of float columns in order.
func (f *Frame) NumericColumns() []string {
	names := make([]string, 0, len(f.order))
	for _, name := range f.order {
		if f.columns[name].Kind() == KindFloat {
			names = append(names, name)
		}
	}

	return names
}

// HasNaN reports whether any cell in any column is missing.
func (f *Frame) HasNaN() bool {
	for _, name := range f.order {
		if f.columns[name].HasMissing() {
			return true
		}
	}

	return false
}

// Copy returns a deep copy of the frame.
func (f *Frame) Copy() *Frame {
	out := &Frame{
		index:   f.index.take(identity(f.Len())),
		order:   append([]string(nil), f.order...),
		columns: make(map[string]*Column, len(f.columns)),
	}

	for name, c := range f.columns {
		out.columns[name] = c.copy()
	}

	return out
}

// Take returns a new frame holding the given rows in the given order.
func (f *Frame) Take(rows []int) *Frame {
	out := &Frame{
		index:   f.index.take(rows),
		order:   append([]string(nil), f.order...),
		columns: make(map[string]*Column, len(f.columns)),
	}

	for name, c := range f.columns {
		out.columns[name] = c.take(rows)
	}

	return out
}

// Rows returns rows [start, end) as a new frame. Bounds are clamped to the frame.
func (f *Frame) Rows(start, end int) *Frame {
	start = min(max(start, 0), f.Len())
	end = min(max(end, start), f.Len())

	rows := make([]int, 0, end-start)
	for r := start; r < end; r++ {
		rows = append(rows, r)
	}

	return f.Take(rows)
}

// Head returns the first n rows.
func (f *Frame) Head(n int) *Frame {
	return f.Rows(0, n)
}

// Tail returns the last n rows.
func (f *Frame) Tail(n int) *Frame {
	return f.Rows(f.Len()-n, f.Len())
}

// IsIndexMonotonicIncreasing reports whether a time index is non-decreasing.
// Range indexes always are.
func (f *Frame) IsIndexMonotonicIncreasing() bool {
	if !f.index.IsTime() {
		return true
	}

	for r := 1; r < f.Len(); r++ {
		if f.index.times[r].Before(f.index.times[r-1]) {
			return false
		}
	}

	return true
}

// SortByIndex returns a copy sorted ascending by the time index. Equal timestamps keep their
// relative order. Range-indexed frames are returned as a copy.
func (f *Frame) SortByIndex() *Frame {
	rows := identity(f.Len())
	if f.index.IsTime() {
		sort.SliceStable(rows, func(a, b int) bool {
			return f.index.times[rows[a]].Before(f.index.times[rows[b]])
		})
	}

	return f.Take(rows)
}

// ResetIndex moves a time index into a leading time column and leaves a range index.
// Range-indexed frames are returned as a copy.
func (f *Frame) ResetIndex() *Frame {
	out := f.Copy()
	if !f.index.IsTime() {
		return out
	}

	name := f.index.name
	if name == "" {
		name = "index"
	}

	values := make([]optional.Option[time.Time], f.Len())
	for r, t := range f.index.times {
		values[r] = optional.Some(t)
	}

	out.DropColumn(name)
	out.columns[name] = NewTimeColumn(name, values)
	out.order = append([]string{name}, out.order...)
	out.index = NewRangeIndex(f.Len())

	return out
}

// SetTimeIndex returns a copy indexed by the named time column, which is removed from the
// columns. The column must have no missing values.
func (f *Frame) SetTimeIndex(name string) (*Frame, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}

	if c.Kind() != KindTime {
		return nil, errors.Newf(errors.ErrCodeInvalidIndex, "column %q is %s, not time", name, c.Kind())
	}

	times := make([]time.Time, c.Len())
	for r := range times {
		v := c.TimeAt(r)
		if v.IsNone() {
			return nil, errors.Newf(errors.ErrCodeInvalidIndex, "column %q has a missing timestamp at row %d", name, r)
		}

		times[r] = v.Unwrap()
	}

	out := f.Copy()
	out.DropColumn(name)
	out.index = NewTimeIndex(name, times)

	return out, nil
}

// Equal reports whether two frames have the same index, column order, kinds and values.
// Missing values compare equal to each other.
func (f *Frame) Equal(other *Frame) bool {
	if other == nil || !f.index.equal(other.index) || len(f.order) != len(other.order) {
		return false
	}

	for i, name := range f.order {
		if other.order[i] != name {
			return false
		}

		if !f.columns[name].equal(other.columns[name]) {
			return false
		}
	}

	return true
}

// RenameColumn returns a copy with column from renamed to to.
func (f *Frame) RenameColumn(from, to string) (*Frame, error) {
	c, err := f.Column(from)
	if err != nil {
		return nil, err
	}

	if from != to && f.HasColumn(to) {
		return nil, errors.Newf(errors.ErrCodeColumnAlreadyExists, "column %q already exists", to)
	}

	out := f.Copy()
	out.columns[to] = c.rename(to)

	if from != to {
		delete(out.columns, from)
	}

	for i, n := range out.order {
		if n == from {
			out.order[i] = to
		}
	}

	return out, nil
}

func identity(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}

	return rows
}
