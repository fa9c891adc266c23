package frame

import (
	"math"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/zentools/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type FrameTestSuite struct {
	suite.Suite
}

func TestFrameSuite(t *testing.T) {
	suite.Run(t, new(FrameTestSuite))
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func (suite *FrameTestSuite) newFrame() *Frame {
	f, err := New(
		NewTimeIndex("Date", []time.Time{day(3), day(1), day(2)}),
		NewFloatColumn("Close", []float64{3, 1, 2}),
		NewStringColumn("Symbol", StringValues("A", "B", "C")),
	)
	suite.Require().NoError(err)

	return f
}

func (suite *FrameTestSuite) TestNew() {
	f := suite.newFrame()

	suite.Equal(3, f.Len())
	suite.Equal([]string{"Close", "Symbol"}, f.Columns())
	suite.True(f.Index().IsTime())
	suite.Equal("Date", f.Index().Name())
	suite.Equal([]string{"Close"}, f.NumericColumns())
}

func (suite *FrameTestSuite) TestNewRejectsBadColumns() {
	_, err := New(NewRangeIndex(2), NewFloatColumn("x", []float64{1}))
	suite.True(errors.HasCode(err, errors.ErrCodeLengthMismatch))

	_, err = New(NewRangeIndex(1), NewFloatColumn("x", []float64{1}), NewFloatColumn("x", []float64{2}))
	suite.True(errors.HasCode(err, errors.ErrCodeColumnAlreadyExists))
}

func (suite *FrameTestSuite) TestSeries() {
	f := suite.newFrame()

	s, err := f.Series("Close")
	suite.Require().NoError(err)
	suite.Equal([]float64{3, 1, 2}, s.Values)

	s.Values[0] = 100
	again, _ := f.Series("Close")
	suite.Equal(3.0, again.Values[0], "series must be a copy")

	_, err = f.Series("Missing")
	suite.True(errors.HasCode(err, errors.ErrCodeColumnNotFound))
	suite.Equal("Missing", errors.ColumnOf(err))

	_, err = f.Series("Symbol")
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidType))
}

func (suite *FrameTestSuite) TestSetSeriesOverwriteKeepsPosition() {
	f := suite.newFrame()

	suite.Require().NoError(f.SetSeries(NewSeries("RSI", []float64{1, 2, 3})))
	suite.Require().NoError(f.SetSeries(NewSeries("Close", []float64{9, 9, 9})))
	suite.Equal([]string{"Close", "Symbol", "RSI"}, f.Columns())

	err := f.SetSeries(NewSeries("bad", []float64{1}))
	suite.True(errors.HasCode(err, errors.ErrCodeLengthMismatch))
}

func (suite *FrameTestSuite) TestHasNaN() {
	f := suite.newFrame()
	suite.False(f.HasNaN())

	suite.Require().NoError(f.SetColumn(NewStringColumn("Note", []optional.Option[string]{optional.Some("x"), optional.None[string](), optional.Some("y")})))
	suite.True(f.HasNaN())

	g := suite.newFrame()
	suite.Require().NoError(g.SetSeries(NewSeries("Open", []float64{1, math.NaN(), 2})))
	suite.True(g.HasNaN())
}

func (suite *FrameTestSuite) TestCopyIsIndependent() {
	f := suite.newFrame()
	c := f.Copy()
	suite.True(f.Equal(c))

	suite.Require().NoError(c.SetSeries(NewSeries("Close", []float64{0, 0, 0})))
	suite.False(f.Equal(c))

	s, _ := f.Series("Close")
	suite.Equal([]float64{3, 1, 2}, s.Values)
}

func (suite *FrameTestSuite) TestSortByIndex() {
	f := suite.newFrame()
	suite.False(f.IsIndexMonotonicIncreasing())

	sorted := f.SortByIndex()
	suite.True(sorted.IsIndexMonotonicIncreasing())
	suite.Equal([]time.Time{day(1), day(2), day(3)}, sorted.Index().Times())

	s, _ := sorted.Series("Close")
	suite.Equal([]float64{1, 2, 3}, s.Values)

	sym, _ := sorted.Column("Symbol")
	suite.Equal("B", sym.StringAt(0).Unwrap())

	suite.False(f.IsIndexMonotonicIncreasing(), "input must stay unsorted")
}

func (suite *FrameTestSuite) TestRowsHeadTail() {
	f := suite.newFrame().SortByIndex()

	suite.Equal(2, f.Rows(1, 3).Len())
	suite.Equal(0, f.Rows(5, 10).Len())
	suite.Equal(3, f.Rows(-1, 10).Len())

	head, _ := f.Head(1).Series("Close")
	suite.Equal([]float64{1}, head.Values)

	tail, _ := f.Tail(2).Series("Close")
	suite.Equal([]float64{2, 3}, tail.Values)
}

func (suite *FrameTestSuite) TestResetAndSetIndex() {
	f := suite.newFrame()

	reset := f.ResetIndex()
	suite.False(reset.Index().IsTime())
	suite.Equal([]string{"Date", "Close", "Symbol"}, reset.Columns())
	suite.True(f.Index().IsTime())

	back, err := reset.SetTimeIndex("Date")
	suite.Require().NoError(err)
	suite.True(back.Equal(f))

	_, err = reset.SetTimeIndex("Close")
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidIndex))
}

func (suite *FrameTestSuite) TestRenameColumn() {
	f := suite.newFrame()

	out, err := f.RenameColumn("Close", "close")
	suite.Require().NoError(err)
	suite.Equal([]string{"close", "Symbol"}, out.Columns())
	suite.True(f.HasColumn("Close"))

	_, err = f.RenameColumn("Close", "Symbol")
	suite.True(errors.HasCode(err, errors.ErrCodeColumnAlreadyExists))
}

func (suite *FrameTestSuite) TestEqualTreatsNaNAsEqual() {
	a, _ := New(NewRangeIndex(2), NewFloatColumn("x", []float64{1, math.NaN()}))
	b, _ := New(NewRangeIndex(2), NewFloatColumn("x", []float64{1, math.NaN()}))
	c, _ := New(NewRangeIndex(2), NewFloatColumn("x", []float64{1, 2}))

	suite.True(a.Equal(b))
	suite.False(a.Equal(c))
	suite.False(a.Equal(nil))
}

func (suite *FrameTestSuite) TestParseTimestamp() {
	cases := map[string]time.Time{
		"2024-01-02":               time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		"2024-01-02 09:30":         time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC),
		"2024-01-02 09:30:15":      time.Date(2024, 1, 2, 9, 30, 15, 0, time.UTC),
		"2024-01-02T09:30:15":      time.Date(2024, 1, 2, 9, 30, 15, 0, time.UTC),
		"2024-01-02T09:30:15Z":     time.Date(2024, 1, 2, 9, 30, 15, 0, time.UTC),
		" 2024-01-02T09:30:15.5Z ": time.Date(2024, 1, 2, 9, 30, 15, 500000000, time.UTC),
	}

	for input, want := range cases {
		got, err := ParseTimestamp(input)
		suite.Require().NoError(err, input)
		suite.True(want.Equal(got), input)
	}

	for _, bad := range []string{"", "not-a-date", "2024-13-45"} {
		_, err := ParseTimestamp(bad)
		suite.True(errors.HasCode(err, errors.ErrCodeInvalidInput), bad)
	}
}
