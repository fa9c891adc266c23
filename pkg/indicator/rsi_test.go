package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/zentools/mocks"
	"github.com/rxtech-lab/zentools/pkg/errors"
	"github.com/rxtech-lab/zentools/pkg/frame"
	"github.com/stretchr/testify/suite"
)

type RSITestSuite struct {
	suite.Suite
}

func TestRSISuite(t *testing.T) {
	suite.Run(t, new(RSITestSuite))
}

func (suite *RSITestSuite) rsi(f *frame.Frame) []float64 {
	s, err := f.Series(RSIColumn)
	suite.Require().NoError(err)

	return s.Values
}

func (suite *RSITestSuite) generated(count int) *frame.Frame {
	config := mocks.DefaultConfig()
	config.Count = count
	config.Volatility = 0.01

	f, err := mocks.ToFrame(mocks.NewDataGenerator(42).Generate(config))
	suite.Require().NoError(err)

	return f
}

func (suite *RSITestSuite) TestRollingHandComputed() {
	out, err := AddRSI(closeFrame(10, 11, 10, 12, 13, 12), 3)
	suite.Require().NoError(err)

	rsi := suite.rsi(out)
	suite.True(math.IsNaN(rsi[0]))
	suite.True(math.IsNaN(rsi[1]))
	suite.InDeltaSlice([]float64{50, 75, 75, 75}, rsi[2:], 1e-9)
}

func (suite *RSITestSuite) TestRollingWarmUp() {
	period := DefaultRSIPeriod

	out, err := AddRSI(suite.generated(100), period)
	suite.Require().NoError(err)

	rsi := suite.rsi(out)
	for i := 0; i < period-1; i++ {
		suite.True(math.IsNaN(rsi[i]), "row %d should be undefined", i)
	}

	for i := period - 1; i < len(rsi); i++ {
		suite.False(math.IsNaN(rsi[i]), "row %d should be defined", i)
	}
}

func (suite *RSITestSuite) TestEWMHandComputed() {
	out, err := AddEWMRSI(closeFrame(10, 11, 10, 12, 13, 12), 3)
	suite.Require().NoError(err)

	rsi := suite.rsi(out)
	suite.True(math.IsNaN(rsi[0]), "first row is 0/0")
	suite.InDelta(100.0, rsi[1], 1e-9)
	suite.InDelta(100.0/3.0, rsi[2], 1e-9)
	suite.InDelta(100-100/5.5, rsi[3], 1e-9)
	suite.InDelta(100-100/9.5, rsi[4], 1e-9)
	suite.InDelta(100-100/(1+0.53125/0.5625), rsi[5], 1e-9)
}

func (suite *RSITestSuite) TestEWMHasNoWarmUp() {
	out, err := AddEWMRSI(suite.generated(100), DefaultRSIPeriod)
	suite.Require().NoError(err)

	rsi := suite.rsi(out)
	for i := 1; i < len(rsi); i++ {
		suite.False(math.IsNaN(rsi[i]), "row %d should be defined", i)
	}
}

func (suite *RSITestSuite) TestBounded() {
	data := suite.generated(1000)

	for _, add := range []func(*frame.Frame, int) (*frame.Frame, error){AddRSI, AddEWMRSI} {
		out, err := add(data, DefaultRSIPeriod)
		suite.Require().NoError(err)

		for i, v := range suite.rsi(out) {
			if math.IsNaN(v) {
				continue
			}

			suite.GreaterOrEqual(v, 0.0, "row %d", i)
			suite.LessOrEqual(v, 100.0, "row %d", i)
		}
	}
}

func (suite *RSITestSuite) TestMonotonicSeriesSaturates() {
	out, err := AddRSI(closeFrame(1, 2, 3, 4, 5), 2)
	suite.Require().NoError(err)
	suite.InDeltaSlice([]float64{100, 100, 100, 100}, suite.rsi(out)[1:], 1e-9)

	out, err = AddRSI(closeFrame(5, 4, 3, 2, 1), 2)
	suite.Require().NoError(err)
	suite.InDeltaSlice([]float64{0, 0, 0, 0}, suite.rsi(out)[1:], 1e-9)
}

func (suite *RSITestSuite) TestStrictFailureOnMissingClose() {
	input := closeFrame(1, 2, math.NaN(), 4)
	snapshot := input.Copy()

	for _, add := range []func(*frame.Frame, int) (*frame.Frame, error){AddRSI, AddEWMRSI} {
		out, err := add(input, 2)
		suite.Nil(out)
		suite.True(errors.HasCode(err, errors.ErrCodeInvalidInput))
		suite.True(snapshot.Equal(input), "input must not change")
	}
}

func (suite *RSITestSuite) TestMissingValueOutsideCloseIsIgnored() {
	input, err := frame.New(
		frame.NewRangeIndex(3),
		frame.NewFloatColumn(CloseColumn, []float64{1, 2, 3}),
		frame.NewFloatColumn("Volume", []float64{math.NaN(), 1, 1}),
	)
	suite.Require().NoError(err)

	out, err := AddRSI(input, 2)
	suite.Require().NoError(err)
	suite.True(out.HasColumn(RSIColumn))
}

func (suite *RSITestSuite) TestVariantsShareColumn() {
	input := closeFrame(10, 11, 10, 12, 13, 12)

	rolling, err := AddRSI(input, 3)
	suite.Require().NoError(err)

	both, err := AddEWMRSI(rolling, 3)
	suite.Require().NoError(err)

	suite.Equal([]string{CloseColumn, RSIColumn}, both.Columns())

	ewm, err := AddEWMRSI(input, 3)
	suite.Require().NoError(err)
	suite.True(ewm.Equal(both), "second variant overwrites the first")

	suite.False(input.HasColumn(RSIColumn))
}

func (suite *RSITestSuite) TestMissingCloseColumn() {
	input, err := frame.New(frame.NewRangeIndex(1), frame.NewFloatColumn("Open", []float64{1}))
	suite.Require().NoError(err)

	_, err = AddRSI(input, 14)
	suite.True(errors.HasCode(err, errors.ErrCodeColumnNotFound))
}
