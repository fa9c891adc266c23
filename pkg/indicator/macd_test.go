package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/zentools/mocks"
	"github.com/rxtech-lab/zentools/pkg/errors"
	"github.com/rxtech-lab/zentools/pkg/frame"
	"github.com/stretchr/testify/suite"
)

type MACDTestSuite struct {
	suite.Suite
}

func TestMACDSuite(t *testing.T) {
	suite.Run(t, new(MACDTestSuite))
}

func closeFrame(values ...float64) *frame.Frame {
	f, err := frame.New(frame.NewRangeIndex(len(values)), frame.NewFloatColumn(CloseColumn, values))
	if err != nil {
		panic(err)
	}

	return f
}

func (suite *MACDTestSuite) values(f *frame.Frame, name string) []float64 {
	s, err := f.Series(name)
	suite.Require().NoError(err)

	return s.Values
}

func (suite *MACDTestSuite) TestAddsColumns() {
	out, err := AddMACD(closeFrame(1, 2, 3, 4, 5), 12, 26, 9)
	suite.Require().NoError(err)

	suite.Equal([]string{CloseColumn, "EMA_12", "EMA_26", MACDColumn, SignalLineColumn, HistogramColumn}, out.Columns())
	suite.Equal(5, out.Len())
	suite.False(out.HasNaN(), "every row must be defined")
}

func (suite *MACDTestSuite) TestHandComputedValues() {
	out, err := AddMACD(closeFrame(1, 2, 3), 3, 7, 3)
	suite.Require().NoError(err)

	suite.InDeltaSlice([]float64{1, 1.5, 2.25}, suite.values(out, "EMA_3"), 1e-12)
	suite.InDeltaSlice([]float64{1, 1.25, 1.6875}, suite.values(out, "EMA_7"), 1e-12)
	suite.InDeltaSlice([]float64{0, 0.25, 0.5625}, suite.values(out, MACDColumn), 1e-12)
	suite.InDeltaSlice([]float64{0, 0.125, 0.34375}, suite.values(out, SignalLineColumn), 1e-12)
	suite.InDeltaSlice([]float64{0, 0.125, 0.21875}, suite.values(out, HistogramColumn), 1e-12)
}

func (suite *MACDTestSuite) TestConstantSeriesIsFixedPoint() {
	testCases := []struct {
		price              float64
		fast, slow, signal int
	}{
		{42, 12, 26, 9},
		{96.969518914484567, 1, 6, 9},
		{96.969518914484567, 6, 11, 9},
		{0.1, 12, 26, 9},
		{3.3, 5, 35, 5},
		{1565.37, 60, 65, 9},
		{777.7777777, 3, 8, 2},
	}

	for _, tc := range testCases {
		out, err := AddMACD(closeFrame(tc.price, tc.price, tc.price, tc.price, tc.price), tc.fast, tc.slow, tc.signal)
		suite.Require().NoError(err)

		for _, name := range []string{EMAColumn(tc.fast), EMAColumn(tc.slow)} {
			for i, v := range suite.values(out, name) {
				suite.Equal(tc.price, v, "%s price %v row %d", name, tc.price, i)
			}
		}

		for _, name := range []string{MACDColumn, SignalLineColumn, HistogramColumn} {
			for i, v := range suite.values(out, name) {
				suite.Zero(v, "%s price %v row %d", name, tc.price, i)
			}
		}
	}
}

func (suite *MACDTestSuite) TestShortCircuitOnMissingValue() {
	input, err := frame.New(
		frame.NewRangeIndex(3),
		frame.NewFloatColumn(CloseColumn, []float64{1, 2, 3}),
		frame.NewFloatColumn("Volume", []float64{10, math.NaN(), 30}),
	)
	suite.Require().NoError(err)

	out, err := AddMACD(input, 12, 26, 9)
	suite.Require().NoError(err)
	suite.True(input.Equal(out))
	suite.False(out.HasColumn(MACDColumn))

	nanClose := closeFrame(1, math.NaN(), 3)
	out, err = AddMACD(nanClose, 12, 26, 9)
	suite.Require().NoError(err)
	suite.True(nanClose.Equal(out))
}

func (suite *MACDTestSuite) TestDoesNotModifyInput() {
	input := closeFrame(1, 2, 3)
	snapshot := input.Copy()

	_, err := AddMACD(input, 12, 26, 9)
	suite.Require().NoError(err)
	suite.True(snapshot.Equal(input))
}

func (suite *MACDTestSuite) TestMissingCloseColumn() {
	input, err := frame.New(frame.NewRangeIndex(2), frame.NewFloatColumn("Open", []float64{1, 2}))
	suite.Require().NoError(err)

	_, err = AddMACD(input, 12, 26, 9)
	suite.True(errors.HasCode(err, errors.ErrCodeColumnNotFound))
}

func (suite *MACDTestSuite) TestGeneratedData() {
	data, err := mocks.ToFrame(mocks.NewDataGenerator(7).Generate(mocks.GeneratorConfig{
		Symbol:         "TEST",
		StartTime:      mocks.DefaultConfig().StartTime,
		Interval:       mocks.DefaultConfig().Interval,
		Count:          500,
		InitialPrice:   100,
		Volatility:     0.01,
		VolumeBase:     1000,
		VolumeVariance: 0.2,
	}))
	suite.Require().NoError(err)

	out, err := AddMACD(data, 12, 26, 9)
	suite.Require().NoError(err)

	macd := suite.values(out, MACDColumn)
	signal := suite.values(out, SignalLineColumn)
	histogram := suite.values(out, HistogramColumn)

	for i := range macd {
		suite.InDelta(macd[i]-signal[i], histogram[i], 1e-9)
	}
}

type IndicatorConfigTestSuite struct {
	suite.Suite
}

func TestIndicatorConfigSuite(t *testing.T) {
	suite.Run(t, new(IndicatorConfigTestSuite))
}

func (suite *IndicatorConfigTestSuite) TestMACDConfig() {
	macd := NewMACD()
	impl := macd.(*MACD)
	suite.Equal(12, impl.fastPeriod)
	suite.Equal(26, impl.slowPeriod)
	suite.Equal(9, impl.signalPeriod)

	suite.NoError(macd.Config(5, 35, 5))
	suite.Equal(5, impl.fastPeriod)
	suite.Equal(35, impl.slowPeriod)

	err := macd.Config(12, 26)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))

	err = macd.Config(12, "26", 9)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidType))
	suite.Contains(err.Error(), "slowPeriod")

	err = macd.Config(12, 26, 0)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}

func (suite *IndicatorConfigTestSuite) TestRSIConfig() {
	for _, rsi := range []Indicator{NewRSI(), NewEWMRSI()} {
		suite.NoError(rsi.Config(21))

		err := rsi.Config()
		suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))

		err = rsi.Config("invalid")
		suite.True(errors.HasCode(err, errors.ErrCodeInvalidType))
		suite.Contains(err.Error(), "invalid type for period")

		err = rsi.Config(-1)
		suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
	}

	suite.Equal(DefaultRSIPeriod, NewRSI().(*RSI).period)
	suite.Equal(DefaultRSIPeriod, NewEWMRSI().(*EWMRSI).period)
}

func (suite *IndicatorConfigTestSuite) TestEMAConfigAndApply() {
	ema := NewEMA()
	suite.Equal(20, ema.(*EMA).period)
	suite.NoError(ema.Config(3))

	out, err := ema.Apply(closeFrame(1, 2, 3))
	suite.Require().NoError(err)

	s, err := out.Series("EMA_3")
	suite.Require().NoError(err)
	suite.InDeltaSlice([]float64{1, 1.5, 2.25}, s.Values, 1e-12)

	suite.Error(ema.Config(1, 2))
}

func (suite *IndicatorConfigTestSuite) TestEMAWithMissingClose() {
	out, err := AddEMA(closeFrame(math.NaN(), 10, math.NaN(), 20), 3)
	suite.Require().NoError(err)

	s, err := out.Series("EMA_3")
	suite.Require().NoError(err)
	suite.True(math.IsNaN(s.At(0)))
	suite.Equal(10.0, s.At(1))
	suite.Equal(10.0, s.At(2))
	// (0.25*10 + 0.5*20) / 0.75, as pandas ewm(span=3, adjust=False)
	suite.InDelta(50.0/3.0, s.At(3), 1e-12)
}

func (suite *IndicatorConfigTestSuite) TestApplyUsesConfiguredPeriods() {
	macd := NewMACD()
	suite.Require().NoError(macd.Config(3, 7, 3))

	out, err := macd.Apply(closeFrame(1, 2, 3))
	suite.Require().NoError(err)
	suite.True(out.HasColumn("EMA_3"))
	suite.True(out.HasColumn("EMA_7"))

	rsi := NewRSI()
	suite.Require().NoError(rsi.Config(2))

	out, err = rsi.Apply(closeFrame(1, 2, 3))
	suite.Require().NoError(err)
	suite.True(out.HasColumn(RSIColumn))
}
