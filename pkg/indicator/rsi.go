package indicator

import (
	"github.com/rxtech-lab/zentools/internal/types"
	"github.com/rxtech-lab/zentools/pkg/errors"
	"github.com/rxtech-lab/zentools/pkg/frame"
)

// DefaultRSIPeriod is the conventional RSI lookback.
const DefaultRSIPeriod = 14

// AddRSI appends RSI computed from simple rolling means of gains and losses over period rows.
// Rows 0..period-2 are NaN. A missing Close value fails with ErrCodeInvalidInput.
func AddRSI(f *frame.Frame, period int) (*frame.Frame, error) {
	return addRSI(f, func(s *frame.Series) *frame.Series {
		return s.Rolling(period, period).Mean()
	})
}

// AddEWMRSI appends RSI computed from exponentially weighted means of gains and losses with
// span period. There is no warm-up mask; the first row is 0/0 and therefore NaN.
// A missing Close value fails with ErrCodeInvalidInput.
func AddEWMRSI(f *frame.Frame, period int) (*frame.Frame, error) {
	return addRSI(f, func(s *frame.Series) *frame.Series {
		return s.EWM(float64(period)).Mean()
	})
}

func addRSI(f *frame.Frame, average func(*frame.Series) *frame.Series) (*frame.Frame, error) {
	closes, err := f.Series(CloseColumn)
	if err != nil {
		return nil, err
	}

	if closes.HasNaN() {
		return nil, errors.Newf(errors.ErrCodeInvalidInput, "column %s contains missing values", CloseColumn)
	}

	delta := closes.Diff(1)
	gains := delta.Where(func(v float64) bool { return v > 0 }, 0)
	losses := delta.Apply(func(v float64) float64 {
		if v < 0 {
			return -v
		}

		return 0
	})

	rs, err := average(gains).Div(average(losses))
	if err != nil {
		return nil, err
	}

	// +Inf and NaN pass through: 100/(1+Inf) = 0, NaN stays NaN
	rsi := rs.Apply(func(v float64) float64 {
		return 100 - 100/(1+v)
	}).Rename(RSIColumn)

	out := f.Copy()
	if err := out.SetSeries(rsi); err != nil {
		return nil, err
	}

	return out, nil
}

// RSI represents the Relative Strength Index indicator with a rolling-mean average.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() Indicator {
	return &RSI{
		period: DefaultRSIPeriod,
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Config configures the RSI indicator. Expected parameters: period (int).
func (r *RSI) Config(params ...any) error {
	period, err := rsiPeriod(params)
	if err != nil {
		return err
	}

	r.period = period

	return nil
}

// Apply appends the RSI column.
func (r *RSI) Apply(f *frame.Frame) (*frame.Frame, error) {
	return AddRSI(f, r.period)
}

// EWMRSI is the RSI variant averaging gains and losses exponentially.
type EWMRSI struct {
	period int
}

// NewEWMRSI creates a new exponential RSI indicator with default configuration.
func NewEWMRSI() Indicator {
	return &EWMRSI{
		period: DefaultRSIPeriod,
	}
}

// Name returns the name of the indicator.
func (r *EWMRSI) Name() types.IndicatorType {
	return types.IndicatorTypeEWMRSI
}

// Config configures the indicator. Expected parameters: period (int).
func (r *EWMRSI) Config(params ...any) error {
	period, err := rsiPeriod(params)
	if err != nil {
		return err
	}

	r.period = period

	return nil
}

// Apply appends the RSI column.
func (r *EWMRSI) Apply(f *frame.Frame) (*frame.Frame, error) {
	return AddEWMRSI(f, r.period)
}

func rsiPeriod(params []any) (int, error) {
	if len(params) != 1 {
		return 0, errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	return periodParam(params, 0, "period")
}
