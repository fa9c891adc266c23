package indicator

import (
	"github.com/rxtech-lab/zentools/internal/types"
	"github.com/rxtech-lab/zentools/pkg/errors"
	"github.com/rxtech-lab/zentools/pkg/frame"
)

// AddEMA appends EMA_<period>, the non-adjusted exponential moving average of Close with
// span period.
func AddEMA(f *frame.Frame, period int) (*frame.Frame, error) {
	closes, err := f.Series(CloseColumn)
	if err != nil {
		return nil, err
	}

	out := f.Copy()
	if err := out.SetSeries(closes.EWM(float64(period)).Mean().Rename(EMAColumn(period))); err != nil {
		return nil, err
	}

	return out, nil
}

// EMA indicator implements Exponential Moving Average calculation.
type EMA struct {
	period int
}

// NewEMA creates a new EMA indicator with default configuration.
func NewEMA() Indicator {
	return &EMA{
		period: 20, // Default period
	}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Config configures the EMA indicator. Expected parameters: period (int).
func (e *EMA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := periodParam(params, 0, "period")
	if err != nil {
		return err
	}

	e.period = period

	return nil
}

// Apply appends the EMA column.
func (e *EMA) Apply(f *frame.Frame) (*frame.Frame, error) {
	return AddEMA(f, e.period)
}
