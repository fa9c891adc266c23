package indicator

import (
	"github.com/rxtech-lab/zentools/internal/types"
	"github.com/rxtech-lab/zentools/pkg/errors"
	"github.com/rxtech-lab/zentools/pkg/frame"
)

// AddMACD appends EMA_<fast>, EMA_<slow>, MACD, Signal_Line and Histogram computed from Close.
//
// If any cell of the frame is missing, nothing is computed and an unmodified copy is
// returned without error. Periods are not validated.
func AddMACD(f *frame.Frame, fast, slow, signal int) (*frame.Frame, error) {
	if f.HasNaN() {
		return f.Copy(), nil
	}

	closes, err := f.Series(CloseColumn)
	if err != nil {
		return nil, err
	}

	fastEMA := closes.EWM(float64(fast)).Mean().Rename(EMAColumn(fast))
	slowEMA := closes.EWM(float64(slow)).Mean().Rename(EMAColumn(slow))

	macd, err := fastEMA.Sub(slowEMA)
	if err != nil {
		return nil, err
	}

	macd = macd.Rename(MACDColumn)
	signalLine := macd.EWM(float64(signal)).Mean().Rename(SignalLineColumn)

	histogram, err := macd.Sub(signalLine)
	if err != nil {
		return nil, err
	}

	out := f.Copy()
	for _, s := range []*frame.Series{fastEMA, slowEMA, macd, signalLine, histogram.Rename(HistogramColumn)} {
		if err := out.SetSeries(s); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// MACD represents the Moving Average Convergence Divergence indicator.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD indicator with default configuration.
func NewMACD() Indicator {
	return &MACD{
		fastPeriod:   12, // Default fast period
		slowPeriod:   26, // Default slow period
		signalPeriod: 9,  // Default signal period
	}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Config configures the MACD indicator. Expected parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int).
func (m *MACD) Config(params ...any) error {
	if len(params) != 3 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 3 parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int)")
	}

	fastPeriod, err := periodParam(params, 0, "fastPeriod")
	if err != nil {
		return err
	}

	slowPeriod, err := periodParam(params, 1, "slowPeriod")
	if err != nil {
		return err
	}

	signalPeriod, err := periodParam(params, 2, "signalPeriod")
	if err != nil {
		return err
	}

	m.fastPeriod = fastPeriod
	m.slowPeriod = slowPeriod
	m.signalPeriod = signalPeriod

	return nil
}

// Apply appends the MACD columns.
func (m *MACD) Apply(f *frame.Frame) (*frame.Frame, error) {
	return AddMACD(f, m.fastPeriod, m.slowPeriod, m.signalPeriod)
}
