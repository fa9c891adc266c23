// Package indicator computes technical indicator columns over price frames.
//
// The Add* functions are plain batch transforms: they read the Close column, append the
// indicator columns to a copy of the frame, and never modify their input. The Indicator
// implementations wrap them with validated configuration so they can be looked up by name
// from an IndicatorRegistry.
package indicator

import (
	"fmt"

	"github.com/rxtech-lab/zentools/internal/types"
	"github.com/rxtech-lab/zentools/pkg/errors"
	"github.com/rxtech-lab/zentools/pkg/frame"
)

// Column names written by the indicators.
const (
	CloseColumn      = "Close"
	MACDColumn       = "MACD"
	SignalLineColumn = "Signal_Line"
	HistogramColumn  = "Histogram"
	RSIColumn        = "RSI"
)

// Indicator interface defines methods that any technical indicator must implement
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Config validates and stores the indicator parameters
	Config(params ...any) error
	// Apply returns a copy of the frame with the indicator columns appended
	Apply(f *frame.Frame) (*frame.Frame, error)
}

// EMAColumn returns the column name of an exponential moving average with the given span.
func EMAColumn(period int) string {
	return fmt.Sprintf("EMA_%d", period)
}

// periodParam reads a positive int parameter at position i.
func periodParam(params []any, i int, name string) (int, error) {
	period, ok := params[i].(int)
	if !ok {
		return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected int", name)
	}

	if period <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", name, period)
	}

	return period, nil
}
