package types

type IndicatorType string

const (
	IndicatorTypeMACD   IndicatorType = "macd"
	IndicatorTypeRSI    IndicatorType = "rsi"
	IndicatorTypeEWMRSI IndicatorType = "ewm_rsi"
	IndicatorTypeEMA    IndicatorType = "ema"
)

// IndicatorTypes lists every built-in indicator type.
var IndicatorTypes = []IndicatorType{
	IndicatorTypeMACD,
	IndicatorTypeRSI,
	IndicatorTypeEWMRSI,
	IndicatorTypeEMA,
}

// IsValid reports whether t names a built-in indicator.
func (t IndicatorType) IsValid() bool {
	for _, known := range IndicatorTypes {
		if t == known {
			return true
		}
	}

	return false
}
