package types

import "time"

// MarketData is one OHLCV bar. Column names follow the CSV headers the loader expects.
type MarketData struct {
	Time   time.Time `csv:"Date"`
	Symbol string    `csv:"Symbol"`
	Open   float64   `csv:"Open"`
	High   float64   `csv:"High"`
	Low    float64   `csv:"Low"`
	Close  float64   `csv:"Close"`
	Volume float64   `csv:"Volume"`
}
