package types

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type MarketTestSuite struct {
	suite.Suite
}

func TestMarketSuite(t *testing.T) {
	suite.Run(t, new(MarketTestSuite))
}

func (suite *MarketTestSuite) TestMarketDataStruct() {
	now := time.Now()
	data := MarketData{
		Symbol: "ETHUSDT",
		Time:   now,
		Open:   1564.22,
		High:   1567.31,
		Low:    1563.70,
		Close:  1566.57,
		Volume: 3403.8235,
	}

	suite.Equal("ETHUSDT", data.Symbol)
	suite.Equal(now, data.Time)
	suite.Equal(1566.57, data.Close)
	suite.GreaterOrEqual(data.High, data.Close)
	suite.LessOrEqual(data.Low, data.Open)
}

func (suite *MarketTestSuite) TestMarketDataZeroValues() {
	data := MarketData{}

	suite.Empty(data.Symbol)
	suite.True(data.Time.IsZero())
	suite.Equal(0.0, data.Close)
}

func (suite *MarketTestSuite) TestCSVHeaders() {
	typ := reflect.TypeOf(MarketData{})
	headers := make([]string, 0, typ.NumField())

	for i := 0; i < typ.NumField(); i++ {
		headers = append(headers, typ.Field(i).Tag.Get("csv"))
	}

	suite.Equal([]string{"Date", "Symbol", "Open", "High", "Low", "Close", "Volume"}, headers)
}
