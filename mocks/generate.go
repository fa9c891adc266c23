package mocks

//go:generate mockgen -destination=./mock_loader.go -package=mocks github.com/rxtech-lab/zentools/pkg/marketdata/loader Loader
//go:generate mockgen -destination=./mock_writer.go -package=mocks github.com/rxtech-lab/zentools/pkg/marketdata/writer MarketDataWriter
//go:generate mockgen -destination=./mock_indicator.go -package=mocks github.com/rxtech-lab/zentools/pkg/indicator Indicator
