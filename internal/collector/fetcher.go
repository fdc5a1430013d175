package collector

import "AlphaLens/internal/model"

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchDailyBars returns up to days daily OHLCV bars in ascending date
	// order, most recent last.
	FetchDailyBars(symbol string, days int) ([]model.PriceBar, error)
	// FetchMarketContext returns the broad-market backdrop (NIFTY 50 index).
	// Implementations degrade to an Unknown context rather than failing.
	FetchMarketContext() (*model.MarketContext, error)
	Name() string
}
