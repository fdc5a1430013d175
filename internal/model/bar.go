package model

import "time"

// PriceBar represents a single daily OHLCV bar.
type PriceBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// PriceSeries holds raw price data for analysis, ordered by ascending date.
type PriceSeries struct {
	Symbol    string
	Bars      []PriceBar
	FetchedAt time.Time
}

// MinBars is the minimum number of daily bars required for a full analysis.
const MinBars = 150

// Latest returns the most recent bar. Callers must check Len() > 0 first.
func (s *PriceSeries) Latest() PriceBar {
	return s.Bars[len(s.Bars)-1]
}

// Len returns the number of bars in the series.
func (s *PriceSeries) Len() int {
	return len(s.Bars)
}
