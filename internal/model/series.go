package model

import "math"

// Canonical column names, matching the period defaults used throughout.
const (
	ColClose         = "Close"
	ColVolume        = "Volume"
	ColEMA           = "EMA_20"
	ColRSI           = "RSI_14"
	ColADX           = "ADX_14"
	ColVWAP          = "VWAP"
	ColBBUpper       = "BB_Upper"
	ColBBMiddle      = "BB_Middle"
	ColBBLower       = "BB_Lower"
	ColSuperTrend    = "SuperTrend"
	ColSuperTrendDir = "SuperTrend_Direction"
)

// IndicatorSeries is a price series augmented with derived indicator columns.
// Each column is aligned 1:1 by position with Bars. Positions where a rolling
// window has insufficient history hold NaN, never zero. A nil column slice
// means the indicator has not been computed (an absent column, distinct from
// a column of NaNs).
//
// An IndicatorSeries is built once per analysis request and never mutated
// after the indicator stage completes.
type IndicatorSeries struct {
	Symbol string
	Bars   []PriceBar

	EMA           []float64
	RSI           []float64
	PlusDI        []float64
	MinusDI       []float64
	ADX           []float64
	VWAP          []float64
	BBUpper       []float64
	BBMiddle      []float64
	BBLower       []float64
	SuperTrend    []float64
	SuperTrendDir []float64 // +1 uptrend, -1 downtrend
}

// NewIndicatorSeries wraps a price series for indicator computation.
func NewIndicatorSeries(ps *PriceSeries) *IndicatorSeries {
	return &IndicatorSeries{Symbol: ps.Symbol, Bars: ps.Bars}
}

// Len returns the number of bars in the series.
func (s *IndicatorSeries) Len() int {
	return len(s.Bars)
}

// Latest returns the most recent bar. Callers must check Len() > 0 first.
func (s *IndicatorSeries) Latest() PriceBar {
	return s.Bars[len(s.Bars)-1]
}

// column maps a canonical column name to its slice. Close and Volume live on
// the bars themselves and are present whenever the series is non-empty.
func (s *IndicatorSeries) column(name string) []float64 {
	switch name {
	case ColEMA:
		return s.EMA
	case ColRSI:
		return s.RSI
	case ColADX:
		return s.ADX
	case ColVWAP:
		return s.VWAP
	case ColBBUpper:
		return s.BBUpper
	case ColBBMiddle:
		return s.BBMiddle
	case ColBBLower:
		return s.BBLower
	case ColSuperTrend:
		return s.SuperTrend
	case ColSuperTrendDir:
		return s.SuperTrendDir
	}
	return nil
}

// HasColumn reports whether the named column is present.
func (s *IndicatorSeries) HasColumn(name string) bool {
	if name == ColClose || name == ColVolume {
		return len(s.Bars) > 0
	}
	return s.column(name) != nil
}

// MissingColumns returns the subset of names not present, in the given order.
func (s *IndicatorSeries) MissingColumns(names ...string) []string {
	var missing []string
	for _, name := range names {
		if !s.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// LatestValue returns the last value of the named indicator column, or NaN
// if the column is absent or the series is empty.
func (s *IndicatorSeries) LatestValue(name string) float64 {
	col := s.column(name)
	if len(col) == 0 {
		return math.NaN()
	}
	return col[len(col)-1]
}
