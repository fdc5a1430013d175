package indicator

import (
	"errors"
	"math"

	"AlphaLens/internal/model"
)

// AddSuperTrend augments the series with the SuperTrend band value and its
// direction (+1 uptrend, -1 downtrend).
//
// ATR is a plain rolling mean of true range over period bars, so the basic
// bands are undefined for the first period-1 positions. The band recurrence
// is seeded at the first position with a defined ATR: the SuperTrend starts
// on the upper band with direction -1, then each step re-selects the bands
// and flips sides only when the close crosses the currently active band.
// The tie-break order of the four flip conditions is a numeric contract;
// do not reorder or merge the branches.
func AddSuperTrend(s *model.IndicatorSeries, period int, multiplier float64) error {
	if period <= 0 {
		return errors.New("period must be positive")
	}
	n := s.Len()
	atr := rollingMean(trueRange(s.Bars), period)

	basicUpper := make([]float64, n)
	basicLower := make([]float64, n)
	for i, b := range s.Bars {
		mid := (b.High + b.Low) / 2
		basicUpper[i] = mid + multiplier*atr[i]
		basicLower[i] = mid - multiplier*atr[i]
	}

	st := nanSlice(n)
	dir := make([]float64, n)
	for i := range dir {
		dir[i] = -1
	}

	start := -1
	for i := range atr {
		if !math.IsNaN(atr[i]) {
			start = i
			break
		}
	}
	if start < 0 {
		// Not enough bars for a single ATR window.
		s.SuperTrend = st
		s.SuperTrendDir = dir
		return nil
	}

	upper := nanSlice(n)
	lower := nanSlice(n)
	upper[start] = basicUpper[start]
	lower[start] = basicLower[start]
	st[start] = upper[start]

	for i := start + 1; i < n; i++ {
		close := s.Bars[i].Close
		prevClose := s.Bars[i-1].Close

		// Upper band ratchets down unless the prior close broke above it.
		if basicUpper[i] < st[i-1] || prevClose > st[i-1] {
			upper[i] = basicUpper[i]
		} else {
			upper[i] = st[i-1]
		}
		// Lower band ratchets up unless the prior close broke below it.
		if basicLower[i] > st[i-1] || prevClose < st[i-1] {
			lower[i] = basicLower[i]
		} else {
			lower[i] = st[i-1]
		}

		switch {
		case st[i-1] == upper[i-1] && close <= upper[i]:
			st[i] = upper[i] // bearish, close still under the upper band
		case st[i-1] == upper[i-1] && close > upper[i]:
			st[i] = lower[i] // flip bullish
		case st[i-1] == lower[i-1] && close >= lower[i]:
			st[i] = lower[i] // bullish, close still over the lower band
		case st[i-1] == lower[i-1] && close < lower[i]:
			st[i] = upper[i] // flip bearish
		default:
			st[i] = st[i-1]
		}

		if close > st[i] {
			dir[i] = 1
		} else {
			dir[i] = -1
		}
	}

	s.SuperTrend = st
	s.SuperTrendDir = dir
	return nil
}
