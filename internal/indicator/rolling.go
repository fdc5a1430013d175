package indicator

import (
	"math"

	"AlphaLens/internal/model"
)

// nanSlice returns a slice of length n filled with NaN.
func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// rollingMean computes the simple rolling mean over a fixed window. Positions
// with fewer than window values behind them, or any NaN inside the window,
// hold NaN.
func rollingMean(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		defined := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				defined = false
				break
			}
			sum += values[j]
		}
		if defined {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// rollingStd computes the rolling sample standard deviation (n-1 divisor)
// over a fixed window, with the same NaN semantics as rollingMean.
func rollingStd(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window < 2 {
		return out
	}
	means := rollingMean(values, window)
	for i := window - 1; i < len(values); i++ {
		if math.IsNaN(means[i]) {
			continue
		}
		sumSq := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := values[j] - means[i]
			sumSq += d * d
		}
		out[i] = math.Sqrt(sumSq / float64(window-1))
	}
	return out
}

// trueRange returns the per-bar true range:
// max(high-low, |high-prevClose|, |low-prevClose|).
// The first bar has no previous close, so its range is simply high-low.
func trueRange(bars []model.PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		hl := b.High - b.Low
		if i == 0 {
			out[i] = hl
			continue
		}
		prevClose := bars[i-1].Close
		hc := math.Abs(b.High - prevClose)
		lc := math.Abs(b.Low - prevClose)
		out[i] = math.Max(hl, math.Max(hc, lc))
	}
	return out
}

// extractCloses pulls the close column out of a bar slice.
func extractCloses(bars []model.PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
