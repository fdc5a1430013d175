package indicator

import (
	"errors"

	"AlphaLens/internal/model"
)

// AddBollingerBands augments the series with a simple moving average of the
// close (middle band) and upper/lower bands at stdDev rolling sample standard
// deviations. All three columns are undefined for the first period-1 bars.
func AddBollingerBands(s *model.IndicatorSeries, period int, stdDev float64) error {
	if period <= 0 {
		return errors.New("period must be positive")
	}
	closes := extractCloses(s.Bars)
	middle := rollingMean(closes, period)
	std := rollingStd(closes, period)

	n := s.Len()
	upper := nanSlice(n)
	lower := nanSlice(n)
	for i := 0; i < n; i++ {
		upper[i] = middle[i] + std[i]*stdDev
		lower[i] = middle[i] - std[i]*stdDev
	}

	s.BBMiddle = middle
	s.BBUpper = upper
	s.BBLower = lower
	return nil
}
