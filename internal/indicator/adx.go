package indicator

import (
	"errors"
	"math"

	"AlphaLens/internal/model"
)

// AddADX augments the series with +DI, -DI and the Average Directional Index.
// All smoothing stages are plain rolling means over period bars (the same
// simplification as AddRSI). Directional moves at index 0 are undefined, so
// +DI/-DI carry NaN through index period-1 and ADX, a second smoothing of DX,
// is undefined through index 2*period-2.
func AddADX(s *model.IndicatorSeries, period int) error {
	if period <= 0 {
		return errors.New("period must be positive")
	}
	n := s.Len()

	plusDM := nanSlice(n)
	minusDM := nanSlice(n)
	for i := 1; i < n; i++ {
		up := s.Bars[i].High - s.Bars[i-1].High
		down := s.Bars[i-1].Low - s.Bars[i].Low
		plusDM[i] = math.Max(up, 0)
		minusDM[i] = math.Max(down, 0)
	}

	atr := rollingMean(trueRange(s.Bars), period)
	smoothPlus := rollingMean(plusDM, period)
	smoothMinus := rollingMean(minusDM, period)

	plusDI := nanSlice(n)
	minusDI := nanSlice(n)
	dx := nanSlice(n)
	for i := 0; i < n; i++ {
		plusDI[i] = 100 * smoothPlus[i] / atr[i]
		minusDI[i] = 100 * smoothMinus[i] / atr[i]
		dx[i] = 100 * math.Abs(plusDI[i]-minusDI[i]) / (plusDI[i] + minusDI[i])
	}

	s.PlusDI = plusDI
	s.MinusDI = minusDI
	s.ADX = rollingMean(dx, period)
	return nil
}
