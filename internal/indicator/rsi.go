package indicator

import (
	"errors"

	"AlphaLens/internal/model"
)

// AddRSI augments the series with a simplified Relative Strength Index.
// Average gain/loss use a plain rolling mean over period bars, NOT Wilder's
// exponential smoothing; this variant is the numeric contract and must not
// be "corrected" to the textbook formula.
//
// The first bar has no delta; both its gain and loss count as zero, so the
// column is defined from index period-1. A window with zero average loss
// saturates RSI at 100; zero gain and zero loss leave it NaN.
func AddRSI(s *model.IndicatorSeries, period int) error {
	if period <= 0 {
		return errors.New("period must be positive")
	}
	n := s.Len()
	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		delta := s.Bars[i].Close - s.Bars[i-1].Close
		if delta > 0 {
			gains[i] = delta
		} else if delta < 0 {
			losses[i] = -delta
		}
	}

	avgGain := rollingMean(gains, period)
	avgLoss := rollingMean(losses, period)

	rsi := nanSlice(n)
	for i := range rsi {
		// avgGain/avgLoss follows IEEE semantics: x/0 is +Inf (RSI 100),
		// 0/0 is NaN (undefined), NaN propagates.
		rs := avgGain[i] / avgLoss[i]
		rsi[i] = 100 - 100/(1+rs)
	}
	s.RSI = rsi
	return nil
}
