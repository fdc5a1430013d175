package indicator

import (
	"errors"

	"AlphaLens/internal/model"
)

// AddEMA augments the series with an exponential moving average of the close.
// Smoothing factor is 2/(period+1), seeded with the first close, so the
// column is defined from index 0 with no warm-up gap.
func AddEMA(s *model.IndicatorSeries, period int) error {
	if period <= 0 {
		return errors.New("period must be positive")
	}
	n := s.Len()
	ema := make([]float64, n)
	if n == 0 {
		s.EMA = ema
		return nil
	}

	alpha := 2.0 / float64(period+1)
	ema[0] = s.Bars[0].Close
	for i := 1; i < n; i++ {
		ema[i] = alpha*s.Bars[i].Close + (1-alpha)*ema[i-1]
	}
	s.EMA = ema
	return nil
}
