package indicator

import "AlphaLens/internal/model"

// AddVWAP augments the series with the volume-weighted average price of the
// typical price (high+low+close)/3.
//
// The accumulation runs from the start of the whole fetched window and is
// never reset per calendar day, even though VWAP conventionally implies a
// daily reset. Downstream score thresholds were tuned against the cumulative
// form, so it is preserved as-is. Flagged for product clarification.
func AddVWAP(s *model.IndicatorSeries) error {
	n := s.Len()
	vwap := make([]float64, n)
	var cumPV, cumVol float64
	for i, b := range s.Bars {
		typical := (b.High + b.Low + b.Close) / 3
		cumPV += typical * float64(b.Volume)
		cumVol += float64(b.Volume)
		vwap[i] = cumPV / cumVol // 0/0 yields NaN when no volume has traded
	}
	s.VWAP = vwap
	return nil
}
