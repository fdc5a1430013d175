// Package indicator computes technical indicator columns from daily OHLCV
// bars. Each Add function is a pure function of the raw bars: it reads only
// the original OHLCV fields, never another indicator's output, and calling
// it twice yields bit-identical columns. Positions where a rolling window
// has insufficient history hold NaN, never zero.
package indicator

import "AlphaLens/internal/model"

// Default periods used across the analysis pipeline. The analyzer and
// verdict thresholds assume these values.
const (
	DefaultEMAPeriod        = 20
	DefaultRSIPeriod        = 14
	DefaultADXPeriod        = 14
	DefaultBBPeriod         = 20
	DefaultBBStdDev         = 2.0
	DefaultSuperTrendPeriod = 10
	DefaultSuperTrendMult   = 3.0
)

// AddAll computes every indicator column with the default parameters.
func AddAll(s *model.IndicatorSeries) error {
	if err := AddEMA(s, DefaultEMAPeriod); err != nil {
		return err
	}
	if err := AddRSI(s, DefaultRSIPeriod); err != nil {
		return err
	}
	if err := AddADX(s, DefaultADXPeriod); err != nil {
		return err
	}
	if err := AddVWAP(s); err != nil {
		return err
	}
	if err := AddBollingerBands(s, DefaultBBPeriod, DefaultBBStdDev); err != nil {
		return err
	}
	return AddSuperTrend(s, DefaultSuperTrendPeriod, DefaultSuperTrendMult)
}
