// Package analyzer classifies the trend, momentum, and volume state of the
// latest bar in a fully indicator-augmented series.
package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"AlphaLens/internal/model"
)

// requiredColumns lists the columns Analyze needs, in reporting order.
var requiredColumns = []string{
	model.ColSuperTrend,
	model.ColSuperTrendDir,
	model.ColADX,
	model.ColVWAP,
	model.ColClose,
	model.ColRSI,
	model.ColVolume,
}

// volumeWindow is the trailing window (inclusive of the latest bar) used for
// volume confirmation.
const volumeWindow = 20

// Analyze evaluates the rule set against the latest bar of the series.
//
// Rules, in note order:
//   - trend valid: SuperTrend direction +1 AND ADX > 20 AND close > VWAP
//   - momentum: RSI 45-60 bullish, >70 or <30 exhausted, otherwise neutral
//   - volume confirmed: latest volume > 1.5x the trailing 20-bar average
//
// Missing columns and empty input produce a degraded result, never an error:
// downstream consumers always receive a well-formed classification.
func Analyze(s *model.IndicatorSeries) *model.AnalysisResult {
	if s == nil || s.Len() == 0 {
		return &model.AnalysisResult{
			TrendValid:      false,
			Momentum:        model.MomentumNeutral,
			VolumeConfirmed: false,
			Notes:           []string{"No data available"},
		}
	}

	if missing := s.MissingColumns(requiredColumns...); len(missing) > 0 {
		return &model.AnalysisResult{
			TrendValid:      false,
			Momentum:        model.MomentumNeutral,
			VolumeConfirmed: false,
			Notes:           []string{fmt.Sprintf("Missing required columns: %s", strings.Join(missing, ", "))},
		}
	}

	latest := s.Latest()
	var notes []string

	// 1. Trend validity. NaN comparisons are false, so an undefined ADX or
	// VWAP fails its sub-check rather than crashing.
	adx := s.LatestValue(model.ColADX)
	vwap := s.LatestValue(model.ColVWAP)
	superTrendGreen := s.LatestValue(model.ColSuperTrendDir) == 1
	adxAboveThreshold := adx > 20
	closeAboveVWAP := latest.Close > vwap

	trendValid := superTrendGreen && adxAboveThreshold && closeAboveVWAP

	if !superTrendGreen {
		notes = append(notes, "SuperTrend is red (downtrend)")
	}
	if !adxAboveThreshold {
		notes = append(notes, fmt.Sprintf("ADX below 20 (weak trend): %.2f", adx))
	}
	if !closeAboveVWAP {
		notes = append(notes, "Close below VWAP")
	}
	if trendValid {
		notes = append(notes, "Trend is valid")
	}

	// 2. Momentum from RSI.
	rsi := s.LatestValue(model.ColRSI)
	var momentum model.Momentum
	switch {
	case math.IsNaN(rsi):
		momentum = model.MomentumNeutral
		notes = append(notes, "RSI data unavailable")
	case rsi >= 45 && rsi <= 60:
		momentum = model.MomentumBullish
		notes = append(notes, fmt.Sprintf("RSI in accumulation zone: %.2f", rsi))
	case rsi > 70:
		momentum = model.MomentumExhausted
		notes = append(notes, fmt.Sprintf("RSI overbought (exhaustion): %.2f", rsi))
	case rsi < 30:
		momentum = model.MomentumExhausted
		notes = append(notes, fmt.Sprintf("RSI oversold (exhaustion): %.2f", rsi))
	default:
		momentum = model.MomentumNeutral
		notes = append(notes, fmt.Sprintf("RSI neutral: %.2f", rsi))
	}

	// 3. Volume confirmation. Requires a full 20-bar window; never compared
	// against a partial average.
	volumeConfirmed := false
	if s.Len() >= volumeWindow {
		avg := trailingVolumeAverage(s.Bars, volumeWindow)
		volumeConfirmed = float64(latest.Volume) > 1.5*avg
		latestStr := humanize.Comma(latest.Volume)
		avgStr := humanize.Comma(int64(math.Round(avg)))
		if volumeConfirmed {
			notes = append(notes, fmt.Sprintf("Volume confirmed: %s > 1.5x avg (%s)", latestStr, avgStr))
		} else {
			notes = append(notes, fmt.Sprintf("Volume not confirmed: %s <= 1.5x avg (%s)", latestStr, avgStr))
		}
	} else {
		notes = append(notes, "Insufficient data for volume confirmation (need 20 days)")
	}

	return &model.AnalysisResult{
		TrendValid:      trendValid,
		Momentum:        momentum,
		VolumeConfirmed: volumeConfirmed,
		Notes:           notes,
	}
}

// trailingVolumeAverage computes the mean volume over the last window bars,
// inclusive of the latest. Callers guarantee len(bars) >= window.
func trailingVolumeAverage(bars []model.PriceBar, window int) float64 {
	var sum float64
	for _, b := range bars[len(bars)-window:] {
		sum += float64(b.Volume)
	}
	return sum / float64(window)
}
