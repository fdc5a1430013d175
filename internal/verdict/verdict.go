// Package verdict maps an analysis classification and the latest indicator
// values to a 0-100 score, a BUY/WAIT/AVOID action, and a templated
// three-sentence rationale.
package verdict

import (
	"fmt"
	"math"
	"strings"

	"AlphaLens/internal/model"
)

// requiredColumns lists the columns Calculate reads directly, in reporting order.
var requiredColumns = []string{
	model.ColADX,
	model.ColVWAP,
	model.ColClose,
	model.ColRSI,
}

// Score thresholds for the action mapping. 75 is BUY, 45 is WAIT, 44 is AVOID.
const (
	buyThreshold  = 75
	waitThreshold = 45
)

// Calculate scores the latest bar against the analysis result.
//
// Points are additive and evaluated in a fixed order:
// trend valid +30, volume confirmed +20, RSI 45-60 +20, close above VWAP +15,
// ADX above 25 +15. An undefined RSI or ADX scores zero for its rule.
// Degraded inputs (empty series, missing columns) yield score 0 / AVOID with
// a descriptive reasoning string, never an error.
func Calculate(analysis *model.AnalysisResult, s *model.IndicatorSeries) *model.VerdictResult {
	if s == nil || s.Len() == 0 {
		return &model.VerdictResult{
			Score:     0,
			Action:    model.ActionAvoid,
			Reasoning: "No data available for analysis. Cannot provide a verdict.",
		}
	}

	if missing := s.MissingColumns(requiredColumns...); len(missing) > 0 {
		return &model.VerdictResult{
			Score:     0,
			Action:    model.ActionAvoid,
			Reasoning: fmt.Sprintf("Missing required indicator data: %s. Cannot calculate score.", strings.Join(missing, ", ")),
		}
	}

	latest := s.Latest()
	score := 0
	var details []string

	if analysis != nil && analysis.TrendValid {
		score += 30
		details = append(details, "Trend valid (+30)")
	}

	if analysis != nil && analysis.VolumeConfirmed {
		score += 20
		details = append(details, "Volume confirmed (+20)")
	}

	rsi := s.LatestValue(model.ColRSI)
	if !math.IsNaN(rsi) && rsi >= 45 && rsi <= 60 {
		score += 20
		details = append(details, "RSI in accumulation zone (+20)")
	}

	if latest.Close > s.LatestValue(model.ColVWAP) {
		score += 15
		details = append(details, "Price above VWAP (+15)")
	}

	adx := s.LatestValue(model.ColADX)
	if !math.IsNaN(adx) && adx > 25 {
		score += 15
		details = append(details, "Strong trend strength, ADX > 25 (+15)")
	}

	action := actionForScore(score)

	return &model.VerdictResult{
		Score:     score,
		Action:    action,
		Reasoning: buildReasoning(score, action, details),
	}
}

func actionForScore(score int) model.Action {
	switch {
	case score >= buyThreshold:
		return model.ActionBuy
	case score >= waitThreshold:
		return model.ActionWait
	default:
		return model.ActionAvoid
	}
}

// buildReasoning assembles exactly three sentences: an action-keyed overall
// assessment, a key-factors sentence listing the first two scoring reasons
// in rule order, and an action-keyed recommendation. The literal wording is
// a contract with downstream text rendering.
func buildReasoning(score int, action model.Action, details []string) string {
	parts := make([]string, 0, 3)

	switch action {
	case model.ActionBuy:
		parts = append(parts, fmt.Sprintf("Strong buy signal with score of %d/100.", score))
	case model.ActionWait:
		parts = append(parts, fmt.Sprintf("Moderate conditions with score of %d/100.", score))
	default:
		parts = append(parts, fmt.Sprintf("Weak conditions with score of %d/100.", score))
	}

	if len(details) > 0 {
		keyFactors := details
		if len(keyFactors) > 2 {
			keyFactors = keyFactors[:2]
		}
		parts = append(parts, fmt.Sprintf("Key factors: %s.", strings.Join(keyFactors, ", ")))
	} else {
		parts = append(parts, "No positive scoring factors identified.")
	}

	switch action {
	case model.ActionBuy:
		parts = append(parts, "Recommendation: Consider entering position with proper risk management.")
	case model.ActionWait:
		parts = append(parts, "Recommendation: Monitor for improved conditions before entry.")
	default:
		parts = append(parts, "Recommendation: Avoid entry until conditions improve.")
	}

	return strings.Join(parts, " ")
}
