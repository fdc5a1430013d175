package model

// Momentum classifies the RSI-derived momentum state.
type Momentum string

const (
	MomentumBullish   Momentum = "bullish"
	MomentumNeutral   Momentum = "neutral"
	MomentumExhausted Momentum = "exhausted"
)

// Action is the final trading recommendation.
type Action string

const (
	ActionBuy   Action = "BUY"
	ActionWait  Action = "WAIT"
	ActionAvoid Action = "AVOID"
)

// AnalysisResult is the trend/momentum/volume classification of the latest bar.
// Notes preserve rule evaluation order: trend sub-checks, momentum, volume.
type AnalysisResult struct {
	TrendValid      bool
	Momentum        Momentum
	VolumeConfirmed bool
	Notes           []string
}

// VerdictResult is the scored verdict derived from an AnalysisResult.
type VerdictResult struct {
	Score     int // 0-100
	Action    Action
	Reasoning string
}
