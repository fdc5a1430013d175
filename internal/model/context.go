package model

// MarketContext holds the broad-market backdrop (NIFTY 50 index) used when
// framing a verdict for interpretation. Values degrade to "Unknown"/"Neutral"
// when the index fetch fails; a context is never required for scoring.
type MarketContext struct {
	Trend     string  // "Bullish", "Bearish", "Neutral", or "Unknown"
	ChangePct float64 // day-over-day change; NaN when unknown
	Level     float64 // latest index close; 0 when unknown
	Sentiment string  // "Positive", "Negative", or "Neutral"
}
