package analyzer

import (
	"math"
	"testing"
	"time"

	"AlphaLens/internal/model"
)

// augmentedSeries builds an n-bar series with every required column present
// and the latest-bar indicator values set explicitly. Earlier positions get
// the same constants; the analyzer only reads the latest bar and the trailing
// volume window, so that is all a scenario needs to control.
func augmentedSeries(n int, close, vwap, adx, rsi, dir float64, baseVolume, latestVolume int64) *model.IndicatorSeries {
	bars := make([]model.PriceBar, n)
	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		vol := baseVolume
		if i == n-1 {
			vol = latestVolume
		}
		bars[i] = model.PriceBar{
			Date:   day.AddDate(0, 0, i),
			Open:   close,
			High:   close + 1,
			Low:    close - 1,
			Close:  close,
			Volume: vol,
		}
	}

	fill := func(v float64) []float64 {
		col := make([]float64, n)
		for i := range col {
			col[i] = v
		}
		return col
	}
	return &model.IndicatorSeries{
		Symbol:        "TEST.NS",
		Bars:          bars,
		EMA:           fill(close),
		RSI:           fill(rsi),
		PlusDI:        fill(25),
		MinusDI:       fill(10),
		ADX:           fill(adx),
		VWAP:          fill(vwap),
		BBUpper:       fill(close + 5),
		BBMiddle:      fill(close),
		BBLower:       fill(close - 5),
		SuperTrend:    fill(close - 3),
		SuperTrendDir: fill(dir),
	}
}

func TestAnalyze_EmptySeries(t *testing.T) {
	res := Analyze(&model.IndicatorSeries{Symbol: "TEST.NS"})
	if res.TrendValid || res.VolumeConfirmed {
		t.Error("empty series must not validate trend or volume")
	}
	if res.Momentum != model.MomentumNeutral {
		t.Errorf("momentum = %q, want neutral", res.Momentum)
	}
	if len(res.Notes) != 1 || res.Notes[0] != "No data available" {
		t.Errorf("notes = %v, want single no-data note", res.Notes)
	}
}

func TestAnalyze_MissingColumns(t *testing.T) {
	s := augmentedSeries(30, 110, 105, 28, 50, 1, 1_000_000, 1_000_000)
	s.ADX = nil
	s.RSI = nil
	res := Analyze(s)
	if res.TrendValid {
		t.Error("missing columns must not validate trend")
	}
	want := "Missing required columns: ADX_14, RSI_14"
	if len(res.Notes) != 1 || res.Notes[0] != want {
		t.Errorf("notes = %v, want [%q]", res.Notes, want)
	}
}

func TestAnalyze_BullishSetup(t *testing.T) {
	s := augmentedSeries(30, 110, 105, 28, 50, 1, 1_000_000, 4_000_000)
	res := Analyze(s)
	if !res.TrendValid {
		t.Error("expected valid trend")
	}
	if res.Momentum != model.MomentumBullish {
		t.Errorf("momentum = %q, want bullish", res.Momentum)
	}
	if !res.VolumeConfirmed {
		t.Error("expected confirmed volume")
	}
	want := []string{
		"Trend is valid",
		"RSI in accumulation zone: 50.00",
		"Volume confirmed: 4,000,000 > 1.5x avg (1,150,000)",
	}
	if len(res.Notes) != len(want) {
		t.Fatalf("notes = %v, want %v", res.Notes, want)
	}
	for i := range want {
		if res.Notes[i] != want[i] {
			t.Errorf("notes[%d] = %q, want %q", i, res.Notes[i], want[i])
		}
	}
}

func TestAnalyze_BearishSetup(t *testing.T) {
	s := augmentedSeries(30, 100, 105, 15, 80, -1, 1_000_000, 1_000_000)
	res := Analyze(s)
	if res.TrendValid {
		t.Error("expected invalid trend")
	}
	if res.Momentum != model.MomentumExhausted {
		t.Errorf("momentum = %q, want exhausted", res.Momentum)
	}
	if res.VolumeConfirmed {
		t.Error("expected unconfirmed volume")
	}
	want := []string{
		"SuperTrend is red (downtrend)",
		"ADX below 20 (weak trend): 15.00",
		"Close below VWAP",
		"RSI overbought (exhaustion): 80.00",
		"Volume not confirmed: 1,000,000 <= 1.5x avg (1,000,000)",
	}
	if len(res.Notes) != len(want) {
		t.Fatalf("notes = %v, want %v", res.Notes, want)
	}
	for i := range want {
		if res.Notes[i] != want[i] {
			t.Errorf("notes[%d] = %q, want %q", i, res.Notes[i], want[i])
		}
	}
}

func TestAnalyze_MomentumBuckets(t *testing.T) {
	tests := []struct {
		rsi      float64
		momentum model.Momentum
		note     string
	}{
		{45, model.MomentumBullish, "RSI in accumulation zone: 45.00"},
		{60, model.MomentumBullish, "RSI in accumulation zone: 60.00"},
		{70, model.MomentumNeutral, "RSI neutral: 70.00"},
		{70.5, model.MomentumExhausted, "RSI overbought (exhaustion): 70.50"},
		{30, model.MomentumNeutral, "RSI neutral: 30.00"},
		{29.9, model.MomentumExhausted, "RSI oversold (exhaustion): 29.90"},
		{44.9, model.MomentumNeutral, "RSI neutral: 44.90"},
		{math.NaN(), model.MomentumNeutral, "RSI data unavailable"},
	}
	for _, tt := range tests {
		s := augmentedSeries(30, 110, 105, 28, tt.rsi, 1, 1_000_000, 1_000_000)
		res := Analyze(s)
		if res.Momentum != tt.momentum {
			t.Errorf("RSI %v: momentum = %q, want %q", tt.rsi, res.Momentum, tt.momentum)
		}
		found := false
		for _, n := range res.Notes {
			if n == tt.note {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("RSI %v: notes = %v, missing %q", tt.rsi, res.Notes, tt.note)
		}
	}
}

func TestAnalyze_UndefinedIndicatorsFailChecks(t *testing.T) {
	// NaN values are present columns whose comparisons all fail.
	s := augmentedSeries(30, 110, math.NaN(), math.NaN(), 50, 1, 1_000_000, 1_000_000)
	res := Analyze(s)
	if res.TrendValid {
		t.Error("undefined ADX and VWAP must not validate trend")
	}
	want := []string{
		"ADX below 20 (weak trend): NaN",
		"Close below VWAP",
	}
	for i := range want {
		if res.Notes[i] != want[i] {
			t.Errorf("notes[%d] = %q, want %q", i, res.Notes[i], want[i])
		}
	}
}

func TestAnalyze_ShortSeriesSkipsVolume(t *testing.T) {
	s := augmentedSeries(10, 110, 105, 28, 50, 1, 1_000_000, 9_000_000)
	res := Analyze(s)
	if res.VolumeConfirmed {
		t.Error("volume must never confirm with fewer than 20 bars")
	}
	want := "Insufficient data for volume confirmation (need 20 days)"
	last := res.Notes[len(res.Notes)-1]
	if last != want {
		t.Errorf("last note = %q, want %q", last, want)
	}
}
