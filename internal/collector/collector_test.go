package collector

import (
	"errors"
	"testing"

	"AlphaLens/internal/model"
)

func TestFetchSeries_InsufficientHistory(t *testing.T) {
	c := NewCollector(&MockFetcher{DailyData: GenerateMockBars(100, 40)})
	_, err := c.FetchSeries("RELIANCE.NS")
	if err == nil {
		t.Fatal("expected error for short history")
	}
	if !errors.Is(err, ErrInsufficientHistory) {
		t.Errorf("error = %v, want ErrInsufficientHistory", err)
	}
}

func TestFetchSeries_EmptyData(t *testing.T) {
	c := NewCollector(&MockFetcher{DailyData: []model.PriceBar{}})
	_, err := c.FetchSeries("RELIANCE.NS")
	if err == nil {
		t.Fatal("expected error for empty data")
	}
	if errors.Is(err, ErrInsufficientHistory) {
		t.Errorf("empty data should not report insufficient history: %v", err)
	}
}

func TestAnalyze_FullPipeline(t *testing.T) {
	c := NewCollector(&MockFetcher{Price: 2500})
	report, err := c.Analyze("RELIANCE.NS")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.Symbol != "RELIANCE.NS" {
		t.Errorf("symbol = %q, want RELIANCE.NS", report.Symbol)
	}

	// Every indicator column must come out of the pipeline.
	required := []string{
		model.ColEMA, model.ColRSI, model.ColADX, model.ColVWAP,
		model.ColBBUpper, model.ColBBMiddle, model.ColBBLower,
		model.ColSuperTrend, model.ColSuperTrendDir,
	}
	if missing := report.Series.MissingColumns(required...); len(missing) > 0 {
		t.Errorf("missing columns after pipeline: %v", missing)
	}

	if report.Analysis == nil || report.Verdict == nil {
		t.Fatal("report must carry analysis and verdict")
	}
	if len(report.Analysis.Notes) == 0 {
		t.Error("analysis notes must not be empty")
	}
	if report.Verdict.Score < 0 || report.Verdict.Score > 100 {
		t.Errorf("score = %d, want within [0,100]", report.Verdict.Score)
	}
	switch report.Verdict.Action {
	case model.ActionBuy, model.ActionWait, model.ActionAvoid:
	default:
		t.Errorf("unexpected action %q", report.Verdict.Action)
	}
	if report.Verdict.Reasoning == "" {
		t.Error("reasoning must not be empty")
	}
}

func TestAnalyzeSeries_Deterministic(t *testing.T) {
	bars := GenerateMockBars(1800, 200)
	ps := &model.PriceSeries{Symbol: "TCS.NS", Bars: bars}

	first, err := AnalyzeSeries(ps)
	if err != nil {
		t.Fatalf("AnalyzeSeries: %v", err)
	}
	second, err := AnalyzeSeries(ps)
	if err != nil {
		t.Fatalf("AnalyzeSeries: %v", err)
	}
	if first.Verdict.Score != second.Verdict.Score {
		t.Errorf("scores differ across runs: %d vs %d", first.Verdict.Score, second.Verdict.Score)
	}
	if first.Verdict.Reasoning != second.Verdict.Reasoning {
		t.Error("reasoning differs across runs")
	}
	if len(first.Analysis.Notes) != len(second.Analysis.Notes) {
		t.Error("note counts differ across runs")
	}
}
