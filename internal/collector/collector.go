package collector

import (
	"errors"
	"fmt"
	"time"

	"AlphaLens/internal/analyzer"
	"AlphaLens/internal/indicator"
	"AlphaLens/internal/model"
	"AlphaLens/internal/verdict"
)

// fetchDays is the approximate calendar span requested from the data source,
// sized so that weekends and holidays still leave at least MinBars trading days.
const fetchDays = 400

// ErrInsufficientHistory indicates the data source returned fewer than the
// minimum number of daily bars required for analysis.
var ErrInsufficientHistory = errors.New("insufficient trading history")

// Report bundles the full output of one analysis request.
type Report struct {
	Symbol   string
	Series   *model.IndicatorSeries
	Analysis *model.AnalysisResult
	Verdict  *model.VerdictResult
}

// Collector orchestrates data fetching and the analysis pipeline.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// FetchSeries fetches and validates the daily price series for a symbol.
func (c *Collector) FetchSeries(symbol string) (*model.PriceSeries, error) {
	bars, err := c.Fetcher.FetchDailyBars(symbol, fetchDays)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no data available for symbol %s", symbol)
	}
	if len(bars) < model.MinBars {
		return nil, fmt.Errorf("%w for symbol %s: expected at least %d rows, got %d",
			ErrInsufficientHistory, symbol, model.MinBars, len(bars))
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Bars:      bars,
		FetchedAt: time.Now(),
	}, nil
}

// Analyze runs the full pipeline for one symbol: fetch, indicators,
// classification, verdict. The stages after fetching are pure functions;
// repeated calls for the same data yield identical reports.
func (c *Collector) Analyze(symbol string) (*Report, error) {
	ps, err := c.FetchSeries(symbol)
	if err != nil {
		return nil, err
	}
	return AnalyzeSeries(ps)
}

// AnalyzeSeries runs the indicator, analyzer, and verdict stages over an
// already-fetched price series.
func AnalyzeSeries(ps *model.PriceSeries) (*Report, error) {
	series := model.NewIndicatorSeries(ps)
	if err := indicator.AddAll(series); err != nil {
		return nil, fmt.Errorf("compute indicators for %s: %w", ps.Symbol, err)
	}

	analysis := analyzer.Analyze(series)
	result := verdict.Calculate(analysis, series)

	return &Report{
		Symbol:   ps.Symbol,
		Series:   series,
		Analysis: analysis,
		Verdict:  result,
	}, nil
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	DailyData []model.PriceBar
	Context   *model.MarketContext
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ string, days int) ([]model.PriceBar, error) {
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return GenerateMockBars(m.Price, days), nil
}

func (m *MockFetcher) FetchMarketContext() (*model.MarketContext, error) {
	if m.Context != nil {
		return m.Context, nil
	}
	return &model.MarketContext{Trend: "Neutral", Sentiment: "Neutral"}, nil
}

// GenerateMockBars builds a gently trending synthetic series around basePrice.
func GenerateMockBars(basePrice float64, count int) []model.PriceBar {
	bars := make([]model.PriceBar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PriceBar{
			Date:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
