package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"

	"AlphaLens/internal/model"
)

// RestFetcher implements Fetcher against a self-hosted bars REST API,
// used when a Yahoo-independent data source is configured.
type RestFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRestFetcher creates a new fetcher with optional proxy support.
func NewRestFetcher(baseURL, apiKey, proxyURL string) *RestFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &RestFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *RestFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape from the bars API.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
}

func (f *RestFetcher) FetchDailyBars(symbol string, days int) ([]model.PriceBar, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&limit=%d", f.BaseURL, url.QueryEscape(symbol), days)
	return f.fetchBars(endpoint)
}

// FetchMarketContext uses the daily endpoint for the index symbol; the bars
// API has no separate quote surface. Failures degrade to an Unknown context.
func (f *RestFetcher) FetchMarketContext() (*model.MarketContext, error) {
	unknown := &model.MarketContext{
		Trend:     "Unknown",
		ChangePct: math.NaN(),
		Sentiment: "Neutral",
	}

	bars, err := f.FetchDailyBars(marketIndexSymbol, 5)
	if err != nil || len(bars) < 2 {
		return unknown, nil
	}

	latest := bars[len(bars)-1]
	previous := bars[len(bars)-2]
	if previous.Close == 0 {
		return unknown, nil
	}
	change := (latest.Close - previous.Close) / previous.Close * 100

	ctx := &model.MarketContext{
		ChangePct: change,
		Level:     latest.Close,
	}
	switch {
	case change > 0.5:
		ctx.Trend = "Bullish"
		ctx.Sentiment = "Positive"
	case change < -0.5:
		ctx.Trend = "Bearish"
		ctx.Sentiment = "Negative"
	default:
		ctx.Trend = "Neutral"
		ctx.Sentiment = "Neutral"
	}
	return ctx, nil
}

func (f *RestFetcher) fetchBars(endpoint string) ([]model.PriceBar, error) {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode, string(body))
	}
	var raw []restBar
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	bars := make([]model.PriceBar, len(raw))
	for i, rb := range raw {
		bars[i] = model.PriceBar{
			Date:   time.Unix(rb.Timestamp, 0),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: rb.Volume,
		}
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}
