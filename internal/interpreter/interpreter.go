// Package interpreter flattens an analysis report into the primitive mapping
// consumed by the LLM verdict interpreter and builds the chat requests.
// Request construction is pure; only Interpret touches the network.
package interpreter

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"AlphaLens/internal/collector"
	"AlphaLens/internal/model"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = openai.GPT4oMini

// systemPrompt keeps the interpreter strictly on the provided facts; it must
// never recompute scores or override the action.
const systemPrompt = `You are an Equity Forensics Interpreter operating under the Supreme Equity Forensic Protocol (SEFP). You ONLY interpret the provided facts and produce a structured verdict. DO NOT compute indicators or scores. DO NOT infer missing information. DO NOT override the score or action. If data is missing, output 'INSUFFICIENT DATA — NO VERDICT'. Respond in concise, professional institutional style, ≤5 lines, with no emojis or storytelling. Output EXACTLY in this format:

Stock:
Forensic Verdict:
Trend Assessment:
Action:
Risk Note:`

// VerdictSummary is the flat primitive mapping handed to the interpreter.
// Nil ADX/RSI mean the indicator value is undefined, serialized as null.
type VerdictSummary struct {
	Stock             string   `json:"stock"`
	InsufficientData  bool     `json:"insufficient_data,omitempty"`
	MarketRegime      string   `json:"market_regime,omitempty"`
	TrendValid        bool     `json:"trend_valid"`
	ADX               *float64 `json:"adx"`
	RSI               *float64 `json:"rsi"`
	PriceVsVWAP       string   `json:"price_vs_vwap,omitempty"`
	VolumeConfirmed   bool     `json:"volume_confirmed"`
	WyckoffPhase      string   `json:"wyckoff_phase,omitempty"`
	DeliveryDeviation string   `json:"delivery_deviation,omitempty"`
	Score             int      `json:"score"`
	Action            string   `json:"action"`
}

// Summarize flattens a report into a VerdictSummary.
func Summarize(report *collector.Report) *VerdictSummary {
	stock := strings.TrimSuffix(report.Symbol, ".NS")
	s := report.Series
	if s == nil || s.Len() == 0 {
		return &VerdictSummary{Stock: stock, InsufficientData: true}
	}

	regime := "Bear"
	if s.LatestValue(model.ColSuperTrendDir) == 1 {
		regime = "Bull"
	}

	vwap := s.LatestValue(model.ColVWAP)
	priceVsVWAP := "below"
	if s.Latest().Close > vwap {
		priceVsVWAP = "above"
	}

	rsi := roundedValue(s, model.ColRSI)
	adx := roundedValue(s, model.ColADX)

	return &VerdictSummary{
		Stock:             stock,
		MarketRegime:      regime,
		TrendValid:        report.Analysis.TrendValid,
		ADX:               adx,
		RSI:               rsi,
		PriceVsVWAP:       priceVsVWAP,
		VolumeConfirmed:   report.Analysis.VolumeConfirmed,
		WyckoffPhase:      wyckoffPhase(report.Analysis.Momentum, rsi),
		DeliveryDeviation: deliveryDeviation(report),
		Score:             report.Verdict.Score,
		Action:            string(report.Verdict.Action),
	}
}

// roundedValue returns the latest column value rounded to one decimal, or
// nil when undefined.
func roundedValue(s *model.IndicatorSeries, col string) *float64 {
	v := s.LatestValue(col)
	if math.IsNaN(v) {
		return nil
	}
	r := math.Round(v*10) / 10
	return &r
}

// wyckoffPhase derives a coarse Wyckoff phase label from the momentum bucket
// and RSI level.
func wyckoffPhase(momentum model.Momentum, rsi *float64) string {
	switch {
	case momentum == model.MomentumBullish && rsi != nil && *rsi >= 45 && *rsi <= 60:
		return "Markup"
	case momentum == model.MomentumExhausted && rsi != nil && *rsi > 70:
		return "Distribution"
	case momentum == model.MomentumExhausted && rsi != nil && *rsi < 30:
		return "Markdown"
	default:
		return "Accumulation"
	}
}

// deliveryDeviation expresses how far the latest volume sits above the
// trailing 20-bar average, as a signed percentage. "N/A" when volume is not
// confirmed or the window is incomplete.
func deliveryDeviation(report *collector.Report) string {
	s := report.Series
	if !report.Analysis.VolumeConfirmed || s.Len() < 20 {
		return "N/A"
	}
	var sum float64
	bars := s.Bars[s.Len()-20:]
	for _, b := range bars {
		sum += float64(b.Volume)
	}
	avg := sum / 20
	if avg <= 0 {
		return "N/A"
	}
	deviation := (float64(s.Latest().Volume) - avg) / avg * 100
	return fmt.Sprintf("%+.0f%%", deviation)
}

// BuildRequest builds the strict SEFP interpretation request for a summary.
func BuildRequest(summary *VerdictSummary, chatModel string) (openai.ChatCompletionRequest, error) {
	if chatModel == "" {
		chatModel = DefaultModel
	}
	payload, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return openai.ChatCompletionRequest{}, fmt.Errorf("marshal summary: %w", err)
	}
	return openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Interpret the following stock analysis:\n```json\n%s\n```", payload)},
		},
		Temperature: 0,
		MaxTokens:   120,
	}, nil
}

// BuildFriendlyRequest builds a plain-language explanation request, folding
// in the broad-market context when available.
func BuildFriendlyRequest(report *collector.Report, marketCtx *model.MarketContext, chatModel string) (openai.ChatCompletionRequest, error) {
	if chatModel == "" {
		chatModel = DefaultModel
	}
	summary := Summarize(report)
	payload, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return openai.ChatCompletionRequest{}, fmt.Errorf("marshal summary: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Please explain this stock analysis in simple, easy-to-understand language:\n\n")
	fmt.Fprintf(&b, "Stock: %s\n", summary.Stock)
	fmt.Fprintf(&b, "Recommendation: %s (Score: %d/100)\n\n", summary.Action, summary.Score)
	fmt.Fprintf(&b, "Key Findings:\n")
	trendStatus := "Downtrend or Weak Trend"
	if summary.TrendValid {
		trendStatus = "Uptrend"
	}
	fmt.Fprintf(&b, "- Trend: %s\n", trendStatus)
	if summary.RSI != nil {
		fmt.Fprintf(&b, "- RSI Level: %.1f\n", *summary.RSI)
	} else {
		fmt.Fprintf(&b, "- RSI Level: N/A\n")
	}
	volumeStatus := "Normal volume"
	if summary.VolumeConfirmed {
		volumeStatus = "High volume (strong interest)"
	}
	fmt.Fprintf(&b, "- Volume: %s\n", volumeStatus)
	fmt.Fprintf(&b, "- Price Position: Trading %s average price (VWAP)\n", summary.PriceVsVWAP)
	fmt.Fprintf(&b, "- Market Regime: %s market\n", summary.MarketRegime)
	if marketCtx != nil {
		fmt.Fprintf(&b, "\nGlobal Market Context:\n")
		fmt.Fprintf(&b, "- NIFTY 50 Index Trend: %s\n", marketCtx.Trend)
		if !math.IsNaN(marketCtx.ChangePct) {
			fmt.Fprintf(&b, "- Market Change: %.2f%%\n", marketCtx.ChangePct)
		}
		fmt.Fprintf(&b, "- Overall Market Sentiment: %s\n", marketCtx.Sentiment)
	}
	fmt.Fprintf(&b, "\nTechnical Details:\n%s\n", payload)

	return openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a friendly financial advisor explaining stock analysis in simple, easy-to-understand language. Be conversational, clear, and avoid jargon. Keep it under 200 words."},
			{Role: openai.ChatMessageRoleUser, Content: b.String()},
		},
		Temperature: 0.7,
		MaxTokens:   400,
	}, nil
}

// Interpreter calls the chat API to render a verdict interpretation.
type Interpreter struct {
	client *openai.Client
	model  string
}

// New creates an Interpreter. An empty apiKey returns nil, meaning
// interpretation is disabled and callers should fall back to the templated
// reasoning text.
func New(apiKey, chatModel string) *Interpreter {
	if apiKey == "" {
		return nil
	}
	if chatModel == "" {
		chatModel = DefaultModel
	}
	return &Interpreter{client: openai.NewClient(apiKey), model: chatModel}
}

// Interpret sends the SEFP request for a report and returns the rendered
// interpretation, retrying with exponential backoff on transient failures.
func (in *Interpreter) Interpret(ctx context.Context, report *collector.Report, maxRetries int) (string, error) {
	req, err := BuildRequest(Summarize(report), in.model)
	if err != nil {
		return "", err
	}

	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		resp, err := in.client.CreateChatCompletion(ctx, req)
		if err == nil {
			if len(resp.Choices) == 0 {
				return "", fmt.Errorf("chat completion: empty response")
			}
			return resp.Choices[0].Message.Content, nil
		}
		lastErr = err
		backoff := time.Duration(1<<uint(i)) * time.Second
		log.Printf("[WARN] chat completion failed (attempt %d/%d): %v, retrying in %v", i+1, maxRetries+1, err, backoff)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
	}
	return "", fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}
