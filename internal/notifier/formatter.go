package notifier

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"AlphaLens/internal/collector"
	"AlphaLens/internal/model"
)

// actionEmoji maps each action to its report marker.
func actionEmoji(action model.Action) string {
	switch action {
	case model.ActionBuy:
		return "🟢"
	case model.ActionWait:
		return "🟡"
	default:
		return "🔴"
	}
}

// fmtIndicator renders an indicator value or "N/A" when undefined.
func fmtIndicator(v float64) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatVerdictReport formats one symbol's verdict into a Telegram message.
func FormatVerdictReport(report *collector.Report) string {
	var b strings.Builder
	s := report.Series
	latest := s.Latest()

	b.WriteString(fmt.Sprintf("%s <b>%s</b> | %s\n\n", actionEmoji(report.Verdict.Action), report.Symbol, latest.Date.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Close: %.2f | Volume: %s\n", latest.Close, humanize.Comma(latest.Volume)))
	b.WriteString(fmt.Sprintf("RSI(14): %s | ADX(14): %s\n", fmtIndicator(s.LatestValue(model.ColRSI)), fmtIndicator(s.LatestValue(model.ColADX))))
	b.WriteString(fmt.Sprintf("VWAP: %s | SuperTrend: %s\n\n", fmtIndicator(s.LatestValue(model.ColVWAP)), fmtIndicator(s.LatestValue(model.ColSuperTrend))))

	b.WriteString(fmt.Sprintf("<b>Score: %d/100 → %s</b>\n", report.Verdict.Score, report.Verdict.Action))
	b.WriteString(fmt.Sprintf("Momentum: %s\n\n", report.Analysis.Momentum))

	b.WriteString("<b>Notes:</b>\n")
	for _, note := range report.Analysis.Notes {
		b.WriteString(fmt.Sprintf("  • %s\n", note))
	}

	b.WriteString("\n")
	b.WriteString(report.Verdict.Reasoning)
	b.WriteString("\n")
	return b.String()
}

// FormatMarketContext formats the broad-market backdrop for display.
func FormatMarketContext(ctx *model.MarketContext) string {
	var b strings.Builder
	b.WriteString("🌐 <b>Market Context (NIFTY 50)</b>\n\n")
	b.WriteString(fmt.Sprintf("Trend: %s\n", ctx.Trend))
	if !math.IsNaN(ctx.ChangePct) {
		b.WriteString(fmt.Sprintf("Change: %+.2f%%\n", ctx.ChangePct))
	} else {
		b.WriteString("Change: N/A\n")
	}
	if ctx.Level > 0 {
		b.WriteString(fmt.Sprintf("Level: %.2f\n", ctx.Level))
	}
	b.WriteString(fmt.Sprintf("Sentiment: %s\n", ctx.Sentiment))
	return b.String()
}

// FormatScanSummary formats the outcome of a universe scan: one line per
// symbol, BUY candidates first.
func FormatScanSummary(runID string, reports []*collector.Report, failures map[string]error) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Daily Scan</b> | %s\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Run: %s\n\n", runID))

	byAction := map[model.Action][]*collector.Report{}
	for _, r := range reports {
		byAction[r.Verdict.Action] = append(byAction[r.Verdict.Action], r)
	}
	for _, action := range []model.Action{model.ActionBuy, model.ActionWait, model.ActionAvoid} {
		group := byAction[action]
		if len(group) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("%s <b>%s</b> (%d)\n", actionEmoji(action), action, len(group)))
		for _, r := range group {
			b.WriteString(fmt.Sprintf("  %s — %d/100\n", r.Symbol, r.Verdict.Score))
		}
		b.WriteString("\n")
	}

	if len(failures) > 0 {
		b.WriteString(fmt.Sprintf("⚠️ %d symbol(s) failed:\n", len(failures)))
		for symbol, err := range failures {
			b.WriteString(fmt.Sprintf("  %s — %v\n", symbol, err))
		}
	}
	return b.String()
}
