package notifier

import (
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"FinDocSignal/internal/collector"
	"FinDocSignal/internal/model"
	"FinDocSignal/internal/recorder"
	"FinDocSignal/internal/sentiment"
)

var labelIcon = map[model.Label]string{
	model.LabelBuy:  "🟢",
	model.LabelHold: "🟡",
	model.LabelSell: "🔴",
}

func ma(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatAnalysis formats one symbol's analysis into a Telegram message.
func FormatAnalysis(a *model.Analysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", html.EscapeString(a.Symbol), a.GeneratedAt.Format("2006-01-02 15:04")))
	if !a.HasData {
		b.WriteString("No price data available.\n")
	} else {
		b.WriteString(fmt.Sprintf("Last close: %.2f (%s)\n", a.LastClose, a.LastDate.Format("2006-01-02")))
		b.WriteString(fmt.Sprintf("MA%d: %s | Trend slope: %+.4f\n", a.MAWindow, ma(a.LatestMA), a.TrendSlope))
		b.WriteString(fmt.Sprintf("RSI: %.1f | Range: %.2f ~ %.2f (%.0f%%)\n", a.RSI, a.RangeLow, a.RangeHigh, a.RangePos*100))
		b.WriteString(fmt.Sprintf("Price vs MA: %s %s\n", labelIcon[a.PriceSignal], a.PriceSignal))
	}

	if n := len(a.AnomalyDays); n > 0 {
		days := make([]string, n)
		for i, d := range a.AnomalyDays {
			days[i] = d.Format("2006-01-02")
		}
		b.WriteString(fmt.Sprintf("\n⚠️ Sharp drops: %s\n", strings.Join(days, ", ")))
	}

	b.WriteString("\n")
	if a.Sentiment != nil {
		b.WriteString(FormatSentiment(a.Sentiment))
	} else {
		b.WriteString("Sentiment: no documents\n")
	}

	b.WriteString(fmt.Sprintf("\n💡 <b>%s %s</b>: %s", labelIcon[a.Recommend.Label], a.Recommend.Label, html.EscapeString(a.Recommend.Rationale)))
	return b.String()
}

// FormatSentiment formats aggregated document sentiment.
func FormatSentiment(s *model.SentimentScores) string {
	if s == nil {
		return "Sentiment: no documents\n"
	}
	return fmt.Sprintf("Sentiment: +%d / ~%.1f / -%d (balance %+.2f)\n",
		s.Positive, s.Neutral, s.Negative, sentiment.Balance(s))
}

// FormatWatchlist summarizes a batch of analyses, one line per symbol.
func FormatWatchlist(results []collector.Result) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 <b>Watchlist</b> | %s\n\n", time.Now().Format("2006-01-02")))
	for _, r := range results {
		sym := html.EscapeString(r.Symbol)
		switch {
		case r.Err != nil:
			b.WriteString(fmt.Sprintf("❌ %s: %s\n", sym, html.EscapeString(r.Err.Error())))
		case !r.Analysis.HasData:
			b.WriteString(fmt.Sprintf("⚪ %s: no data\n", sym))
		default:
			a := r.Analysis
			b.WriteString(fmt.Sprintf("%s %s: %.2f | slope %+.3f | %s\n",
				labelIcon[a.Recommend.Label], sym, a.LastClose, a.TrendSlope, a.Recommend.Label))
		}
	}
	return b.String()
}

// FormatHistory formats stored analyses of a symbol, newest first.
func FormatHistory(symbol string, entries []recorder.Entry) string {
	if len(entries) == 0 {
		return fmt.Sprintf("No history for %s", html.EscapeString(symbol))
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗂 <b>%s history</b>\n\n", html.EscapeString(symbol)))
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("%s %s %.2f (MA %s) %s",
			e.Timestamp.Format("01-02 15:04"), labelIcon[e.Label], e.LastClose, ma(e.LatestMA), e.Label))
		if e.Anomalies > 0 {
			b.WriteString(fmt.Sprintf(" ⚠️%d", e.Anomalies))
		}
		b.WriteString("\n")
	}
	return b.String()
}
