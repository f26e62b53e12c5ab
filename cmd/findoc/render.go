package main

import (
	"fmt"
	"math"
	"strings"

	"FinDocSignal/internal/calculator"
	"FinDocSignal/internal/model"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED"))

	panelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(0, 1).
		Width(72)

	answerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#10B981")).
		Padding(0, 1).
		Width(80)

	buyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	holdStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	sellStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

func labelStyle(l model.Label) lipgloss.Style {
	switch l {
	case model.LabelBuy:
		return buyStyle
	case model.LabelSell:
		return sellStyle
	default:
		return holdStyle
	}
}

func fmtMA(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

func renderAnalysis(a *model.Analysis, withSeries bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  (%s)", a.Symbol, a.Source)))
	b.WriteString("\n")

	if !a.HasData {
		b.WriteString(mutedStyle.Render("no price data"))
		b.WriteString("\n")
	} else {
		fmt.Fprintf(&b, "Points      %d  (%s → %s)\n", a.Points, a.FirstDate.Format("2006-01-02"), a.LastDate.Format("2006-01-02"))
		fmt.Fprintf(&b, "Last close  %.2f\n", a.LastClose)
		fmt.Fprintf(&b, "MA%-2d        %s  %s\n", a.MAWindow, fmtMA(a.LatestMA), labelStyle(a.PriceSignal).Render(string(a.PriceSignal)))
		fmt.Fprintf(&b, "Trend slope %+.4f\n", a.TrendSlope)
		fmt.Fprintf(&b, "RSI(14)     %.1f\n", a.RSI)
		fmt.Fprintf(&b, "Range       %.2f ~ %.2f  (%.0f%%)\n", a.RangeLow, a.RangeHigh, a.RangePos*100)
	}
	if len(a.AnomalyDays) > 0 {
		days := make([]string, len(a.AnomalyDays))
		for i, d := range a.AnomalyDays {
			days[i] = d.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "Sharp drops %s\n", sellStyle.Render(strings.Join(days, ", ")))
	}
	if s := a.Sentiment; s != nil {
		fmt.Fprintf(&b, "Sentiment   +%d / ~%.1f / -%d\n", s.Positive, s.Neutral, s.Negative)
	} else {
		b.WriteString(mutedStyle.Render("Sentiment   no documents"))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n%s  %s", labelStyle(a.Recommend.Label).Render(string(a.Recommend.Label)), a.Recommend.Rationale)

	if withSeries && len(a.Chart) > 0 {
		b.WriteString("\n\n")
		offset := len(a.MovingAvg) - len(a.Chart)
		for i, p := range a.Chart {
			ma := math.NaN()
			if j := offset + i; j >= 0 && j < len(a.MovingAvg) {
				ma = a.MovingAvg[j]
			}
			line := fmt.Sprintf("%s  %10.2f", p.Date.Format("2006-01-02"), p.Close)
			if calculator.HasValue(ma) {
				line += fmt.Sprintf("  %10.2f", ma)
			}
			b.WriteString(mutedStyle.Render(line))
			b.WriteString("\n")
		}
	}
	return panelStyle.Render(b.String())
}
