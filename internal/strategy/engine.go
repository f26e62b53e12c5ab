package strategy

import (
	"math"

	"FinDocSignal/internal/model"
	"FinDocSignal/internal/sentiment"
)

// SentimentThreshold is the balance a trend needs from sentiment before it counts.
const SentimentThreshold = 0.15

// Rationales shown next to each label.
const (
	RationaleBuy  = "uptrend with supportive sentiment"
	RationaleSell = "downtrend with negative tone"
	RationaleHold = "mixed signals, wait for confirmation"
)

// Rules is the decision table, evaluated top to bottom. First match wins.
var Rules = []struct {
	Match func(slope, balance float64) bool
	Rec   model.Recommendation
}{
	{
		Match: func(slope, balance float64) bool { return slope > 0 && balance > SentimentThreshold },
		Rec:   model.Recommendation{Label: model.LabelBuy, Rationale: RationaleBuy},
	},
	{
		Match: func(slope, balance float64) bool { return slope < 0 && balance < -SentimentThreshold },
		Rec:   model.Recommendation{Label: model.LabelSell, Rationale: RationaleSell},
	},
}

// DefaultRecommendation applies when no rule matches.
var DefaultRecommendation = model.Recommendation{Label: model.LabelHold, Rationale: RationaleHold}

// Recommend combines a trend slope and optional sentiment into a label.
// A nil sentiment has zero balance, so only Hold is reachable without it.
func Recommend(trendSlope float64, s *model.SentimentScores) model.Recommendation {
	balance := sentiment.Balance(s)
	for _, r := range Rules {
		if r.Match(trendSlope, balance) {
			return r.Rec
		}
	}
	return DefaultRecommendation
}

// PriceSignal compares the last close with its moving average:
// above is Buy, below is Sell, and equal or no average yet is Hold.
func PriceSignal(lastClose, movingAvg float64) model.Label {
	switch {
	case math.IsNaN(movingAvg):
		return model.LabelHold
	case lastClose > movingAvg:
		return model.LabelBuy
	case lastClose < movingAvg:
		return model.LabelSell
	default:
		return model.LabelHold
	}
}

// Evaluate fills the recommendation fields of an analysis from its slope,
// sentiment, last close and latest moving average.
func Evaluate(a *model.Analysis) {
	a.Recommend = Recommend(a.TrendSlope, a.Sentiment)
	if !a.HasData {
		a.PriceSignal = model.LabelHold
		return
	}
	a.PriceSignal = PriceSignal(a.LastClose, a.LatestMA)
}
