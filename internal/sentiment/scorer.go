package sentiment

import (
	"math"
	"strings"

	"FinDocSignal/internal/model"
)

// Tokenize lowercases text and splits it on every run of runes outside a-z.
// Accented and other non-ASCII letters separate tokens too.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r < 'a' || r > 'z'
	})
}

// Score counts positive and negative keywords in text. Matching is exact
// token membership; there is no stemming.
func Score(text string) model.SentimentScores {
	var pos, neg int
	for _, tok := range Tokenize(text) {
		switch {
		case IsPositive(tok):
			pos++
		case IsNegative(tok):
			neg++
		}
	}
	return fromCounts(pos, neg)
}

// Combine adds the keyword counts of several scores and re-derives neutral.
func Combine(scores ...model.SentimentScores) model.SentimentScores {
	var pos, neg int
	for _, s := range scores {
		pos += s.Positive
		neg += s.Negative
	}
	return fromCounts(pos, neg)
}

// Balance returns (positive-negative)/max(1, positive+negative), in [-1, 1].
// A nil score counts as no sentiment and yields 0.
func Balance(s *model.SentimentScores) float64 {
	if s == nil {
		return 0
	}
	total := s.Positive + s.Negative
	if total < 1 {
		total = 1
	}
	return float64(s.Positive-s.Negative) / float64(total)
}

func fromCounts(pos, neg int) model.SentimentScores {
	return model.SentimentScores{
		Positive: pos,
		Neutral:  math.Max(0, float64(pos+neg)*NeutralPrior),
		Negative: neg,
	}
}
