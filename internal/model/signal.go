package model

// Label is the discrete recommendation shown on the dashboard badge.
type Label string

const (
	LabelBuy  Label = "Buy"
	LabelHold Label = "Hold"
	LabelSell Label = "Sell"
)

// Recommendation is the output of the recommendation rule.
type Recommendation struct {
	Label     Label  `json:"label"`
	Rationale string `json:"rationale"`
}

// SentimentScores holds keyword counts for a piece of text.
// Neutral is a derived prior, not a count.
type SentimentScores struct {
	Positive int     `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative int     `json:"negative"`
}
