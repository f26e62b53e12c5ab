package recorder

import (
	"time"

	"FinDocSignal/internal/model"
)

// Entry is one stored analysis as read back for history views.
type Entry struct {
	ID          string
	Symbol      string
	Timestamp   time.Time
	Source      string
	Points      int
	LastClose   float64
	LatestMA    float64 // NaN when no average was available
	TrendSlope  float64
	RSI         float64
	Anomalies   int
	Sentiment   *model.SentimentScores
	Label       model.Label
	PriceSignal model.Label
}

// Recorder persists analysis history.
type Recorder interface {
	RecordAnalysis(a *model.Analysis) error
	RecordDocument(doc *model.Document) error
	RecentAnalyses(symbol string, limit int) ([]Entry, error)
	Close() error
}
