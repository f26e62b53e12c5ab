package model

import "time"

// Analysis bundles everything computed for one symbol in one pass.
type Analysis struct {
	ID          string
	Symbol      string
	Source      string
	Points      int
	FirstDate   time.Time
	LastDate    time.Time
	LastClose   float64
	HasData     bool
	MovingAvg   []float64 // aligned with the series, NaN during warm-up
	LatestMA    float64   // NaN when the window is not yet filled
	MAWindow    int
	TrendSlope  float64
	Anomalies   []int
	AnomalyDays []time.Time
	RSI         float64
	RangeHigh   float64
	RangeLow    float64
	RangePos    float64     // last close within [RangeLow, RangeHigh], 0.0~1.0
	Chart       []TimePoint // trailing window for display
	Sentiment   *SentimentScores
	Recommend   Recommendation
	PriceSignal Label
	GeneratedAt time.Time
}

// DocumentSource tells where an ingested document came from.
type DocumentSource string

const (
	SourceUpload DocumentSource = "upload"
	SourceURL    DocumentSource = "url"
	SourceFeed   DocumentSource = "feed"
)

// Document is a piece of ingested plain text.
type Document struct {
	Name    string
	Type    string
	Source  DocumentSource
	Content string
	AddedAt time.Time
}
