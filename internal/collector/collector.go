package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"FinDocSignal/internal/calculator"
	"FinDocSignal/internal/model"
	"FinDocSignal/internal/series"
	"FinDocSignal/internal/strategy"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Params tunes the indicators computed per symbol.
type Params struct {
	MAWindow      int
	SlopeWindow   int
	DropThreshold float64
	StrictInput   bool
	ChartPoints   int
	Concurrency   int
}

// DefaultChartPoints is how many trailing points an analysis keeps for charting.
const DefaultChartPoints = 120

// DefaultParams returns the dashboard defaults.
func DefaultParams() Params {
	return Params{
		MAWindow:      calculator.DefaultMAWindow,
		SlopeWindow:   calculator.DefaultSlopeWindow,
		DropThreshold: calculator.DefaultDropThreshold,
		ChartPoints:   DefaultChartPoints,
		Concurrency:   4,
	}
}

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher Fetcher
	Params  Params
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, params Params) *Collector {
	return &Collector{Fetcher: fetcher, Params: params}
}

// Analyze fetches the daily history of symbol and computes every indicator.
// sentiment may be nil when no document has been ingested yet.
func (c *Collector) Analyze(ctx context.Context, symbol string, sentiment *model.SentimentScores) (*model.Analysis, error) {
	raw, err := c.Fetcher.FetchDaily(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}

	var s *model.Series
	if c.Params.StrictInput {
		if s, err = series.BuildStrict(symbol, raw); err != nil {
			return nil, err
		}
	} else {
		s = series.Build(symbol, raw)
	}

	a, err := c.AnalyzeSeries(s, sentiment)
	if err != nil {
		return nil, err
	}
	a.Source = c.Fetcher.Name()
	return a, nil
}

// AnalyzeSeries computes indicators for an already-built series.
func (c *Collector) AnalyzeSeries(s *model.Series, sentiment *model.SentimentScores) (*model.Analysis, error) {
	ma, err := calculator.MovingAverage(s, c.Params.MAWindow)
	if err != nil {
		return nil, fmt.Errorf("moving average: %w", err)
	}

	a := &model.Analysis{
		ID:          uuid.NewString(),
		Symbol:      s.Symbol,
		Points:      s.Len(),
		MovingAvg:   ma,
		LatestMA:    calculator.Latest(ma),
		MAWindow:    c.Params.MAWindow,
		TrendSlope:  calculator.TrendSlope(s, c.Params.SlopeWindow),
		Anomalies:   calculator.DetectAnomalies(s, c.Params.DropThreshold),
		RSI:         50,
		Chart:       s.Tail(c.Params.ChartPoints),
		GeneratedAt: time.Now(),
	}
	if sentiment != nil {
		cp := *sentiment
		a.Sentiment = &cp
	}
	for _, i := range a.Anomalies {
		a.AnomalyDays = append(a.AnomalyDays, s.Points[i].Date)
	}

	if last, ok := s.Last(); ok {
		a.HasData = true
		a.LastClose = last.Close
		a.LastDate = last.Date
		a.FirstDate = s.Points[0].Date

		if rsi, err := calculator.RSI(s, calculator.DefaultRSIPeriod); err != nil {
			log.Printf("[WARN] %s RSI calculation failed: %v, defaulting to 50", s.Symbol, err)
		} else {
			a.RSI = rsi
		}

		if h, l, err := calculator.PriceRange(s, calculator.DefaultRangeLookback); err != nil {
			log.Printf("[WARN] %s range calculation failed: %v", s.Symbol, err)
			a.RangeHigh, a.RangeLow = last.Close, last.Close
		} else {
			a.RangeHigh, a.RangeLow = h, l
		}

		if pos, err := calculator.RangePosition(last.Close, a.RangeHigh, a.RangeLow); err != nil {
			log.Printf("[WARN] %s range position failed: %v", s.Symbol, err)
			a.RangePos = 0.5
		} else {
			a.RangePos = pos
		}
	}

	strategy.Evaluate(a)
	return a, nil
}

// Result pairs a symbol with its analysis or the error that prevented it.
type Result struct {
	Symbol   string
	Analysis *model.Analysis
	Err      error
}

// AnalyzeMany analyzes several symbols concurrently. A failing symbol is
// reported in its Result and does not abort the others. Results keep the
// order of symbols.
func (c *Collector) AnalyzeMany(ctx context.Context, symbols []string, sentiment *model.SentimentScores) []Result {
	results := make([]Result, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	if c.Params.Concurrency > 0 {
		g.SetLimit(c.Params.Concurrency)
	}
	for i, sym := range symbols {
		g.Go(func() error {
			a, err := c.Analyze(gctx, sym, sentiment)
			results[i] = Result{Symbol: sym, Analysis: a, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
