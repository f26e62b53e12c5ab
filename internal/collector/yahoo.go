package collector

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"FinDocSignal/internal/model"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// YahooFetcher implements Fetcher using Yahoo Finance daily chart bars.
type YahooFetcher struct {
	HistoryDays int
	SymbolMap   map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher covering historyDays calendar days.
func NewYahooFetcher(historyDays int) *YahooFetcher {
	if historyDays <= 0 {
		historyDays = 365
	}
	return &YahooFetcher{
		HistoryDays: historyDays,
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

func (f *YahooFetcher) FetchDaily(ctx context.Context, symbol string) (model.RawSeries, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -f.HistoryDays)

	iter := chart.Get(&chart.Params{
		Symbol:   f.yahooSymbol(symbol),
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	})

	raw := model.RawSeries{}
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bar := iter.Bar()
		if bar.Close.IsZero() && bar.Open.IsZero() {
			continue // skip null bars (holidays etc.)
		}
		day := time.Unix(int64(bar.Timestamp), 0).UTC().Format("2006-01-02")
		raw[day] = model.DailyRecord{
			Open:   bar.Open.String(),
			High:   bar.High.String(),
			Low:    bar.Low.String(),
			Close:  bar.Close.String(),
			Volume: strconv.Itoa(bar.Volume),
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}
	return raw, nil
}
