package collector

import (
	"context"

	"FinDocSignal/internal/model"
)

// Fetcher defines the interface for fetching daily price history.
// A symbol without data yields an empty RawSeries, not an error.
type Fetcher interface {
	FetchDaily(ctx context.Context, symbol string) (model.RawSeries, error)
	Name() string
}
