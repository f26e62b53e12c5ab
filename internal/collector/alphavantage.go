package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"FinDocSignal/internal/model"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	// DefaultAlphaVantageURL is the public Alpha Vantage endpoint.
	DefaultAlphaVantageURL = "https://www.alphavantage.co"
	// DemoAPIKey only serves a handful of symbols (IBM among them).
	DemoAPIKey = "demo"
)

// AlphaVantageFetcher implements Fetcher using the Alpha Vantage TIME_SERIES_DAILY API.
// The API key is fixed at construction time.
type AlphaVantageFetcher struct {
	client  *resty.Client
	apiKey  string
	limiter *rate.Limiter
}

// NewAlphaVantageFetcher creates a fetcher. An empty apiKey falls back to the demo key,
// requestsPerMinute <= 0 disables client-side throttling.
func NewAlphaVantageFetcher(baseURL, apiKey string, requestsPerMinute int, proxyURL string) *AlphaVantageFetcher {
	if baseURL == "" {
		baseURL = DefaultAlphaVantageURL
	}
	if apiKey == "" {
		apiKey = DemoAPIKey
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/json")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}

	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(requestsPerMinute))
	}
	return &AlphaVantageFetcher{
		client:  client,
		apiKey:  apiKey,
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

// avDaily is the response shape of TIME_SERIES_DAILY. When the symbol is
// unknown or the key is throttled the series is absent and one of the
// message fields is set instead.
type avDaily struct {
	Series       model.RawSeries `json:"Time Series (Daily)"`
	ErrorMessage string          `json:"Error Message"`
	Note         string          `json:"Note"`
	Information  string          `json:"Information"`
}

func (f *AlphaVantageFetcher) FetchDaily(ctx context.Context, symbol string) (model.RawSeries, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("alphavantage throttle: %w", err)
	}

	var body avDaily
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": "TIME_SERIES_DAILY",
			"symbol":   symbol,
			"apikey":   f.apiKey,
		}).
		SetResult(&body).
		Get("/query")
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("alphavantage: status %d, body: %s", resp.StatusCode(), resp.String())
	}

	if len(body.Series) == 0 {
		if msg := firstNonEmpty(body.ErrorMessage, body.Note, body.Information); msg != "" {
			log.Printf("[WARN] alphavantage %s: no series returned: %s", symbol, msg)
		}
		return model.RawSeries{}, nil
	}
	return body.Series, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
