package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"FinDocSignal/internal/calculator"
	"FinDocSignal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string) (*httptest.Server, *http.Request) {
	t.Helper()
	var captured http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = *r.Clone(r.Context())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestAlphaVantage_ParsesDailySeries(t *testing.T) {
	srv, req := serve(t, http.StatusOK, `{
		"Meta Data": {"2. Symbol": "IBM"},
		"Time Series (Daily)": {
			"2024-03-01": {"1. open": "185.0", "2. high": "186.0", "3. low": "184.0", "4. close": "185.5", "5. volume": "1000"},
			"2024-03-04": {"1. open": "185.5", "2. high": "188.0", "3. low": "185.0", "4. close": "187.2", "5. volume": "1200"}
		}
	}`)

	f := NewAlphaVantageFetcher(srv.URL, "", 0, "")
	raw, err := f.FetchDaily(context.Background(), "IBM")
	require.NoError(t, err)
	require.Len(t, raw, 2)
	assert.Equal(t, "187.2", raw["2024-03-04"].Close)

	q := req.URL.Query()
	assert.Equal(t, "/query", req.URL.Path)
	assert.Equal(t, "TIME_SERIES_DAILY", q.Get("function"))
	assert.Equal(t, "IBM", q.Get("symbol"))
	assert.Equal(t, DemoAPIKey, q.Get("apikey"))
}

func TestAlphaVantage_UsesConfiguredKey(t *testing.T) {
	srv, req := serve(t, http.StatusOK, `{}`)

	f := NewAlphaVantageFetcher(srv.URL, "secret", 0, "")
	_, err := f.FetchDaily(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Equal(t, "secret", req.URL.Query().Get("apikey"))
}

func TestAlphaVantage_UnknownSymbolYieldsEmptySeries(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `{"Error Message": "Invalid API call."}`)

	f := NewAlphaVantageFetcher(srv.URL, "", 0, "")
	raw, err := f.FetchDaily(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.NotNil(t, raw)
	assert.Empty(t, raw)
}

func TestAlphaVantage_HTTPErrorIsReported(t *testing.T) {
	srv, _ := serve(t, http.StatusInternalServerError, `{}`)

	f := NewAlphaVantageFetcher(srv.URL, "", 0, "")
	_, err := f.FetchDaily(context.Background(), "IBM")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestAlphaVantage_ThrottleHonorsContext(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `{}`)

	f := NewAlphaVantageFetcher(srv.URL, "", 1, "")
	_, err := f.FetchDaily(context.Background(), "IBM")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = f.FetchDaily(ctx, "IBM")
	assert.Error(t, err)
}

func TestMockFetcher_GeneratesDays(t *testing.T) {
	m := &MockFetcher{Price: 100, Days: 30}
	raw, err := m.FetchDaily(context.Background(), "ANY")
	require.NoError(t, err)
	assert.Len(t, raw, 30)
}

func TestCollector_Analyze(t *testing.T) {
	c := NewCollector(&MockFetcher{Price: 100, Days: 60}, DefaultParams())
	sent := &model.SentimentScores{Positive: 9, Neutral: 2, Negative: 1}

	a, err := c.Analyze(context.Background(), "IBM", sent)
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "IBM", a.Symbol)
	assert.Equal(t, "mock", a.Source)
	assert.True(t, a.HasData)
	assert.Equal(t, 60, a.Points)
	assert.Len(t, a.MovingAvg, 60)
	assert.Len(t, a.Chart, 60)
	assert.Greater(t, a.TrendSlope, 0.0)
	assert.Empty(t, a.Anomalies)
	assert.Equal(t, model.LabelBuy, a.Recommend.Label)
	assert.Equal(t, model.LabelBuy, a.PriceSignal)
	assert.True(t, a.FirstDate.Before(a.LastDate))

	// sentiment is copied, not shared
	sent.Positive = 0
	assert.Equal(t, 9, a.Sentiment.Positive)
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, calculator.DefaultMAWindow, p.MAWindow)
	assert.Equal(t, calculator.DefaultSlopeWindow, p.SlopeWindow)
	assert.Equal(t, calculator.DefaultDropThreshold, p.DropThreshold)
	assert.Equal(t, DefaultChartPoints, p.ChartPoints)

	c := NewCollector(&MockFetcher{Price: 100, Days: 200}, p)
	a, err := c.Analyze(context.Background(), "IBM", nil)
	require.NoError(t, err)
	assert.Len(t, a.Chart, DefaultChartPoints)
}

func TestCollector_AnalyzeEmptySymbol(t *testing.T) {
	c := NewCollector(&MockFetcher{Data: map[string]model.RawSeries{}}, DefaultParams())

	a, err := c.Analyze(context.Background(), "NOPE", nil)
	require.NoError(t, err)
	assert.False(t, a.HasData)
	assert.Zero(t, a.Points)
	assert.Empty(t, a.MovingAvg)
	assert.Zero(t, a.TrendSlope)
	assert.Equal(t, model.LabelHold, a.Recommend.Label)
	assert.Equal(t, model.LabelHold, a.PriceSignal)
}

func TestCollector_RecordsAnomalyDays(t *testing.T) {
	raw := model.RawSeries{
		"2024-01-01": {Close: "100"},
		"2024-01-02": {Close: "85"},
		"2024-01-03": {Close: "86"},
	}
	c := NewCollector(&MockFetcher{Data: map[string]model.RawSeries{"X": raw}}, DefaultParams())

	a, err := c.Analyze(context.Background(), "X", nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, a.Anomalies)
	require.Len(t, a.AnomalyDays, 1)
	assert.Equal(t, "2024-01-02", a.AnomalyDays[0].Format("2006-01-02"))
}

func TestCollector_StrictInputRejectsMalformed(t *testing.T) {
	raw := model.RawSeries{
		"2024-01-01": {Close: "100"},
		"not-a-date": {Close: "101"},
	}
	params := DefaultParams()
	params.StrictInput = true
	c := NewCollector(&MockFetcher{Data: map[string]model.RawSeries{"X": raw}}, params)

	_, err := c.Analyze(context.Background(), "X", nil)
	assert.Error(t, err)

	params.StrictInput = false
	c = NewCollector(&MockFetcher{Data: map[string]model.RawSeries{"X": raw}}, params)
	a, err := c.Analyze(context.Background(), "X", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Points)
}

func TestCollector_AnalyzeManyKeepsGoingOnFailure(t *testing.T) {
	ok := &MockFetcher{Price: 50, Days: 30}
	c := NewCollector(ok, DefaultParams())

	results := c.AnalyzeMany(context.Background(), []string{"A", "B", "C"}, nil)
	require.Len(t, results, 3)
	for i, sym := range []string{"A", "B", "C"} {
		assert.Equal(t, sym, results[i].Symbol)
		assert.NoError(t, results[i].Err)
		assert.NotNil(t, results[i].Analysis)
	}

	c = NewCollector(&MockFetcher{Err: errors.New("boom")}, DefaultParams())
	results = c.AnalyzeMany(context.Background(), []string{"A", "B"}, nil)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Error(t, r.Err)
		assert.Nil(t, r.Analysis)
	}
}
