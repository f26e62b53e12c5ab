package collector

import (
	"context"
	"strconv"
	"time"

	"FinDocSignal/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Days  int
	Data  map[string]model.RawSeries // per-symbol override
	Err   error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDaily(_ context.Context, symbol string) (model.RawSeries, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Data != nil {
		if raw, ok := m.Data[symbol]; ok {
			return raw, nil
		}
		return model.RawSeries{}, nil
	}
	return generateMockSeries(m.Price, m.Days, time.Now()), nil
}

// generateMockSeries builds a gently rising series ending the day before end.
func generateMockSeries(basePrice float64, days int, end time.Time) model.RawSeries {
	raw := make(model.RawSeries, days)
	for i := 0; i < days; i++ {
		p := basePrice * (1 + float64(i-days/2)*0.001)
		day := end.AddDate(0, 0, -(days - i)).Format("2006-01-02")
		raw[day] = model.DailyRecord{
			Open:   strconv.FormatFloat(p*0.999, 'f', 4, 64),
			High:   strconv.FormatFloat(p*1.005, 'f', 4, 64),
			Low:    strconv.FormatFloat(p*0.995, 'f', 4, 64),
			Close:  strconv.FormatFloat(p, 'f', 4, 64),
			Volume: "1000000",
		}
	}
	return raw
}
