package series

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"FinDocSignal/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidPrice = errors.New("invalid close price")
)

var validate = validator.New()

// dateLayouts are tried in order. Intraday timestamps collapse to their calendar day.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// Build converts a raw date->record mapping into a Series, silently dropping
// entries whose date or close does not parse. A nil or empty mapping yields an
// empty Series.
func Build(symbol string, raw model.RawSeries) *model.Series {
	s, dropped, _ := build(symbol, raw, false)
	if dropped > 0 {
		log.Printf("[WARN] %s: dropped %d of %d malformed price entries", symbol, dropped, len(raw))
	}
	return s
}

// BuildStrict is Build without the leniency: the first malformed entry is returned as an error.
func BuildStrict(symbol string, raw model.RawSeries) (*model.Series, error) {
	s, _, err := build(symbol, raw, true)
	if err != nil {
		return nil, fmt.Errorf("build series %s: %w", symbol, err)
	}
	return s, nil
}

func build(symbol string, raw model.RawSeries, strict bool) (*model.Series, int, error) {
	// Map order is random; walk keys lexically so "last seen" is deterministic.
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	points := make([]model.TimePoint, 0, len(keys))
	dropped := 0
	for _, k := range keys {
		p, err := ParseRecord(k, raw[k])
		if err != nil {
			if strict {
				return nil, 0, fmt.Errorf("entry %q: %w", k, err)
			}
			dropped++
			continue
		}
		points = append(points, p)
	}
	return FromPoints(symbol, points), dropped, nil
}

// FromPoints builds a Series from already-typed points. Points are copied,
// normalized to UTC calendar days, sorted ascending, and deduplicated keeping
// the last point seen for each day.
func FromPoints(symbol string, points []model.TimePoint) *model.Series {
	sorted := make([]model.TimePoint, len(points))
	for i, p := range points {
		sorted[i] = model.TimePoint{Date: day(p.Date), Close: p.Close}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	out := make([]model.TimePoint, 0, len(sorted))
	for _, p := range sorted {
		if n := len(out); n > 0 && out[n-1].Date.Equal(p.Date) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}

	return &model.Series{
		Symbol:    symbol,
		Points:    out,
		FetchedAt: time.Now(),
	}
}

// ParseRecord validates a single raw entry and converts it into a TimePoint.
func ParseRecord(date string, rec model.DailyRecord) (model.TimePoint, error) {
	d, err := ParseDate(date)
	if err != nil {
		return model.TimePoint{}, err
	}
	if err := validate.Struct(rec); err != nil {
		return model.TimePoint{}, fmt.Errorf("%w: %q", ErrInvalidPrice, rec.Close)
	}
	price, err := decimal.NewFromString(rec.Close)
	if err != nil {
		return model.TimePoint{}, fmt.Errorf("%w: %q", ErrInvalidPrice, rec.Close)
	}
	if price.IsNegative() {
		return model.TimePoint{}, fmt.Errorf("%w: negative %q", ErrInvalidPrice, rec.Close)
	}
	f, _ := price.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return model.TimePoint{}, fmt.Errorf("%w: out of range %q", ErrInvalidPrice, rec.Close)
	}
	return model.TimePoint{Date: d, Close: f}, nil
}

// ParseDate parses a calendar date and returns it as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
