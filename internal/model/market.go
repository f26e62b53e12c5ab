package model

import "time"

// TimePoint is a single daily closing price.
type TimePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// Series holds the daily closes for one symbol, ascending by date with unique dates.
// A Series is built once per fetch and never mutated afterwards.
type Series struct {
	Symbol    string
	Points    []TimePoint
	FetchedAt time.Time
}

// Len returns the number of points.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Points)
}

// Closes returns a fresh slice of closing prices in series order.
func (s *Series) Closes() []float64 {
	closes := make([]float64, s.Len())
	for i := range closes {
		closes[i] = s.Points[i].Close
	}
	return closes
}

// Last returns the most recent point, or false if the series is empty.
func (s *Series) Last() (TimePoint, bool) {
	if s.Len() == 0 {
		return TimePoint{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// Tail returns a copy of the last n points (or all of them when n exceeds the length).
func (s *Series) Tail(n int) []TimePoint {
	size := s.Len()
	if n < 0 {
		n = 0
	}
	if n > size {
		n = size
	}
	out := make([]TimePoint, n)
	if n > 0 {
		copy(out, s.Points[size-n:])
	}
	return out
}

// DailyRecord is one entry of a daily price history as delivered by the price API.
// Field names follow the Alpha Vantage TIME_SERIES_DAILY payload.
type DailyRecord struct {
	Open   string `json:"1. open,omitempty"`
	High   string `json:"2. high,omitempty"`
	Low    string `json:"3. low,omitempty"`
	Close  string `json:"4. close" validate:"required,numeric"`
	Volume string `json:"5. volume,omitempty"`
}

// RawSeries maps a date string to its daily record. An empty map means "no data".
type RawSeries map[string]DailyRecord
