package calculator

import (
	"errors"

	"FinDocSignal/internal/model"
)

// DefaultRangeLookback covers roughly one trading year.
const DefaultRangeLookback = 252

// PriceRange returns the highest and lowest close over the most recent lookback points.
func PriceRange(series *model.Series, lookback int) (high, low float64, err error) {
	if lookback <= 0 {
		return 0, 0, ErrInvalidWindow
	}
	n := series.Len()
	if n == 0 {
		return 0, 0, errors.New("no points provided")
	}
	start := n - lookback
	if start < 0 {
		start = 0
	}
	high = series.Points[start].Close
	low = high
	for _, p := range series.Points[start+1:] {
		if p.Close > high {
			high = p.Close
		}
		if p.Close < low {
			low = p.Close
		}
	}
	return high, low, nil
}

// RangePosition returns where current sits within [low, high] as 0.0~1.0.
func RangePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
