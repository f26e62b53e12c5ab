package calculator

import (
	"errors"
	"math"

	"FinDocSignal/internal/model"
)

// DefaultMAWindow is the dashboard's moving-average window (MA20).
const DefaultMAWindow = 20

// ErrInvalidWindow is returned when a window or period is not a positive integer.
var ErrInvalidWindow = errors.New("window must be positive")

// MovingAverage computes the trailing simple moving average of the series closes.
// The result has one value per point; positions before the window fills are NaN.
func MovingAverage(series *model.Series, window int) ([]float64, error) {
	return SMA(series.Closes(), window)
}

// SMA is MovingAverage over plain values. It runs in O(n) using a running sum.
func SMA(values []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	out := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}

// HasValue reports whether a moving-average slot holds a value.
func HasValue(v float64) bool {
	return !math.IsNaN(v)
}

// Latest returns the last moving-average value, or NaN when there is none.
func Latest(ma []float64) float64 {
	if len(ma) == 0 {
		return math.NaN()
	}
	return ma[len(ma)-1]
}
