package calculator

import "FinDocSignal/internal/model"

// DefaultSlopeWindow is the number of trailing points used for the trend slope.
const DefaultSlopeWindow = 10

// TrendSlope returns the least-squares slope of close against point index over
// the last min(lastN, len) points. Fewer than two points yield 0.
// A positive slope means an upward trend.
func TrendSlope(series *model.Series, lastN int) float64 {
	return Slope(series.Closes(), lastN)
}

// Slope is TrendSlope over plain values.
func Slope(values []float64, lastN int) float64 {
	n := lastN
	if len(values) < n {
		n = len(values)
	}
	if n < 2 {
		return 0
	}
	window := values[len(values)-n:]

	meanX := float64(n-1) / 2
	meanY := 0.0
	for _, v := range window {
		meanY += v
	}
	meanY /= float64(n)

	var num, den float64
	for i, v := range window {
		dx := float64(i) - meanX
		num += dx * (v - meanY)
		den += dx * dx
	}
	// n >= 2 with distinct indices keeps den > 0.
	return num / den
}
