package calculator

import "FinDocSignal/internal/model"

// DefaultDropThreshold flags single-step drops larger than 10%.
const DefaultDropThreshold = 0.10

// DetectAnomalies returns the indices i >= 1 where close fell from close[i-1]
// by more than threshold (as a fraction of close[i-1]). Rises are never flagged.
func DetectAnomalies(series *model.Series, threshold float64) []int {
	return Drops(series.Closes(), threshold)
}

// Drops is DetectAnomalies over plain values.
func Drops(values []float64, threshold float64) []int {
	var idx []int
	for i := 1; i < len(values); i++ {
		prev, curr := values[i-1], values[i]
		if prev > 0 && (prev-curr)/prev > threshold {
			idx = append(idx, i)
		}
	}
	return idx
}
