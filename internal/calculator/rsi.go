package calculator

import "FinDocSignal/internal/model"

// DefaultRSIPeriod is the classic 14-day RSI.
const DefaultRSIPeriod = 14

// RSI computes the Wilder-smoothed RSI of the series closes.
// Requires at least period+1 points. Returns 50 (neutral) if data is insufficient.
func RSI(series *model.Series, period int) (float64, error) {
	return RSIValues(series.Closes(), period)
}

// RSIValues is RSI over plain values.
func RSIValues(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrInvalidWindow
	}
	if len(closes) < period+1 {
		return 50.0, nil
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		gain, loss := split(closes[i] - closes[i-1])
		avgGain += gain
		avgLoss += loss
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		gain, loss := split(closes[i] - closes[i-1])
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		if avgGain == 0 {
			return 50.0, nil
		}
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}

func split(change float64) (gain, loss float64) {
	if change > 0 {
		return change, 0
	}
	return 0, -change
}
