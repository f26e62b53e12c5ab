package calculator

import (
	"math"
	"testing"
	"time"

	"FinDocSignal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesOf(closes ...float64) *model.Series {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	pts := make([]model.TimePoint, len(closes))
	for i, c := range closes {
		pts[i] = model.TimePoint{Date: start.AddDate(0, 0, i), Close: c}
	}
	return &model.Series{Symbol: "TEST", Points: pts}
}

func TestMovingAverage_Values(t *testing.T) {
	ma, err := MovingAverage(seriesOf(1, 2, 3, 4, 5), 3)
	require.NoError(t, err)
	require.Len(t, ma, 5)

	assert.True(t, math.IsNaN(ma[0]))
	assert.True(t, math.IsNaN(ma[1]))
	assert.InDelta(t, 2.0, ma[2], 1e-12)
	assert.InDelta(t, 3.0, ma[3], 1e-12)
	assert.InDelta(t, 4.0, ma[4], 1e-12)
}

func TestMovingAverage_LengthAndWarmup(t *testing.T) {
	closes := []float64{5, 7, 1, 9, 3, 8, 2, 6, 4, 10, 11, 12}
	for w := 1; w <= len(closes)+2; w++ {
		ma, err := MovingAverage(seriesOf(closes...), w)
		require.NoError(t, err)
		assert.Len(t, ma, len(closes), "window %d", w)
		for i := range ma {
			if i < w-1 {
				assert.False(t, HasValue(ma[i]), "window %d index %d should have no value", w, i)
				continue
			}
			sum := 0.0
			for _, c := range closes[i-w+1 : i+1] {
				sum += c
			}
			assert.InDelta(t, sum/float64(w), ma[i], 1e-9, "window %d index %d", w, i)
		}
	}
}

func TestMovingAverage_RejectsNonPositiveWindow(t *testing.T) {
	for _, w := range []int{0, -1} {
		_, err := MovingAverage(seriesOf(1, 2, 3), w)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	}
}

func TestMovingAverage_EmptySeries(t *testing.T) {
	ma, err := MovingAverage(seriesOf(), DefaultMAWindow)
	require.NoError(t, err)
	assert.Empty(t, ma)
	assert.True(t, math.IsNaN(Latest(ma)))
}

func TestTrendSlope_Sign(t *testing.T) {
	up := seriesOf(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	down := seriesOf(10, 9, 8, 7, 6, 5, 4, 3, 2, 1)
	flat := seriesOf(4, 4, 4, 4, 4, 4, 4, 4, 4, 4)

	assert.Greater(t, TrendSlope(up, 10), 0.0)
	assert.InDelta(t, 1.0, TrendSlope(up, 10), 1e-12)
	assert.Less(t, TrendSlope(down, 10), 0.0)
	assert.Equal(t, 0.0, TrendSlope(flat, 10))
}

func TestTrendSlope_Degenerate(t *testing.T) {
	assert.Equal(t, 0.0, TrendSlope(seriesOf(42), 10))
	assert.Equal(t, 0.0, TrendSlope(seriesOf(), 10))
	assert.Equal(t, 0.0, TrendSlope(seriesOf(1, 2, 3), 1))
	assert.Equal(t, 0.0, TrendSlope(seriesOf(1, 2, 3), 0))
}

func TestTrendSlope_UsesOnlyLastN(t *testing.T) {
	// Long decline followed by a short rise: the last 3 points slope upward.
	s := seriesOf(100, 90, 80, 70, 60, 50, 51, 52)
	assert.InDelta(t, 1.0, TrendSlope(s, 3), 1e-12)
	assert.Less(t, TrendSlope(s, 8), 0.0)
	// lastN larger than the series uses every point.
	assert.Equal(t, TrendSlope(s, 8), TrendSlope(s, 50))
}

func TestDetectAnomalies_Threshold(t *testing.T) {
	assert.Empty(t, DetectAnomalies(seriesOf(100, 90), DefaultDropThreshold), "exactly 10% is not an anomaly")
	assert.Equal(t, []int{1}, DetectAnomalies(seriesOf(100, 89.9), DefaultDropThreshold))
}

func TestDetectAnomalies_OnlyDrops(t *testing.T) {
	assert.Empty(t, DetectAnomalies(seriesOf(100, 150), DefaultDropThreshold))
	assert.Equal(t, []int{2, 4}, DetectAnomalies(seriesOf(100, 200, 100, 95, 50, 500), DefaultDropThreshold))
}

func TestDetectAnomalies_SkipsZeroPrevious(t *testing.T) {
	assert.Empty(t, DetectAnomalies(seriesOf(0, 0, 0), DefaultDropThreshold))
	assert.Empty(t, DetectAnomalies(seriesOf(), DefaultDropThreshold))
	assert.Empty(t, DetectAnomalies(seriesOf(7), DefaultDropThreshold))
}

func TestDetectAnomalies_CustomThreshold(t *testing.T) {
	s := seriesOf(100, 94, 100, 80)
	assert.Equal(t, []int{1, 3}, DetectAnomalies(s, 0.05))
	assert.Empty(t, DetectAnomalies(s, 0.25))
}

func TestIdempotence(t *testing.T) {
	s := seriesOf(10, 12, 9, 14, 13, 7, 15, 16, 11, 18, 19, 17)
	before := s.Closes()

	ma1, _ := MovingAverage(s, 3)
	ma2, _ := MovingAverage(s, 3)
	assert.Equal(t, ma1[2:], ma2[2:])
	assert.Equal(t, TrendSlope(s, 10), TrendSlope(s, 10))
	assert.Equal(t, DetectAnomalies(s, DefaultDropThreshold), DetectAnomalies(s, DefaultDropThreshold))
	assert.Equal(t, before, s.Closes(), "series must not be mutated")
}

func TestRSI(t *testing.T) {
	rsi, err := RSI(seriesOf(1, 2, 3), DefaultRSIPeriod)
	require.NoError(t, err)
	assert.Equal(t, 50.0, rsi, "insufficient data defaults to neutral")

	rising := make([]float64, 30)
	for i := range rising {
		rising[i] = float64(i + 1)
	}
	rsi, err = RSI(seriesOf(rising...), DefaultRSIPeriod)
	require.NoError(t, err)
	assert.Equal(t, 100.0, rsi)

	falling := make([]float64, 30)
	for i := range falling {
		falling[i] = float64(30 - i)
	}
	rsi, err = RSI(seriesOf(falling...), DefaultRSIPeriod)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, rsi, 1e-9)

	_, err = RSI(seriesOf(rising...), 0)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestPriceRange(t *testing.T) {
	s := seriesOf(5, 1, 9, 3, 4)
	high, low, err := PriceRange(s, DefaultRangeLookback)
	require.NoError(t, err)
	assert.Equal(t, 9.0, high)
	assert.Equal(t, 1.0, low)

	high, low, err = PriceRange(s, 2)
	require.NoError(t, err)
	assert.Equal(t, 4.0, high)
	assert.Equal(t, 3.0, low)

	_, _, err = PriceRange(seriesOf(), 10)
	assert.Error(t, err)
}

func TestRangePosition(t *testing.T) {
	pos, err := RangePosition(5, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.5, pos)

	pos, _ = RangePosition(12, 10, 0)
	assert.Equal(t, 1.0, pos)

	pos, _ = RangePosition(3, 3, 3)
	assert.Equal(t, 0.5, pos)

	_, err = RangePosition(1, 0, 10)
	assert.Error(t, err)
}
