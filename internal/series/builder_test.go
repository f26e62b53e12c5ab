package series

import (
	"errors"
	"testing"
	"time"

	"FinDocSignal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(close string) model.DailyRecord {
	return model.DailyRecord{Close: close}
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBuild_SortsAscending(t *testing.T) {
	raw := model.RawSeries{
		"2024-03-05": rec("103.50"),
		"2024-03-01": rec("100.00"),
		"2024-03-04": rec("102.25"),
	}
	s := Build("IBM", raw)

	require.Equal(t, 3, s.Len())
	assert.Equal(t, "IBM", s.Symbol)
	assert.Equal(t, []float64{100, 102.25, 103.5}, s.Closes())
	for i := 1; i < s.Len(); i++ {
		assert.True(t, s.Points[i-1].Date.Before(s.Points[i].Date), "dates must be strictly increasing")
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	for name, raw := range map[string]model.RawSeries{"nil": nil, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			s := Build("NONE", raw)
			require.NotNil(t, s)
			assert.Equal(t, 0, s.Len())
			_, ok := s.Last()
			assert.False(t, ok)
		})
	}
}

func TestBuild_DropsMalformedEntries(t *testing.T) {
	raw := model.RawSeries{
		"2024-03-01": rec("100.00"),
		"not-a-date": rec("101.00"),
		"2024-03-02": rec("abc"),
		"2024-03-03": rec(""),
		"2024-03-04": rec("-5"),
		"2024-03-05": rec("NaN"),
		"2024-03-06": rec("104"),
	}
	s := Build("IBM", raw)
	assert.Equal(t, []float64{100, 104}, s.Closes())
}

func TestBuildStrict_FailsOnMalformedEntry(t *testing.T) {
	raw := model.RawSeries{
		"2024-03-01": rec("100.00"),
		"2024-03-02": rec("oops"),
	}
	_, err := BuildStrict("IBM", raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPrice))

	_, err = BuildStrict("IBM", model.RawSeries{"yesterday": rec("1")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDate))
}

func TestBuildStrict_ValidInput(t *testing.T) {
	s, err := BuildStrict("IBM", model.RawSeries{"2024-03-01": rec("100"), "2024-03-02": rec("0")})
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 0}, s.Closes())
}

func TestBuild_DuplicateDaysKeepLastSeen(t *testing.T) {
	// Both keys collapse to 2024-03-01; the lexically later key is seen last.
	raw := model.RawSeries{
		"2024-03-01":          rec("100"),
		"2024-03-01 16:00:00": rec("101"),
	}
	s := Build("IBM", raw)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, 101.0, s.Points[0].Close)
}

func TestFromPoints_DedupesAndDoesNotMutateInput(t *testing.T) {
	in := []model.TimePoint{
		{Date: date("2024-01-03"), Close: 3},
		{Date: date("2024-01-01"), Close: 1},
		{Date: date("2024-01-03"), Close: 30},
		{Date: date("2024-01-02"), Close: 2},
	}
	s := FromPoints("X", in)

	assert.Equal(t, []float64{1, 2, 30}, s.Closes())
	assert.Equal(t, 3.0, in[0].Close, "input slice must be left untouched")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-02-29", "2024-02-29", true},
		{" 2024-02-29 ", "2024-02-29", true},
		{"2024-02-29 09:30:00", "2024-02-29", true},
		{"2024-02-29T23:00:00Z", "2024-02-29", true},
		{"2023-02-29", "", false},
		{"29/02/2024", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if !tt.ok {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got.Format("2006-01-02"))
		assert.Equal(t, time.UTC, got.Location())
	}
}
