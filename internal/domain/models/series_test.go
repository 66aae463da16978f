package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func annual(years ...int) []LiquidityDataPoint {
	rows := make([]LiquidityDataPoint, len(years))
	for i, y := range years {
		rows[i] = LiquidityDataPoint{Date: AnnualLabel(y), Year: y, DenominatorIndex: float64(100 + i)}
	}
	return rows
}

func TestSeriesIsolatedFromCaller(t *testing.T) {
	rows := annual(2020, 2021)
	s := NewSeries(rows)
	fp := s.Fingerprint()

	rows[0].DenominatorIndex = 999
	assert.Equal(t, 100.0, s.At(0).DenominatorIndex)

	out := s.Rows()
	out[1].DenominatorIndex = 999
	assert.Equal(t, 101.0, s.At(1).DenominatorIndex)
	assert.Equal(t, fp, s.Fingerprint())
}

func TestFingerprintTracksContent(t *testing.T) {
	a := NewSeries(annual(2020, 2021))
	b := NewSeries(annual(2020, 2021))
	c := NewSeries(annual(2020, 2022))

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.NotEmpty(t, NewSeries(nil).Fingerprint())
}

func TestLastYears(t *testing.T) {
	s := NewSeries(annual(2016, 2017, 2018, 2019, 2020, 2021, 2022, 2023, 2024, 2025))

	got := s.LastYears(3)
	require.Len(t, got, 3)
	assert.Equal(t, 2023, got[0].Year)
	assert.Equal(t, 2025, got[2].Year)

	assert.Len(t, s.LastYears(50), 10)
	assert.Empty(t, s.LastYears(0))
	assert.Empty(t, NewSeries(nil).LastYears(10))
}

func TestLastYearsOnMonthlyTail(t *testing.T) {
	rows := annual(2018, 2019)
	for y := 2020; y <= 2021; y++ {
		for m := 1; m <= 12; m++ {
			rows = append(rows, LiquidityDataPoint{Date: MonthlyLabel(y, m), Year: y, Month: m})
		}
	}
	s := NewSeries(rows)

	got := s.LastYears(1)
	require.Len(t, got, 12)
	assert.Equal(t, "Jan 2021", got[0].Date)
	assert.Equal(t, "Dec 2021", got[11].Date)

	assert.Len(t, s.LastYears(3), 1+24)
}

func TestLookupAndOrdinal(t *testing.T) {
	rows := append(annual(2019), LiquidityDataPoint{Date: "Jan 2020", Year: 2020, Month: 1})
	s := NewSeries(rows)

	assert.Equal(t, 1, s.At(1).Ordinal()-s.At(0).Ordinal())

	got, ok := s.Lookup(2019*12 + 11)
	require.True(t, ok)
	assert.Equal(t, "2019", got.Date)

	_, ok = s.Lookup(2018*12 + 11)
	assert.False(t, ok)
}

func TestSpanYearsAndEnds(t *testing.T) {
	s := NewSeries(annual(1913, 1914, 2025))
	assert.Equal(t, 112.0, s.SpanYears())

	_, ok := NewSeries(nil).Last()
	assert.False(t, ok)
	assert.Zero(t, NewSeries(nil).SpanYears())
}

func TestRangeYears(t *testing.T) {
	assert.Equal(t, 10, RangeYears("10Y"))
	assert.Equal(t, 25, RangeYears("25Y"))
	assert.Equal(t, 50, RangeYears("50Y"))
	assert.Equal(t, 0, RangeYears("ALL"))
}

func TestParseChangePolicy(t *testing.T) {
	p, err := ParseChangePolicy("yoy")
	require.NoError(t, err)
	assert.Equal(t, ChangeYoY, p)

	_, err = ParseChangePolicy("mom")
	assert.Error(t, err)
}
