package models

import (
	"encoding/json"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Series is the immutable, chronologically ordered output of the synthesizer.
// Rows are copied in and out so callers can never edit the backing array.
type Series struct {
	rows        []LiquidityDataPoint
	fingerprint string
}

// NewSeries copies rows into a new Series and fingerprints its content.
func NewSeries(rows []LiquidityDataPoint) Series {
	cp := make([]LiquidityDataPoint, len(rows))
	copy(cp, rows)

	h := xxhash.New()
	enc := json.NewEncoder(h)
	for i := range cp {
		// LiquidityDataPoint holds only strings and numbers; Encode cannot fail.
		_ = enc.Encode(&cp[i])
	}
	return Series{rows: cp, fingerprint: strconv.FormatUint(h.Sum64(), 16)}
}

// Len returns the number of rows.
func (s Series) Len() int { return len(s.rows) }

// At returns the i-th row.
func (s Series) At(i int) LiquidityDataPoint { return s.rows[i] }

// First returns the base-period row. ok is false for an empty series.
func (s Series) First() (LiquidityDataPoint, bool) {
	if len(s.rows) == 0 {
		return LiquidityDataPoint{}, false
	}
	return s.rows[0], true
}

// Last returns the most recent row. ok is false for an empty series.
func (s Series) Last() (LiquidityDataPoint, bool) {
	if len(s.rows) == 0 {
		return LiquidityDataPoint{}, false
	}
	return s.rows[len(s.rows)-1], true
}

// Rows returns a copy of all rows.
func (s Series) Rows() []LiquidityDataPoint {
	cp := make([]LiquidityDataPoint, len(s.rows))
	copy(cp, s.rows)
	return cp
}

// Fingerprint identifies the series content; equal content yields equal fingerprints.
func (s Series) Fingerprint() string { return s.fingerprint }

// SpanYears is the horizon between the first and last rows in years.
func (s Series) SpanYears() float64 {
	first, ok := s.First()
	if !ok {
		return 0
	}
	last, _ := s.Last()
	return float64(last.Ordinal()-first.Ordinal()) / 12
}

// LastYears returns the rows within the last n calendar years of the series.
// For an annual series this is the last n rows.
func (s Series) LastYears(n int) []LiquidityDataPoint {
	last, ok := s.Last()
	if !ok || n <= 0 {
		return []LiquidityDataPoint{}
	}
	cutoff := last.Year - n
	i := len(s.rows)
	for i > 0 && s.rows[i-1].Year > cutoff {
		i--
	}
	cp := make([]LiquidityDataPoint, len(s.rows)-i)
	copy(cp, s.rows[i:])
	return cp
}

// Lookup finds the row at the given monthly ordinal.
func (s Series) Lookup(ordinal int) (LiquidityDataPoint, bool) {
	lo, hi := 0, len(s.rows)
	for lo < hi {
		mid := (lo + hi) / 2
		switch o := s.rows[mid].Ordinal(); {
		case o == ordinal:
			return s.rows[mid], true
		case o < ordinal:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return LiquidityDataPoint{}, false
}
