package synth

import (
	"math"

	"Denominator/internal/domain/models"
)

const (
	// Epsilon floors fields that may be zero before exponential interpolation.
	Epsilon = 0.0001
	// RRPStartYear is the first year the reverse-repo facility can carry a balance.
	RRPStartYear = 1980
	// BitcoinGenesisYear is the first year bitcoin can carry a market cap.
	BitcoinGenesisYear = 2010
)

// ExpInterp interpolates at a constant compounded rate: v1 * (v2/v1)^t.
func ExpInterp(v1, v2, t float64) float64 {
	if t == 0 || v1 == v2 {
		return v1
	}
	if t == 1 {
		return v2
	}
	return v1 * math.Pow(v2/v1, t)
}

// flooredInterp interpolates a field that may be zero at either end. Both ends
// at zero stay zero.
func flooredInterp(v1, v2, t float64) float64 {
	if v1 == 0 && v2 == 0 {
		return 0
	}
	return ExpInterp(math.Max(v1, Epsilon), math.Max(v2, Epsilon), t)
}

// bracket returns the index i of the anchor pair (xs[i], xs[i+1]) enclosing p.
// Callers guarantee len(xs) >= 2 and xs[0] <= p <= xs[len-1].
func bracket(years []int, p float64) int {
	for i := 0; i < len(years)-1; i++ {
		if p >= float64(years[i]) && p <= float64(years[i+1]) {
			return i
		}
	}
	return len(years) - 2
}

// exactYear reports whether p falls on a whole year present in years.
func exactYear(years []int, p float64) (int, bool) {
	if p != math.Trunc(p) {
		return 0, false
	}
	for i, y := range years {
		if float64(y) == p {
			return i, true
		}
	}
	return 0, false
}

// interpolateSnapshot realizes liquidity levels at period p between a and b.
func interpolateSnapshot(a, b models.AnnualSnapshot, p float64) models.AnnualSnapshot {
	t := (p - float64(a.Year)) / float64(b.Year-a.Year)

	rrp := 0.0
	if p >= RRPStartYear {
		rrp = flooredInterp(a.RRP, b.RRP, t)
	}
	return models.AnnualSnapshot{
		Year:    int(math.Floor(p)),
		M2US:    ExpInterp(a.M2US, b.M2US, t),
		M2EU:    ExpInterp(a.M2EU, b.M2EU, t),
		M2Japan: ExpInterp(a.M2Japan, b.M2Japan, t),
		M2China: ExpInterp(a.M2China, b.M2China, t),
		FedBS:   ExpInterp(a.FedBS, b.FedBS, t),
		ECBBS:   ExpInterp(a.ECBBS, b.ECBBS, t),
		BoJBS:   ExpInterp(a.BoJBS, b.BoJBS, t),
		PBoCBS:  ExpInterp(a.PBoCBS, b.PBoCBS, t),
		TGA:     flooredInterp(a.TGA, b.TGA, t),
		RRP:     rrp,
		GoldUSD: ExpInterp(a.GoldUSD, b.GoldUSD, t),
	}
}

// interpolateAssets realizes asset valuations at period p between a and b.
func interpolateAssets(a, b models.AssetSnapshot, p float64) models.AssetSnapshot {
	t := (p - float64(a.Year)) / float64(b.Year-a.Year)

	btc := 0.0
	if p >= BitcoinGenesisYear {
		btc = flooredInterp(a.BitcoinMcap, b.BitcoinMcap, t)
	}
	return models.AssetSnapshot{
		Year:           int(math.Floor(p)),
		SP500:          ExpInterp(a.SP500, b.SP500, t),
		EquitiesMcap:   ExpInterp(a.EquitiesMcap, b.EquitiesMcap, t),
		BondsMcap:      ExpInterp(a.BondsMcap, b.BondsMcap, t),
		RealEstateMcap: ExpInterp(a.RealEstateMcap, b.RealEstateMcap, t),
		BitcoinMcap:    btc,
		GoldTonnes:     ExpInterp(a.GoldTonnes, b.GoldTonnes, t),
	}
}
