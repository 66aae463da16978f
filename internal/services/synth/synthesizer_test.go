package synth

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Denominator/internal/domain/models"
)

// tolerance for a sum of n values each rounded to places, compared to the rounded total.
func tolerance(n int, places int) float64 {
	return float64(n+1) * 0.5 * math.Pow(10, -float64(places)) * 1.0001
}

func placesFor(p models.LiquidityDataPoint) int {
	if p.IsMonthly() {
		return int(monthlyPlaces)
	}
	return int(annualPlaces)
}

func newDefault(t *testing.T, hybrid bool) *Synthesizer {
	t.Helper()
	opts := []Option{WithAssets(AssetAnchors())}
	if hybrid {
		opts = append(opts, WithMonthlySimulation(SimulationPhases(), DefaultSimStart, DefaultSimEnd))
	}
	s, err := New(HistoricalAnchors(), opts...)
	require.NoError(t, err)
	return s
}

func TestGenerateAnnualCoversEveryYear(t *testing.T) {
	series := newDefault(t, false).Generate()

	require.Equal(t, 2025-1913+1, series.Len())
	first, _ := series.First()
	last, _ := series.Last()
	assert.Equal(t, "1913", first.Date)
	assert.Equal(t, "2025", last.Date)

	for i := 1; i < series.Len(); i++ {
		assert.Equal(t, 12, series.At(i).Ordinal()-series.At(i-1).Ordinal(), "gap at %s", series.At(i).Date)
	}
}

func TestGenerateHybridSwitchesToMonthly(t *testing.T) {
	series := newDefault(t, true).Generate()

	require.Equal(t, (2019-1913+1)+12*6, series.Len())

	prev := series.At(0)
	for i := 1; i < series.Len(); i++ {
		cur := series.At(i)
		step := 12
		if cur.IsMonthly() {
			step = 1
		}
		require.Equal(t, step, cur.Ordinal()-prev.Ordinal(), "gap between %s and %s", prev.Date, cur.Date)
		prev = cur
	}

	jan, ok := series.Lookup(2020*12 + 0)
	require.True(t, ok)
	assert.Equal(t, "Jan 2020", jan.Date)
	last, _ := series.Last()
	assert.Equal(t, "Dec 2025", last.Date)
}

func TestBaseRowIndexIsExactly100(t *testing.T) {
	for _, hybrid := range []bool{false, true} {
		first, ok := newDefault(t, hybrid).Generate().First()
		require.True(t, ok)
		assert.Equal(t, 100.0, first.DenominatorIndex)
		assert.Equal(t, 100.0, first.GoldIndex)
		assert.Equal(t, 100.0, first.SP500Index)
	}
}

// Derived fields are computed from unrounded levels and rounded once, so they may
// differ from the sum of the rounded parts by up to half a unit per term.
func TestDerivedFieldsMatchComponentsWithinEmissionRounding(t *testing.T) {
	for _, hybrid := range []bool{false, true} {
		series := newDefault(t, hybrid).Generate()
		for _, r := range series.Rows() {
			p := placesFor(r)
			assert.InDelta(t, r.M2US+r.M2EU+r.M2Japan+r.M2China, r.M2Global, tolerance(4, p), r.Date)
			assert.InDelta(t, r.FedBS+r.ECBBS+r.BoJBS+r.PBoCBS, r.CBTotal, tolerance(4, p), r.Date)
			assert.InDelta(t, r.FedBS-r.TGA-r.RRP, r.NetLiquidity, tolerance(3, p), r.Date)

			assert.GreaterOrEqual(t, r.M2Global, 0.0)
			assert.GreaterOrEqual(t, r.CBTotal, 0.0)
			assert.GreaterOrEqual(t, r.TGA, 0.0)
			assert.GreaterOrEqual(t, r.RRP, 0.0)
		}
	}
}

func TestInterpolateRoundTripsAnchors(t *testing.T) {
	s := newDefault(t, false)
	for _, a := range HistoricalAnchors() {
		got, err := s.Interpolate(float64(a.Year))
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	series := s.Generate()
	last, _ := series.Last()
	assert.Equal(t, 22.3, last.M2US)
	assert.Equal(t, 7.0, last.FedBS)
	assert.Equal(t, 2850.0, last.GoldUSD)
}

func TestInterpolateExponentialBetweenAnchors(t *testing.T) {
	anchors := []models.AnnualSnapshot{
		{Year: 1913, M2US: 0.020, M2EU: 0.025, M2Japan: 0.003, M2China: 0.002, FedBS: 0.001, ECBBS: 0.002, BoJBS: 0.001, PBoCBS: 0.001, TGA: 0.001, GoldUSD: 20.67},
		{Year: 1920, M2US: 0.034, M2EU: 0.050, M2Japan: 0.007, M2China: 0.003, FedBS: 0.006, ECBBS: 0.010, BoJBS: 0.002, PBoCBS: 0.001, TGA: 0.001, GoldUSD: 20.67},
	}
	s, err := New(anchors)
	require.NoError(t, err)

	got, err := s.Interpolate(1916)
	require.NoError(t, err)
	assert.InDelta(t, 0.020*math.Pow(0.034/0.020, 3.0/7.0), got.M2US, 1e-12)
	assert.InDelta(t, 0.025*math.Pow(2, 3.0/7.0), got.M2EU, 1e-12)
	assert.Equal(t, 0.0, got.RRP)

	_, err = s.Interpolate(1912)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = s.Interpolate(math.NaN())
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestRRPZeroBeforeFacility(t *testing.T) {
	series := newDefault(t, false).Generate()
	for _, r := range series.Rows() {
		if r.Year < RRPStartYear || r.Year == 2019 {
			assert.Zero(t, r.RRP, r.Date)
		}
	}

	// 2009 carries 0 and 2012 carries 0.10: the floor keeps interpolation finite.
	row2010 := series.At(2010 - 1913)
	assert.Equal(t, "2010", row2010.Date)
	assert.Greater(t, row2010.RRP, 0.0)
	assert.Less(t, row2010.RRP, 0.10)
}

func TestFlooredInterpHandlesZeros(t *testing.T) {
	assert.Zero(t, flooredInterp(0, 0, 0.5))
	v := flooredInterp(0, 1, 0.5)
	assert.False(t, math.IsNaN(v))
	assert.InDelta(t, math.Sqrt(Epsilon), v, 1e-12)
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := json.Marshal(newDefault(t, true).Generate().Rows())
	require.NoError(t, err)
	b, err := json.Marshal(newDefault(t, true).Generate().Rows())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	s1 := newDefault(t, true)
	first, second := s1.Generate(), s1.Generate()
	if diff := cmp.Diff(first.Rows(), second.Rows()); diff != "" {
		t.Errorf("repeated Generate differs (-first +second):\n%s", diff)
	}
	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
}

func TestSeedChangesMonthlyNoise(t *testing.T) {
	opts := func(seed uint32) []Option {
		return []Option{WithSeed(seed), WithMonthlySimulation(SimulationPhases(), DefaultSimStart, DefaultSimEnd)}
	}
	a := MustNew(HistoricalAnchors(), opts(1)...).Generate()
	b := MustNew(HistoricalAnchors(), opts(2)...).Generate()
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	// annual rows precede the simulation and do not depend on the seed
	assert.Equal(t, a.At(0), b.At(0))
	assert.Equal(t, a.At(2019-1913), b.At(2019-1913))
}

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func TestInjectedRandRemovesNoise(t *testing.T) {
	s := MustNew(HistoricalAnchors(),
		WithMonthlySimulation(SimulationPhases(), DefaultSimStart, DefaultSimEnd),
		WithRandFactory(func(uint32) Rand { return constRand(0.5) }),
	)
	series := s.Generate()

	jan, ok := series.Lookup(2020 * 12)
	require.True(t, ok)
	ph := SimulationPhases()[0]
	assert.Equal(t, round(15.3*(1+ph.Rates.M2US), 2), jan.M2US)
	assert.Equal(t, round(ph.TGATarget, 2), jan.TGA)
	assert.Equal(t, round(ph.RRPTarget, 2), jan.RRP)
}

func TestLCGSequence(t *testing.T) {
	g := NewLCG(42)
	assert.Equal(t, float64(1083814273)/4294967296, g.Float64())

	h := NewLCG(42)
	for i := 0; i < 1000; i++ {
		v := h.Float64()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestAssetExtensionFields(t *testing.T) {
	series := newDefault(t, false).Generate()
	for _, r := range series.Rows() {
		if r.Year < BitcoinGenesisYear {
			assert.Zero(t, r.BitcoinMcap, r.Date)
		}
		sum := r.EquitiesWealthPct + r.BondsWealthPct + r.RealEstateWealthPct + r.GoldWealthPct + r.BitcoinWealthPct
		assert.InDelta(t, 100, sum, 0.03, r.Date)
	}

	first, _ := series.First()
	assert.InDelta(t, 20.67*45000*OuncesPerTonne/1e12, first.GoldMcap, 0.0005)
	assert.Equal(t, 100.0, first.GoldCapturePct)
}

func TestAnnualWithoutAssetsLeavesExtensionsEmpty(t *testing.T) {
	series := MustNew(HistoricalAnchors()).Generate()
	last, _ := series.Last()
	assert.Zero(t, last.SP500)
	assert.Zero(t, last.GoldMcap)
	assert.NotZero(t, last.GoldReal)
}

func TestNewRejectsMalformedTables(t *testing.T) {
	good := HistoricalAnchors()

	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoAnchors)

	swapped := HistoricalAnchors()
	swapped[1], swapped[2] = swapped[2], swapped[1]
	_, err = New(swapped)
	assert.ErrorIs(t, err, ErrAnchorOrder)

	dup := append(HistoricalAnchors(), good[len(good)-1])
	_, err = New(dup)
	assert.ErrorIs(t, err, ErrAnchorOrder)

	neg := HistoricalAnchors()
	neg[3].M2US = 0
	_, err = New(neg)
	assert.ErrorIs(t, err, ErrAnchorValue)

	negTGA := HistoricalAnchors()
	negTGA[3].TGA = -1
	_, err = New(negTGA)
	assert.ErrorIs(t, err, ErrAnchorValue)

	_, err = New(good, WithMonthlySimulation(SimulationPhases()[:3], DefaultSimStart, DefaultSimEnd))
	assert.ErrorIs(t, err, ErrSimulation)

	_, err = New(good, WithMonthlySimulation(SimulationPhases(), 1900, 1901))
	assert.ErrorIs(t, err, ErrSimulation)

	shrinking := SimulationPhases()
	shrinking[0].Rates.FedBS = -1.5
	_, err = New(good, WithMonthlySimulation(shrinking, DefaultSimStart, DefaultSimEnd))
	assert.ErrorIs(t, err, ErrSimulation)

	noisy := SimulationPhases()
	noisy[2].Rates.M2China = -0.999
	noisy[2].NoiseAmp = 0.0015
	_, err = New(good, WithMonthlySimulation(noisy, DefaultSimStart, DefaultSimEnd))
	assert.ErrorIs(t, err, ErrSimulation)

	nan := SimulationPhases()
	nan[1].Rates.GoldUSD = math.NaN()
	_, err = New(good, WithMonthlySimulation(nan, DefaultSimStart, DefaultSimEnd))
	assert.ErrorIs(t, err, ErrSimulation)

	_, err = New(good, WithAssets(AssetAnchors()[1:]))
	assert.ErrorIs(t, err, ErrAssetCoverage)

	assert.Panics(t, func() { MustNew(nil) })
}

func TestSingleAnchorYieldsSingleRow(t *testing.T) {
	s, err := New(HistoricalAnchors()[:1])
	require.NoError(t, err)
	series := s.Generate()
	require.Equal(t, 1, series.Len())
	assert.Equal(t, 100.0, series.At(0).DenominatorIndex)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("hybrid")
	require.NoError(t, err)
	assert.Equal(t, ModeHybrid, m)

	_, err = ParseMode("monthly")
	assert.Error(t, err)
}
