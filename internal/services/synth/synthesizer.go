// Package synth builds the global liquidity series from sparse anchor snapshots.
//
// Between anchors every aggregate grows at a constant compounded rate. In hybrid
// mode the years after the anchor cut-over are simulated month by month from
// per-year phases with seeded noise, so the same seed always yields the same series.
package synth

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"Denominator/internal/domain/models"
)

// Mode selects the granularity of the generated series.
type Mode string

const (
	ModeAnnual Mode = "annual"
	ModeHybrid Mode = "hybrid"
)

// ParseMode validates a raw mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeAnnual, ModeHybrid:
		return m, nil
	default:
		return "", fmt.Errorf("unknown series mode %q", s)
	}
}

const (
	WeightM2 = 0.6
	WeightCB = 0.4

	// OuncesPerTonne converts metric tonnes to troy ounces.
	OuncesPerTonne = 32150.7466

	// DefaultNoiseAmp is the per-field monthly noise half-width (0.15%).
	DefaultNoiseAmp = 0.0015

	DefaultSimStart = 2020
	DefaultSimEnd   = 2025

	annualPlaces  int32 = 3
	monthlyPlaces int32 = 2
)

var (
	ErrNoAnchors     = errors.New("synth: anchor table is empty")
	ErrAnchorOrder   = errors.New("synth: anchor years must be strictly increasing")
	ErrAnchorValue   = errors.New("synth: anchor value out of range")
	ErrAssetCoverage = errors.New("synth: asset anchors do not cover the series horizon")
	ErrSimulation    = errors.New("synth: invalid monthly simulation")
	ErrOutOfRange    = errors.New("synth: period outside anchor horizon")
)

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithAssets enables the asset-class extension fields.
func WithAssets(assets []models.AssetSnapshot) Option {
	return func(s *Synthesizer) {
		s.assets = append([]models.AssetSnapshot(nil), assets...)
	}
}

// WithMonthlySimulation switches to hybrid mode: annual rows up to start-1,
// then monthly rows from January of start through December of end.
func WithMonthlySimulation(phases []models.Phase, start, end int) Option {
	return func(s *Synthesizer) {
		s.mode = ModeHybrid
		s.simStart = start
		s.simEnd = end
		s.phases = make(map[int]models.Phase, len(phases))
		for _, ph := range phases {
			s.phases[ph.Year] = ph
		}
	}
}

// WithSeed sets the base seed; each phase draws from seed+year.
func WithSeed(seed uint32) Option {
	return func(s *Synthesizer) { s.seed = seed }
}

// WithRandFactory replaces the LCG used for monthly noise.
func WithRandFactory(f RandFactory) Option {
	return func(s *Synthesizer) {
		if f != nil {
			s.newRand = f
		}
	}
}

// Synthesizer turns anchor tables into a gap-free series. It is immutable once built.
type Synthesizer struct {
	anchors    []models.AnnualSnapshot
	years      []int
	assets     []models.AssetSnapshot
	assetYears []int
	phases     map[int]models.Phase

	mode     Mode
	simStart int
	simEnd   int
	seed     uint32
	newRand  RandFactory

	baseM2    float64
	baseCB    float64
	baseGold  float64
	baseSP500 float64
}

// New validates the tables and returns a Synthesizer. Malformed tables are
// configuration errors and fail here, never at generation time.
func New(anchors []models.AnnualSnapshot, opts ...Option) (*Synthesizer, error) {
	s := &Synthesizer{
		anchors: append([]models.AnnualSnapshot(nil), anchors...),
		mode:    ModeAnnual,
		seed:    DefaultSeed,
		newRand: newLCGRand,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.validateAnchors(); err != nil {
		return nil, err
	}
	if s.mode == ModeHybrid {
		if err := s.validateSimulation(); err != nil {
			return nil, err
		}
	}
	if len(s.assets) > 0 {
		if err := s.validateAssets(); err != nil {
			return nil, err
		}
	}

	base := s.anchors[0]
	s.baseM2 = base.M2Global()
	s.baseCB = base.CBTotal()
	s.baseGold = base.GoldUSD
	if len(s.assets) > 0 {
		s.baseSP500 = s.assetsAt(float64(base.Year)).SP500
	}
	return s, nil
}

// MustNew is New for compiled-in tables; it panics on a configuration error.
func MustNew(anchors []models.AnnualSnapshot, opts ...Option) *Synthesizer {
	s, err := New(anchors, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Mode reports the granularity this synthesizer emits.
func (s *Synthesizer) Mode() Mode { return s.mode }

// Seed reports the base seed of the monthly simulation.
func (s *Synthesizer) Seed() uint32 { return s.seed }

// Anchors returns a copy of the anchor table.
func (s *Synthesizer) Anchors() []models.AnnualSnapshot {
	return append([]models.AnnualSnapshot(nil), s.anchors...)
}

// Interpolate realizes unrounded liquidity levels at period p (fractional years allowed).
// Anchor years return the anchor's raw values.
func (s *Synthesizer) Interpolate(p float64) (models.AnnualSnapshot, error) {
	if !(p >= float64(s.years[0]) && p <= float64(s.years[len(s.years)-1])) {
		return models.AnnualSnapshot{}, fmt.Errorf("%w: %v", ErrOutOfRange, p)
	}
	return s.levelsAt(p), nil
}

// Generate builds the full series. Every call returns identical content.
func (s *Synthesizer) Generate() models.Series {
	lastAnnual, months := s.years[len(s.years)-1], 0
	if s.mode == ModeHybrid {
		lastAnnual, months = s.simStart-1, 12*(s.simEnd-s.simStart+1)
	}

	rows := make([]models.LiquidityDataPoint, 0, lastAnnual-s.years[0]+1+months)
	for y := s.years[0]; y <= lastAnnual; y++ {
		p := float64(y)
		rows = append(rows, s.emit(models.AnnualLabel(y), y, 0, s.levelsAt(p), p, annualPlaces))
	}
	if s.mode == ModeHybrid {
		rows = s.simulate(rows)
	}
	return models.NewSeries(rows)
}

// simulate appends monthly rows, carrying state multiplicatively from the
// levels at simStart-1.
func (s *Synthesizer) simulate(rows []models.LiquidityDataPoint) []models.LiquidityDataPoint {
	st := s.levelsAt(float64(s.simStart - 1))

	for y := s.simStart; y <= s.simEnd; y++ {
		ph := s.phases[y]
		rng := s.newRand(s.seed + uint32(y))
		r, amp := ph.Rates, ph.NoiseAmp

		for m := 1; m <= 12; m++ {
			st.M2US *= 1 + r.M2US + symmetric(rng, amp)
			st.M2EU *= 1 + r.M2EU + symmetric(rng, amp)
			st.M2Japan *= 1 + r.M2Japan + symmetric(rng, amp)
			st.M2China *= 1 + r.M2China + symmetric(rng, amp)
			st.FedBS *= 1 + r.FedBS + symmetric(rng, amp)
			st.ECBBS *= 1 + r.ECBBS + symmetric(rng, amp)
			st.BoJBS *= 1 + r.BoJBS + symmetric(rng, amp)
			st.PBoCBS *= 1 + r.PBoCBS + symmetric(rng, amp)
			st.GoldUSD *= 1 + r.GoldUSD + symmetric(rng, amp)
			st.TGA = math.Max(0, ph.TGATarget+symmetric(rng, ph.TGAJitter))
			st.RRP = math.Max(0, ph.RRPTarget+symmetric(rng, ph.RRPJitter))
			st.Year = y

			p := float64(y-1) + float64(m)/12
			rows = append(rows, s.emit(models.MonthlyLabel(y, m), y, m, st, p, monthlyPlaces))
		}
	}
	return rows
}

// emit derives the composite fields from unrounded levels and rounds for output.
func (s *Synthesizer) emit(label string, year, month int, lv models.AnnualSnapshot, p float64, places int32) models.LiquidityDataPoint {
	m2 := lv.M2Global()
	cb := lv.CBTotal()
	net := lv.FedBS - lv.TGA - lv.RRP
	idx := ((m2/s.baseM2)*WeightM2 + (cb/s.baseCB)*WeightCB) * 100
	goldIdx := lv.GoldUSD / s.baseGold * 100

	row := models.LiquidityDataPoint{
		Date:             label,
		Year:             year,
		Month:            month,
		M2US:             round(lv.M2US, places),
		M2EU:             round(lv.M2EU, places),
		M2Japan:          round(lv.M2Japan, places),
		M2China:          round(lv.M2China, places),
		M2Global:         round(m2, places),
		FedBS:            round(lv.FedBS, places),
		ECBBS:            round(lv.ECBBS, places),
		BoJBS:            round(lv.BoJBS, places),
		PBoCBS:           round(lv.PBoCBS, places),
		CBTotal:          round(cb, places),
		TGA:              round(lv.TGA, places),
		RRP:              round(lv.RRP, places),
		NetLiquidity:     round(net, places),
		DenominatorIndex: round(idx, 1),
		GoldUSD:          round(lv.GoldUSD, 0),
		GoldReal:         round(lv.GoldUSD/(idx/100), 2),
		GoldIndex:        round(goldIdx, 1),
	}
	if len(s.assets) == 0 {
		return row
	}

	as := s.assetsAt(p)
	goldMcap := lv.GoldUSD * as.GoldTonnes * OuncesPerTonne / 1e12
	total := as.EquitiesMcap + as.BondsMcap + as.RealEstateMcap + goldMcap + as.BitcoinMcap

	row.SP500 = round(as.SP500, 1)
	row.SP500Index = round(as.SP500/s.baseSP500*100, 1)
	row.EquitiesMcap = round(as.EquitiesMcap, places)
	row.BondsMcap = round(as.BondsMcap, places)
	row.RealEstateMcap = round(as.RealEstateMcap, places)
	row.GoldMcap = round(goldMcap, places)
	row.BitcoinMcap = round(as.BitcoinMcap, places)
	row.EquitiesWealthPct = round(share(as.EquitiesMcap, total), 2)
	row.BondsWealthPct = round(share(as.BondsMcap, total), 2)
	row.RealEstateWealthPct = round(share(as.RealEstateMcap, total), 2)
	row.GoldWealthPct = round(share(goldMcap, total), 2)
	row.BitcoinWealthPct = round(share(as.BitcoinMcap, total), 2)
	row.GoldCapturePct = round(goldIdx/idx*100, 2)
	return row
}

func (s *Synthesizer) levelsAt(p float64) models.AnnualSnapshot {
	if i, ok := exactYear(s.years, p); ok {
		return s.anchors[i]
	}
	i := bracket(s.years, p)
	return interpolateSnapshot(s.anchors[i], s.anchors[i+1], p)
}

func (s *Synthesizer) assetsAt(p float64) models.AssetSnapshot {
	if i, ok := exactYear(s.assetYears, p); ok {
		return s.assets[i]
	}
	i := bracket(s.assetYears, p)
	return interpolateAssets(s.assets[i], s.assets[i+1], p)
}

func (s *Synthesizer) horizonEnd() int {
	if s.mode == ModeHybrid {
		return s.simEnd
	}
	return s.years[len(s.years)-1]
}

func (s *Synthesizer) validateAnchors() error {
	if len(s.anchors) == 0 {
		return ErrNoAnchors
	}
	s.years = make([]int, len(s.anchors))
	for i, a := range s.anchors {
		if i > 0 && a.Year <= s.anchors[i-1].Year {
			return fmt.Errorf("%w: %d follows %d", ErrAnchorOrder, a.Year, s.anchors[i-1].Year)
		}
		for _, v := range []float64{a.M2US, a.M2EU, a.M2Japan, a.M2China, a.FedBS, a.ECBBS, a.BoJBS, a.PBoCBS, a.GoldUSD} {
			if !(v > 0) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: year %d has non-positive aggregate %v", ErrAnchorValue, a.Year, v)
			}
		}
		if !(a.TGA >= 0) || !(a.RRP >= 0) {
			return fmt.Errorf("%w: year %d has negative tga/rrp", ErrAnchorValue, a.Year)
		}
		s.years[i] = a.Year
	}
	return nil
}

func (s *Synthesizer) validateAssets() error {
	s.assetYears = make([]int, len(s.assets))
	for i, a := range s.assets {
		if i > 0 && a.Year <= s.assets[i-1].Year {
			return fmt.Errorf("%w: asset year %d follows %d", ErrAnchorOrder, a.Year, s.assets[i-1].Year)
		}
		for _, v := range []float64{a.SP500, a.EquitiesMcap, a.BondsMcap, a.RealEstateMcap, a.GoldTonnes} {
			if !(v > 0) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: asset year %d has non-positive value %v", ErrAnchorValue, a.Year, v)
			}
		}
		if !(a.BitcoinMcap >= 0) {
			return fmt.Errorf("%w: asset year %d has negative bitcoin cap", ErrAnchorValue, a.Year)
		}
		s.assetYears[i] = a.Year
	}
	if s.assetYears[0] > s.years[0] || s.assetYears[len(s.assetYears)-1] < s.horizonEnd() {
		return fmt.Errorf("%w: assets %d-%d, series %d-%d", ErrAssetCoverage,
			s.assetYears[0], s.assetYears[len(s.assetYears)-1], s.years[0], s.horizonEnd())
	}
	return nil
}

func (s *Synthesizer) validateSimulation() error {
	first, last := s.years[0], s.years[len(s.years)-1]
	if s.simStart-1 < first || s.simStart-1 > last {
		return fmt.Errorf("%w: start %d needs anchors covering %d", ErrSimulation, s.simStart, s.simStart-1)
	}
	if s.simEnd < s.simStart {
		return fmt.Errorf("%w: end %d before start %d", ErrSimulation, s.simEnd, s.simStart)
	}
	for y := s.simStart; y <= s.simEnd; y++ {
		ph, ok := s.phases[y]
		if !ok {
			return fmt.Errorf("%w: no phase for %d", ErrSimulation, y)
		}
		if ph.NoiseAmp < 0 || ph.TGATarget < 0 || ph.RRPTarget < 0 || ph.TGAJitter < 0 || ph.RRPJitter < 0 {
			return fmt.Errorf("%w: phase %d has negative parameters", ErrSimulation, y)
		}
		if err := validateRates(ph.Rates, ph.NoiseAmp); err != nil {
			return fmt.Errorf("%w: phase %d: %v", ErrSimulation, y, err)
		}
	}
	return nil
}

// validateRates rejects growth rates that could shrink a level to zero or below
// within one month once noise is applied.
func validateRates(r models.MonthlyRates, amp float64) error {
	if math.IsNaN(amp) || math.IsInf(amp, 0) {
		return fmt.Errorf("noise amplitude %v is not finite", amp)
	}
	rates := []struct {
		name string
		v    float64
	}{
		{"m2_us", r.M2US}, {"m2_eu", r.M2EU}, {"m2_japan", r.M2Japan}, {"m2_china", r.M2China},
		{"fed_bs", r.FedBS}, {"ecb_bs", r.ECBBS}, {"boj_bs", r.BoJBS}, {"pboc_bs", r.PBoCBS},
		{"gold_usd", r.GoldUSD},
	}
	for _, rate := range rates {
		if math.IsNaN(rate.v) || math.IsInf(rate.v, 0) {
			return fmt.Errorf("%s rate %v is not finite", rate.name, rate.v)
		}
		if rate.v-amp <= -1 {
			return fmt.Errorf("%s rate %v with noise %v can turn the level non-positive", rate.name, rate.v, amp)
		}
	}
	return nil
}

func share(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return part / total * 100
}

// round applies presentation rounding. Non-finite values collapse to zero.
func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
