package models

import (
	"strconv"
	"time"
)

// Monetary figures are in trillions of USD unless noted otherwise.

// AnnualSnapshot is a hand-authored year-end anchor of monetary aggregates.
type AnnualSnapshot struct {
	Year    int
	M2US    float64
	M2EU    float64 // pre-euro: aggregate of major European economies
	M2Japan float64
	M2China float64
	FedBS   float64
	ECBBS   float64 // pre-ECB: aggregate European central banks
	BoJBS   float64
	PBoCBS  float64
	TGA     float64
	RRP     float64
	GoldUSD float64 // USD per troy ounce
}

// M2Global sums the four regional money-supply aggregates.
func (s AnnualSnapshot) M2Global() float64 {
	return s.M2US + s.M2EU + s.M2Japan + s.M2China
}

// CBTotal sums the four central-bank balance sheets.
func (s AnnualSnapshot) CBTotal() float64 {
	return s.FedBS + s.ECBBS + s.BoJBS + s.PBoCBS
}

// AssetSnapshot is a year-end anchor for asset-class valuations.
type AssetSnapshot struct {
	Year           int
	SP500          float64 // index level
	EquitiesMcap   float64
	BondsMcap      float64
	RealEstateMcap float64
	BitcoinMcap    float64
	GoldTonnes     float64 // above-ground stock, metric tonnes
}

// Phase carries the monthly dynamics of one simulated calendar year.
type Phase struct {
	Year  int
	Name  string
	Rates MonthlyRates
	// NoiseAmp is the half-width of the uniform noise added to every growth rate.
	NoiseAmp  float64
	TGATarget float64
	TGAJitter float64
	RRPTarget float64
	RRPJitter float64
}

// MonthlyRates are compounded monthly growth rates per aggregate.
type MonthlyRates struct {
	M2US    float64
	M2EU    float64
	M2Japan float64
	M2China float64
	FedBS   float64
	ECBBS   float64
	BoJBS   float64
	PBoCBS  float64
	GoldUSD float64
}

// LiquidityDataPoint is one emitted row of the synthesized series.
type LiquidityDataPoint struct {
	Date  string `json:"date"`
	Year  int    `json:"year"`
	Month int    `json:"month,omitempty"` // 0 for annual rows

	M2US     float64 `json:"m2_us"`
	M2EU     float64 `json:"m2_eu"`
	M2Japan  float64 `json:"m2_japan"`
	M2China  float64 `json:"m2_china"`
	M2Global float64 `json:"m2_global"`

	FedBS   float64 `json:"fed_bs"`
	ECBBS   float64 `json:"ecb_bs"`
	BoJBS   float64 `json:"boj_bs"`
	PBoCBS  float64 `json:"pboc_bs"`
	CBTotal float64 `json:"cb_total"`

	TGA              float64 `json:"tga"`
	RRP              float64 `json:"rrp"`
	NetLiquidity     float64 `json:"net_liquidity"`
	DenominatorIndex float64 `json:"denominator_index"`

	GoldUSD   float64 `json:"gold_usd"`
	GoldReal  float64 `json:"gold_real"`
	GoldIndex float64 `json:"gold_index"`

	// Extension fields, zero when no asset table is configured.
	SP500               float64 `json:"sp500,omitempty"`
	SP500Index          float64 `json:"sp500_index,omitempty"`
	EquitiesMcap        float64 `json:"equities_mcap,omitempty"`
	BondsMcap           float64 `json:"bonds_mcap,omitempty"`
	RealEstateMcap      float64 `json:"realestate_mcap,omitempty"`
	GoldMcap            float64 `json:"gold_mcap,omitempty"`
	BitcoinMcap         float64 `json:"bitcoin_mcap,omitempty"`
	EquitiesWealthPct   float64 `json:"equities_wealth_pct,omitempty"`
	BondsWealthPct      float64 `json:"bonds_wealth_pct,omitempty"`
	RealEstateWealthPct float64 `json:"realestate_wealth_pct,omitempty"`
	GoldWealthPct       float64 `json:"gold_wealth_pct,omitempty"`
	BitcoinWealthPct    float64 `json:"bitcoin_wealth_pct,omitempty"`
	GoldCapturePct      float64 `json:"gold_capture_pct,omitempty"`
}

// Ordinal returns the row position on a monthly timeline. Annual rows are
// year-end figures and sit on December.
func (p LiquidityDataPoint) Ordinal() int {
	if p.Month == 0 {
		return p.Year*12 + 11
	}
	return p.Year*12 + p.Month - 1
}

// IsMonthly reports whether the row was produced by the monthly simulation.
func (p LiquidityDataPoint) IsMonthly() bool { return p.Month != 0 }

// AnnualLabel is the date label of an annual row, e.g. "1913".
func AnnualLabel(year int) string { return strconv.Itoa(year) }

// MonthlyLabel is the date label of a monthly row, e.g. "Jan 2020".
func MonthlyLabel(year, month int) string {
	return time.Month(month).String()[:3] + " " + strconv.Itoa(year)
}
