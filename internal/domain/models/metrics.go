package models

import "fmt"

// ChangePolicy selects how scorecard changes are computed. A deployment uses one.
type ChangePolicy string

const (
	ChangeCAGR ChangePolicy = "cagr"
	ChangeYoY  ChangePolicy = "yoy"
)

// ParseChangePolicy validates a raw policy name.
func ParseChangePolicy(s string) (ChangePolicy, error) {
	switch p := ChangePolicy(s); p {
	case ChangeCAGR, ChangeYoY:
		return p, nil
	default:
		return "", fmt.Errorf("unknown change policy %q", s)
	}
}

// Metric is one headline scorecard.
type Metric struct {
	Value  float64 `json:"value"`
	Change float64 `json:"change"`
	Label  string  `json:"label"`
	Unit   string  `json:"unit"`
}

// Metrics is the scorecard set derived from a series.
type Metrics struct {
	Policy           ChangePolicy `json:"policy"`
	M2Global         Metric       `json:"m2Global"`
	CBTotal          Metric       `json:"cbTotal"`
	NetLiquidity     Metric       `json:"netLiquidity"`
	DenominatorIndex Metric       `json:"denominatorIndex"`
}

// ByName returns the scorecards keyed by metric name.
func (m Metrics) ByName() map[string]Metric {
	return map[string]Metric{
		"m2Global":         m.M2Global,
		"cbTotal":          m.CBTotal,
		"netLiquidity":     m.NetLiquidity,
		"denominatorIndex": m.DenominatorIndex,
	}
}
