package models

// Requests for the series HTTP endpoints.

type SeriesRequest struct {
	Range string `query:"range" json:"range" default:"ALL" validate:"oneof=10Y 25Y 50Y ALL"`
}

// RangeYears maps a range preset to its span in years; 0 means everything.
func RangeYears(r string) int {
	switch r {
	case "10Y":
		return 10
	case "25Y":
		return 25
	case "50Y":
		return 50
	default:
		return 0
	}
}

// SeriesPage is the response body of the series endpoint.
type SeriesPage struct {
	Range string               `json:"range"`
	Count int                  `json:"count"`
	Rows  []LiquidityDataPoint `json:"rows"`
}
