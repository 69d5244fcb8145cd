package analysis

import (
	"tradepulse/pkg/contracts/domain"
)

// Concentration classifies an HHI value using the accepted economic
// convention. The thresholds are fixed constants of the metric, not
// per-call knobs.
type Concentration string

const (
	Unconcentrated Concentration = "Unconcentrated"
	Moderate       Concentration = "Moderate"
	Concentrated   Concentration = "Concentrated"

	// HHI classification thresholds.
	ModerateThreshold     = 1500.0
	ConcentratedThreshold = 2500.0
)

// HHIRecord is the Herfindahl-Hirschman Index for one
// (year, trade type) group. HHI ranges from 0 to 10,000; exactly 10,000
// means a single country holds 100% of the flow.
type HHIRecord struct {
	Year          int              `json:"year"`
	TradeType     domain.TradeType `json:"trade_type,omitempty"`
	HHI           float64          `json:"hhi"`
	Concentration Concentration    `json:"concentration"`
}

// ComparisonRow compares one country between the two endpoint years of
// a shift analysis. Shares at each endpoint come from that year's own
// total. RankChange = RankStart - RankEnd, so positive means the country
// rose in rank.
type ComparisonRow struct {
	Country        string         `json:"country"`
	ValueStart     float64        `json:"value_start"`
	ValueEnd       float64        `json:"value_end"`
	ValueChange    float64        `json:"value_change"`
	ShareStart     float64        `json:"share_start"`
	ShareEnd       float64        `json:"share_end"`
	ShareChange    float64        `json:"share_change"`
	ValueGrowthPct domain.Measure `json:"value_growth_pct"`
	RankStart      int            `json:"rank_start"`
	RankEnd        int            `json:"rank_end"`
	RankChange     int            `json:"rank_change"`
}

// ShiftSummary aggregates the totals of a shift analysis.
type ShiftSummary struct {
	TotalStart        float64        `json:"total_start"`
	TotalEnd          float64        `json:"total_end"`
	AbsoluteGrowth    float64        `json:"absolute_growth"`
	PercentGrowth     domain.Measure `json:"percent_growth"`
	CountryCountStart int            `json:"country_count_start"`
	CountryCountEnd   int            `json:"country_count_end"`
}

// ShiftResult is the full output of a before/after comparison between
// two years: every country present in either endpoint, top movers by
// share change, and the aggregate summary.
type ShiftResult struct {
	StartYear int             `json:"start_year"`
	EndYear   int             `json:"end_year"`
	Rows      []ComparisonRow `json:"rows"`    // sorted by end-year value descending
	Gainers   []ComparisonRow `json:"gainers"` // top N by share change
	Losers    []ComparisonRow `json:"losers"`  // bottom N by share change
	Summary   ShiftSummary    `json:"summary"`
}

// EmergingPartner is a country whose trade grew past the screening
// thresholds over the lookback window.
type EmergingPartner struct {
	Country    string  `json:"country"`
	StartValue float64 `json:"start_value"`
	EndValue   float64 `json:"end_value"`
	GrowthPct  float64 `json:"growth_pct"`
	EndShare   float64 `json:"end_share"`
}

// EmergingOptions configures the emerging-partner screen.
type EmergingOptions struct {
	LookbackYears   int     `json:"lookback_years"`
	GrowthThreshold float64 `json:"growth_threshold"` // percent
	MinFinalShare   float64 `json:"min_final_share"`  // percent
}

// DefaultEmergingOptions returns the standard screening parameters.
func DefaultEmergingOptions() EmergingOptions {
	return EmergingOptions{
		LookbackYears:   10,
		GrowthThreshold: 100,
		MinFinalShare:   1.0,
	}
}

// TradeBalance is exports minus imports for one country-year.
type TradeBalance struct {
	Country      string         `json:"country"`
	Year         int            `json:"year"`
	Imports      float64        `json:"imports"`
	Exports      float64        `json:"exports"`
	Balance      float64        `json:"balance"`
	TotalTrade   float64        `json:"total_trade"`
	BalanceRatio domain.Measure `json:"balance_ratio"`
}

// Period is a named year range, inclusive on both ends.
type Period struct {
	Name  string `json:"name"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// PeriodAggregate summarizes one country's trade over a named period.
type PeriodAggregate struct {
	Period         string  `json:"period"`
	Country        string  `json:"country"`
	TotalValue     float64 `json:"total_value"`
	AvgYearlyValue float64 `json:"avg_yearly_value"`
	StartYear      int     `json:"start_year"` // first year with data in the period
	EndYear        int     `json:"end_year"`   // last year with data in the period
	Years          int     `json:"years"`      // count of years with data
}
