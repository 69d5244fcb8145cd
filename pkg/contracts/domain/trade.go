package domain

// TradeType distinguishes import and export flows.
type TradeType string

const (
	TradeTypeImport TradeType = "import"
	TradeTypeExport TradeType = "export"
)

// IsValid checks if the trade type is one of the known flows.
func (t TradeType) IsValid() bool {
	return t == TradeTypeImport || t == TradeTypeExport
}

// TradeRecord is the atomic unit of the pipeline: one country's trade value
// for a year (and optionally a single month) in one flow direction.
// Records are value objects; stages return new slices and never mutate
// their inputs after returning.
type TradeRecord struct {
	Country      string    `json:"country"`
	Year         int       `json:"year"`
	Month        int       `json:"month,omitempty"` // 0 for annual records
	TradeType    TradeType `json:"trade_type"`
	ValueNominal float64   `json:"value"`
	ValueReal    Measure   `json:"value_real"`
	Share        Measure   `json:"share"`
	SharePct     Measure   `json:"share_pct"`
	YoYGrowth    Measure   `json:"yoy_growth"`
	YoYGrowthPct Measure   `json:"yoy_growth_pct"`
	Period       string    `json:"period,omitempty"`
	IsYTD        bool      `json:"is_ytd"`
	MonthCount   int       `json:"month_count"`
	LastMonth    int       `json:"last_month"`
}

// IsValid checks the basic record invariants.
func (r TradeRecord) IsValid() bool {
	return r.Country != "" && r.Year > 0 && r.ValueNominal >= 0 &&
		r.Month >= 0 && r.Month <= 12 &&
		r.MonthCount >= 0 && r.MonthCount <= 12 &&
		r.LastMonth >= 0 && r.LastMonth <= 12
}

// AnnualAggregate is a country-year total derived from monthly records.
// MonthCount counts the distinct months present; LastMonth is the highest
// month index present. They coincide only when months are contiguous from
// January, and no gap checking is performed.
type AnnualAggregate struct {
	Country      string    `json:"country"`
	Year         int       `json:"year"`
	TradeType    TradeType `json:"trade_type"`
	ValueNominal float64   `json:"value"`
	MonthCount   int       `json:"month_count"`
	LastMonth    int       `json:"last_month"`
	IsYTD        bool      `json:"is_ytd"`
}

// IsValid checks the aggregate invariants, including IsYTD consistency.
func (a AnnualAggregate) IsValid() bool {
	return a.Country != "" && a.Year > 0 && a.ValueNominal >= 0 &&
		a.MonthCount >= 1 && a.MonthCount <= 12 &&
		a.LastMonth >= 1 && a.LastMonth <= 12 &&
		a.IsYTD == (a.MonthCount < 12)
}
