package transform

import (
	"tradepulse/pkg/contracts/domain"
)

// AdjustForInflation rescales nominal values to the base year's real
// basis: value_real = value_nominal * (deflator[base] / deflator[year]).
// A year absent from the table yields a Missing measure rather than an
// interpolated guess; inventing deflators would corrupt downstream
// share calculations invisibly, while a propagated gap degrades sums
// visibly. At the base year itself the ratio is exactly 1.
func AdjustForInflation(records []domain.TradeRecord, table domain.DeflatorTable, baseYear int) []domain.TradeRecord {
	base := table.BaseDeflator(baseYear)

	out := make([]domain.TradeRecord, len(records))
	for i, r := range records {
		deflator, ok := table[r.Year]
		if !ok || deflator == 0 {
			r.ValueReal = domain.Missing()
		} else if r.Year == baseYear {
			// Exact round trip at the base year, immune to ratio rounding.
			r.ValueReal = domain.Defined(r.ValueNominal)
		} else {
			r.ValueReal = domain.Defined(r.ValueNominal * (base / deflator))
		}
		out[i] = r
	}
	return out
}
