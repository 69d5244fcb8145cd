package transform

import (
	"tradepulse/pkg/contracts/domain"
)

// CalculateShares computes each country's share of total trade within
// its (year, trade type) partition, on the real-value basis. The
// partition total is recomputed dynamically from the records present;
// a hardcoded "world total" row would go stale the moment any single
// country value is corrected.
//
// Records whose real value is missing (deflator gap) get a missing
// share and are excluded from the denominator, so the partitions that
// do have deflators still sum to 100.
func CalculateShares(records []domain.TradeRecord) []domain.TradeRecord {
	type key struct {
		year      int
		tradeType domain.TradeType
	}

	totals := make(map[key]float64)
	for _, r := range records {
		if r.ValueReal.IsDefined() {
			totals[key{r.Year, r.TradeType}] += r.ValueReal.Value
		}
	}

	out := make([]domain.TradeRecord, len(records))
	for i, r := range records {
		if !r.ValueReal.IsDefined() {
			r.Share = domain.Missing()
			r.SharePct = domain.Missing()
		} else if total := totals[key{r.Year, r.TradeType}]; total == 0 {
			r.Share = domain.Undefined()
			r.SharePct = domain.Undefined()
		} else {
			share := r.ValueReal.Value / total
			r.Share = domain.Defined(share)
			r.SharePct = domain.Defined(share * 100)
		}
		out[i] = r
	}
	return out
}
