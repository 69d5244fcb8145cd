package analysis

import (
	"sort"

	"tradepulse/pkg/contracts/domain"
)

// CalculateHHI computes the Herfindahl-Hirschman Index for every
// (year, trade type) group: the sum of squared percentage shares over
// all countries in the group. HHI is scale-invariant within a group, so
// nominal values serve regardless of the inflation basis.
func CalculateHHI(records []domain.TradeRecord) []HHIRecord {
	type key struct {
		year      int
		tradeType domain.TradeType
	}

	totals := make(map[key]float64)
	for _, r := range records {
		totals[key{r.Year, r.TradeType}] += r.ValueNominal
	}

	sums := make(map[key]float64)
	for _, r := range records {
		k := key{r.Year, r.TradeType}
		total := totals[k]
		if total == 0 {
			continue
		}
		share := 100 * r.ValueNominal / total
		sums[k] += share * share
	}

	out := make([]HHIRecord, 0, len(sums))
	for k, hhi := range sums {
		out = append(out, HHIRecord{
			Year:          k.year,
			TradeType:     k.tradeType,
			HHI:           hhi,
			Concentration: Classify(hhi),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].TradeType < out[j].TradeType
	})

	return out
}

// Classify maps an HHI value to its concentration category.
func Classify(hhi float64) Concentration {
	switch {
	case hhi < ModerateThreshold:
		return Unconcentrated
	case hhi < ConcentratedThreshold:
		return Moderate
	default:
		return Concentrated
	}
}
