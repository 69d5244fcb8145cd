package dataset

import (
	"sort"

	"tradepulse/pkg/contracts/domain"
)

// Merge combines historical annual aggregates with monthly-derived
// ones. The monthly-derived side is authoritative for every year it
// covers: the cutoff is one year before its earliest year, historical
// rows are kept only at or below the cutoff, and kept rows are stamped
// as complete years (IsYTD false, twelve months, last month December).
// With no monthly-derived data the historical side is kept whole.
func Merge(historical, monthlyAnnual []domain.AnnualAggregate) []domain.AnnualAggregate {
	cutoff := 0
	if len(monthlyAnnual) > 0 {
		minYear := monthlyAnnual[0].Year
		for _, a := range monthlyAnnual[1:] {
			if a.Year < minYear {
				minYear = a.Year
			}
		}
		cutoff = minYear - 1
	}

	out := make([]domain.AnnualAggregate, 0, len(historical)+len(monthlyAnnual))
	for _, h := range historical {
		if len(monthlyAnnual) > 0 && h.Year > cutoff {
			continue
		}
		h.IsYTD = false
		h.MonthCount = 12
		h.LastMonth = 12
		out = append(out, h)
	}
	out = append(out, monthlyAnnual...)

	sort.Slice(out, func(i, j int) bool {
		if out[i].Country != out[j].Country {
			return out[i].Country < out[j].Country
		}
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].TradeType < out[j].TradeType
	})

	return out
}

// RecordsFromAggregates lifts annual aggregates into pipeline records.
// Derived measures start undefined; the transform stages fill them in.
func RecordsFromAggregates(aggregates []domain.AnnualAggregate) []domain.TradeRecord {
	out := make([]domain.TradeRecord, 0, len(aggregates))
	for _, a := range aggregates {
		out = append(out, domain.TradeRecord{
			Country:      a.Country,
			Year:         a.Year,
			TradeType:    a.TradeType,
			ValueNominal: a.ValueNominal,
			ValueReal:    domain.Undefined(),
			Share:        domain.Undefined(),
			SharePct:     domain.Undefined(),
			YoYGrowth:    domain.Undefined(),
			YoYGrowthPct: domain.Undefined(),
			IsYTD:        a.IsYTD,
			MonthCount:   a.MonthCount,
			LastMonth:    a.LastMonth,
		})
	}
	return out
}

// FilterByTradeType returns the records of one flow direction.
func FilterByTradeType(records []domain.TradeRecord, tradeType domain.TradeType) []domain.TradeRecord {
	out := make([]domain.TradeRecord, 0, len(records))
	for _, r := range records {
		if r.TradeType == tradeType {
			out = append(out, r)
		}
	}
	return out
}
