package monthly

import (
	"sort"

	"tradepulse/pkg/contracts/domain"
)

// AggregateAnnual collapses long monthly records to one aggregate per
// (country, year, trade type): value summed over months present,
// MonthCount the number of distinct months, LastMonth the highest month
// index, IsYTD set when fewer than 12 months are present. No
// interpolation or extrapolation occurs here; Annualize is a separate,
// opt-in step.
func AggregateAnnual(values []Value) []domain.AnnualAggregate {
	type key struct {
		country   string
		year      int
		tradeType domain.TradeType
	}

	type acc struct {
		sum    float64
		months map[int]struct{}
	}

	groups := make(map[key]*acc)
	for _, v := range values {
		k := key{v.Country, v.Year, v.TradeType}
		a, ok := groups[k]
		if !ok {
			a = &acc{months: make(map[int]struct{})}
			groups[k] = a
		}
		a.sum += v.Value
		a.months[v.Month] = struct{}{}
	}

	aggregates := make([]domain.AnnualAggregate, 0, len(groups))
	for k, a := range groups {
		lastMonth := 0
		for m := range a.months {
			if m > lastMonth {
				lastMonth = m
			}
		}
		aggregates = append(aggregates, domain.AnnualAggregate{
			Country:      k.country,
			Year:         k.year,
			TradeType:    k.tradeType,
			ValueNominal: a.sum,
			MonthCount:   len(a.months),
			LastMonth:    lastMonth,
			IsYTD:        len(a.months) < 12,
		})
	}

	sort.Slice(aggregates, func(i, j int) bool {
		if aggregates[i].Country != aggregates[j].Country {
			return aggregates[i].Country < aggregates[j].Country
		}
		if aggregates[i].Year != aggregates[j].Year {
			return aggregates[i].Year < aggregates[j].Year
		}
		return aggregates[i].TradeType < aggregates[j].TradeType
	})

	return aggregates
}

// Annualize scales each aggregate by 12/MonthCount to estimate a
// full-year value. This is never applied automatically: auto-annualizing
// would bias comparisons with already-complete years if forgotten, so
// the caller must opt in. YTD bookkeeping fields are preserved.
func Annualize(aggregates []domain.AnnualAggregate) []domain.AnnualAggregate {
	out := make([]domain.AnnualAggregate, len(aggregates))
	for i, a := range aggregates {
		if a.MonthCount > 0 && a.MonthCount < 12 {
			a.ValueNominal = a.ValueNominal * 12 / float64(a.MonthCount)
		}
		out[i] = a
	}
	return out
}

// Scale multiplies each aggregate's value by the given factor, used to
// convert source units (e.g. billions) to actual currency amounts.
func Scale(aggregates []domain.AnnualAggregate, factor float64) []domain.AnnualAggregate {
	out := make([]domain.AnnualAggregate, len(aggregates))
	for i, a := range aggregates {
		a.ValueNominal *= factor
		out[i] = a
	}
	return out
}
