package analysis

import (
	"sort"

	"tradepulse/pkg/contracts/domain"
)

// CalculateTradeBalance computes exports minus imports per country-year
// over two record sets. Countries present on only one side get zero for
// the other; the balance ratio is undefined when total trade is zero.
func CalculateTradeBalance(imports, exports []domain.TradeRecord) []TradeBalance {
	type key struct {
		country string
		year    int
	}

	importTotals := make(map[key]float64)
	for _, r := range imports {
		importTotals[key{r.Country, r.Year}] += r.ValueNominal
	}
	exportTotals := make(map[key]float64)
	for _, r := range exports {
		exportTotals[key{r.Country, r.Year}] += r.ValueNominal
	}

	keys := make(map[key]struct{}, len(importTotals)+len(exportTotals))
	for k := range importTotals {
		keys[k] = struct{}{}
	}
	for k := range exportTotals {
		keys[k] = struct{}{}
	}

	out := make([]TradeBalance, 0, len(keys))
	for k := range keys {
		imp := importTotals[k]
		exp := exportTotals[k]
		tb := TradeBalance{
			Country:    k.country,
			Year:       k.year,
			Imports:    imp,
			Exports:    exp,
			Balance:    exp - imp,
			TotalTrade: exp + imp,
		}
		if tb.TotalTrade == 0 {
			tb.BalanceRatio = domain.Undefined()
		} else {
			tb.BalanceRatio = domain.Defined(tb.Balance / tb.TotalTrade)
		}
		out = append(out, tb)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Country != out[j].Country {
			return out[i].Country < out[j].Country
		}
		return out[i].Year < out[j].Year
	})

	return out
}

// AggregateByPeriod sums and averages each country's trade over named
// year ranges. Year spans report the years actually present in the
// data, not the period bounds.
func AggregateByPeriod(records []domain.TradeRecord, periods []Period) []PeriodAggregate {
	type key struct {
		period  string
		country string
	}

	type acc struct {
		sum   float64
		years map[int]struct{}
		first int
		last  int
	}

	groups := make(map[key]*acc)
	order := make([]key, 0)

	for _, p := range periods {
		for _, r := range records {
			if r.Year < p.Start || r.Year > p.End {
				continue
			}
			k := key{p.Name, r.Country}
			a, ok := groups[k]
			if !ok {
				a = &acc{years: make(map[int]struct{}), first: r.Year, last: r.Year}
				groups[k] = a
				order = append(order, k)
			}
			a.sum += r.ValueNominal
			a.years[r.Year] = struct{}{}
			if r.Year < a.first {
				a.first = r.Year
			}
			if r.Year > a.last {
				a.last = r.Year
			}
		}
	}

	out := make([]PeriodAggregate, 0, len(order))
	for _, k := range order {
		a := groups[k]
		out = append(out, PeriodAggregate{
			Period:         k.period,
			Country:        k.country,
			TotalValue:     a.sum,
			AvgYearlyValue: a.sum / float64(len(a.years)),
			StartYear:      a.first,
			EndYear:        a.last,
			Years:          len(a.years),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Period != out[j].Period {
			return out[i].Period < out[j].Period
		}
		return out[i].Country < out[j].Country
	})

	return out
}
