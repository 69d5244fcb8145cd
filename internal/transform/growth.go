package transform

import (
	"sort"

	"tradepulse/pkg/contracts/domain"
)

// CalculateYoYGrowth computes year-over-year growth for each
// (country, trade type) series sorted ascending by year, on the
// real-value basis. Growth is undefined for the first record of a
// series and when the prior value is zero; an undefined rate is never
// clamped to zero, which would misrepresent it as "no growth". A prior
// value that is itself missing propagates the missing kind.
//
// "Prior" means the previous record in the sorted series even when
// years are not adjacent; a gap does not reset the series.
func CalculateYoYGrowth(records []domain.TradeRecord) []domain.TradeRecord {
	type key struct {
		country   string
		tradeType domain.TradeType
	}

	out := make([]domain.TradeRecord, len(records))
	copy(out, records)

	groups := make(map[key][]int)
	for i, r := range out {
		k := key{r.Country, r.TradeType}
		groups[k] = append(groups[k], i)
	}

	for _, indices := range groups {
		sort.Slice(indices, func(a, b int) bool {
			return out[indices[a]].Year < out[indices[b]].Year
		})

		for pos, idx := range indices {
			if pos == 0 {
				out[idx].YoYGrowth = domain.Undefined()
				out[idx].YoYGrowthPct = domain.Undefined()
				continue
			}

			prev := out[indices[pos-1]]
			curr := out[idx]

			switch {
			case !prev.ValueReal.IsDefined() || !curr.ValueReal.IsDefined():
				out[idx].YoYGrowth = domain.Missing()
				out[idx].YoYGrowthPct = domain.Missing()
			case prev.ValueReal.Value == 0:
				out[idx].YoYGrowth = domain.Undefined()
				out[idx].YoYGrowthPct = domain.Undefined()
			default:
				growth := (curr.ValueReal.Value - prev.ValueReal.Value) / prev.ValueReal.Value
				out[idx].YoYGrowth = domain.Defined(growth)
				out[idx].YoYGrowthPct = domain.Defined(growth * 100)
			}
		}
	}

	return out
}

// RollingAverage smooths a series with a trailing mean over the given
// window, using as many points as are available at the start (minimum
// one), matching the smoothing used for trend charts.
func RollingAverage(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}

	out := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		n := window
		if i+1 < window {
			n = i + 1
		} else if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(n)
	}
	return out
}
