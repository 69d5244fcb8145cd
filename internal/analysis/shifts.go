package analysis

import (
	"sort"

	"tradepulse/internal/errors"
	"tradepulse/pkg/contracts/domain"
)

// AnalyzeShifts compares country-level trade between two years for one
// flow direction. Every country present in either endpoint appears in
// the result, with missing endpoints defaulting to value 0 rather than
// being dropped. Shares at each endpoint are computed from that year's
// own total, never a shared denominator. Ranks use competition ("min")
// ranking on value descending: equal values receive the same,
// lowest-applicable rank, and zero-filled countries are ranked too.
func AnalyzeShifts(records []domain.TradeRecord, tradeType domain.TradeType, startYear, endYear, topN int) (*ShiftResult, error) {
	if startYear >= endYear {
		return nil, errors.NewValidationError("start year must precede end year")
	}

	startValues := make(map[string]float64)
	endValues := make(map[string]float64)
	for _, r := range records {
		if r.TradeType != tradeType {
			continue
		}
		switch r.Year {
		case startYear:
			startValues[r.Country] += r.ValueNominal
		case endYear:
			endValues[r.Country] += r.ValueNominal
		}
	}

	if len(startValues) == 0 && len(endValues) == 0 {
		return nil, errors.NewAnalysisError("no records in either endpoint year", nil).
			WithContext("start_year", startYear).
			WithContext("end_year", endYear)
	}

	countries := make(map[string]struct{}, len(startValues)+len(endValues))
	var totalStart, totalEnd float64
	for c, v := range startValues {
		countries[c] = struct{}{}
		totalStart += v
	}
	for c, v := range endValues {
		countries[c] = struct{}{}
		totalEnd += v
	}

	rows := make([]ComparisonRow, 0, len(countries))
	for c := range countries {
		vs := startValues[c]
		ve := endValues[c]

		row := ComparisonRow{
			Country:     c,
			ValueStart:  vs,
			ValueEnd:    ve,
			ValueChange: ve - vs,
		}
		if totalStart > 0 {
			row.ShareStart = 100 * vs / totalStart
		}
		if totalEnd > 0 {
			row.ShareEnd = 100 * ve / totalEnd
		}
		row.ShareChange = row.ShareEnd - row.ShareStart

		if vs == 0 {
			// Growth from a zero start is undefined, not infinite.
			row.ValueGrowthPct = domain.Undefined()
		} else {
			row.ValueGrowthPct = domain.Defined(100 * (ve - vs) / vs)
		}

		rows = append(rows, row)
	}

	rankBy(rows, func(r ComparisonRow) float64 { return r.ValueStart },
		func(r *ComparisonRow, rank int) { r.RankStart = rank })
	rankBy(rows, func(r ComparisonRow) float64 { return r.ValueEnd },
		func(r *ComparisonRow, rank int) { r.RankEnd = rank })
	for i := range rows {
		rows[i].RankChange = rows[i].RankStart - rows[i].RankEnd
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ValueEnd != rows[j].ValueEnd {
			return rows[i].ValueEnd > rows[j].ValueEnd
		}
		return rows[i].Country < rows[j].Country
	})

	summary := ShiftSummary{
		TotalStart:        totalStart,
		TotalEnd:          totalEnd,
		AbsoluteGrowth:    totalEnd - totalStart,
		CountryCountStart: len(startValues),
		CountryCountEnd:   len(endValues),
	}
	if totalStart > 0 {
		summary.PercentGrowth = domain.Defined(100 * (totalEnd - totalStart) / totalStart)
	} else {
		summary.PercentGrowth = domain.Undefined()
	}

	return &ShiftResult{
		StartYear: startYear,
		EndYear:   endYear,
		Rows:      rows,
		Gainers:   topByShareChange(rows, topN, true),
		Losers:    topByShareChange(rows, topN, false),
		Summary:   summary,
	}, nil
}

// rankBy assigns competition ranks on the given value descending:
// rank = 1 + number of countries with a strictly greater value.
func rankBy(rows []ComparisonRow, value func(ComparisonRow) float64, assign func(*ComparisonRow, int)) {
	for i := range rows {
		rank := 1
		for j := range rows {
			if value(rows[j]) > value(rows[i]) {
				rank++
			}
		}
		assign(&rows[i], rank)
	}
}

func topByShareChange(rows []ComparisonRow, n int, gainers bool) []ComparisonRow {
	sorted := make([]ComparisonRow, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		if gainers {
			return sorted[i].ShareChange > sorted[j].ShareChange
		}
		return sorted[i].ShareChange < sorted[j].ShareChange
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
