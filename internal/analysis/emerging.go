package analysis

import (
	"sort"

	"tradepulse/internal/errors"
	"tradepulse/pkg/contracts/domain"
)

// IdentifyEmergingPartners screens for countries whose trade grew past
// the thresholds over a lookback window ending at the dataset's maximum
// year. A country qualifies iff its growth over the window is defined
// and at least GrowthThreshold percent, and its final-year share is at
// least MinFinalShare percent.
//
// A country absent (or zero) in the start year has undefined growth and
// is excluded from the screen regardless of threshold; appearing from
// nothing is a different phenomenon than measured growth and callers
// wanting it should look at the start-year absence directly.
func IdentifyEmergingPartners(records []domain.TradeRecord, tradeType domain.TradeType, opts EmergingOptions) ([]EmergingPartner, error) {
	if opts.LookbackYears <= 0 {
		return nil, errors.NewValidationError("lookback years must be positive")
	}

	maxYear := 0
	for _, r := range records {
		if r.TradeType == tradeType && r.Year > maxYear {
			maxYear = r.Year
		}
	}
	if maxYear == 0 {
		return nil, errors.NewAnalysisError("no records for trade type", nil).
			WithContext("trade_type", string(tradeType))
	}
	minYear := maxYear - opts.LookbackYears

	startValues := make(map[string]float64)
	endValues := make(map[string]float64)
	for _, r := range records {
		if r.TradeType != tradeType {
			continue
		}
		switch r.Year {
		case minYear:
			startValues[r.Country] += r.ValueNominal
		case maxYear:
			endValues[r.Country] += r.ValueNominal
		}
	}

	var endTotal float64
	for _, v := range endValues {
		endTotal += v
	}
	if endTotal == 0 {
		return nil, errors.NewAnalysisError("final year has no trade value", nil).
			WithContext("year", maxYear)
	}

	var emerging []EmergingPartner
	for country, endValue := range endValues {
		startValue, present := startValues[country]
		if !present || startValue == 0 {
			continue
		}

		growth := 100 * (endValue - startValue) / startValue
		endShare := 100 * endValue / endTotal

		if growth >= opts.GrowthThreshold && endShare >= opts.MinFinalShare {
			emerging = append(emerging, EmergingPartner{
				Country:    country,
				StartValue: startValue,
				EndValue:   endValue,
				GrowthPct:  growth,
				EndShare:   endShare,
			})
		}
	}

	sort.Slice(emerging, func(i, j int) bool {
		if emerging[i].GrowthPct != emerging[j].GrowthPct {
			return emerging[i].GrowthPct > emerging[j].GrowthPct
		}
		return emerging[i].Country < emerging[j].Country
	})

	return emerging, nil
}
