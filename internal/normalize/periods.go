package normalize

import (
	"tradepulse/pkg/contracts/domain"
)

// Historical trade period labels. The nine periods are non-overlapping;
// a boundary year belongs to the period whose upper bound it is strictly
// less than, so 2001 falls in "China WTO Boom" rather than
// "Pre-WTO China".
const (
	PeriodPreDataWeb      = "Pre-DataWeb"
	PeriodPreNAFTA        = "Pre-NAFTA"
	PeriodPreWTOChina     = "Pre-WTO China"
	PeriodChinaWTOBoom    = "China WTO Boom"
	PeriodFinancialCrisis = "Financial Crisis"
	PeriodPostCrisis      = "Post-Crisis Growth"
	PeriodTradeWar        = "Trade War"
	PeriodCOVIDEra        = "COVID Era"
	PeriodPostCOVID       = "Post-COVID"
)

// PeriodFor categorizes a year into a historical trade period.
func PeriodFor(year int) string {
	switch {
	case year < 1989:
		return PeriodPreDataWeb
	case year < 1994:
		return PeriodPreNAFTA
	case year < 2001:
		return PeriodPreWTOChina
	case year < 2008:
		return PeriodChinaWTOBoom
	case year < 2010:
		return PeriodFinancialCrisis
	case year < 2018:
		return PeriodPostCrisis
	case year < 2020:
		return PeriodTradeWar
	case year < 2022:
		return PeriodCOVIDEra
	default:
		return PeriodPostCOVID
	}
}

// TagPeriods returns a copy of records with the period label filled in
// from each record's year.
func TagPeriods(records []domain.TradeRecord) []domain.TradeRecord {
	out := make([]domain.TradeRecord, len(records))
	for i, r := range records {
		r.Period = PeriodFor(r.Year)
		out[i] = r
	}
	return out
}
