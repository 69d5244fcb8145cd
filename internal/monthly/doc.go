// Package monthly converts wide-format monthly trade tables into long
// records and aggregates them to annual totals with year-to-date
// bookkeeping.
//
// A wide table carries country and year in its first two columns and one
// numeric-named column per month. ValidateHeader classifies columns up
// front and fails fast on ambiguous layouts; ParseWide filters footer
// rows and non-positive values; AggregateAnnual produces one row per
// (country, year, trade type) with MonthCount, LastMonth and the IsYTD
// flag. Annualize is an explicit opt-in extrapolation step and is never
// applied automatically.
package monthly
