package domain

// DefaultBaseDeflator is the fallback used when the base year itself is
// absent from the table. A deflator of 100 makes the adjustment a no-op,
// a degenerate fallback rather than a real adjustment.
const DefaultBaseDeflator = 100.0

// DeflatorTable maps year to a price deflator normalized so the base
// year equals 100. Loaded once per pipeline run and read-only after.
type DeflatorTable map[int]float64

// BaseDeflator returns the deflator for the base year, or
// DefaultBaseDeflator when the base year is not in the table.
func (t DeflatorTable) BaseDeflator(baseYear int) float64 {
	if d, ok := t[baseYear]; ok {
		return d
	}
	return DefaultBaseDeflator
}
