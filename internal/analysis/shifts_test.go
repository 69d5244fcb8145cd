package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradepulse/pkg/contracts/domain"
)

func shiftFixture() []domain.TradeRecord {
	return []domain.TradeRecord{
		{Country: "B", Year: 2001, TradeType: domain.TradeTypeImport, ValueNominal: 1000},
		{Country: "A", Year: 2001, TradeType: domain.TradeTypeImport, ValueNominal: 500},
		{Country: "C", Year: 2001, TradeType: domain.TradeTypeImport, ValueNominal: 400},
		{Country: "A", Year: 2008, TradeType: domain.TradeTypeImport, ValueNominal: 1000},
		{Country: "C", Year: 2008, TradeType: domain.TradeTypeImport, ValueNominal: 700},
		{Country: "B", Year: 2008, TradeType: domain.TradeTypeImport, ValueNominal: 500},
	}
}

func TestAnalyzeShifts_RankMovement(t *testing.T) {
	result, err := AnalyzeShifts(shiftFixture(), domain.TradeTypeImport, 2001, 2008, 3)
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)

	byCountry := make(map[string]ComparisonRow)
	for _, row := range result.Rows {
		byCountry[row.Country] = row
	}

	// Start ranks by value desc: B=1, A=2, C=3. End: A=1, C=2, B=3.
	a, b, c := byCountry["A"], byCountry["B"], byCountry["C"]

	assert.Equal(t, 2, a.RankStart)
	assert.Equal(t, 1, a.RankEnd)
	assert.Equal(t, 1, a.RankChange)

	assert.Equal(t, 1, b.RankStart)
	assert.Equal(t, 3, b.RankEnd)
	assert.Equal(t, -2, b.RankChange)

	assert.Equal(t, 3, c.RankStart)
	assert.Equal(t, 2, c.RankEnd)
	assert.Equal(t, 1, c.RankChange)

	// Rows are sorted by end-year value descending.
	assert.Equal(t, []string{"A", "C", "B"},
		[]string{result.Rows[0].Country, result.Rows[1].Country, result.Rows[2].Country})
}

func TestAnalyzeShifts_SharesAndGrowth(t *testing.T) {
	result, err := AnalyzeShifts(shiftFixture(), domain.TradeTypeImport, 2001, 2008, 3)
	require.NoError(t, err)

	byCountry := make(map[string]ComparisonRow)
	for _, row := range result.Rows {
		byCountry[row.Country] = row
	}

	// Shares use each endpoint's own total: 1900 in 2001, 2200 in 2008.
	a := byCountry["A"]
	assert.InDelta(t, 100*500.0/1900.0, a.ShareStart, 1e-9)
	assert.InDelta(t, 100*1000.0/2200.0, a.ShareEnd, 1e-9)
	assert.InDelta(t, a.ShareEnd-a.ShareStart, a.ShareChange, 1e-9)

	require.True(t, a.ValueGrowthPct.IsDefined())
	assert.InDelta(t, 100.0, a.ValueGrowthPct.Value, 1e-9)

	b := byCountry["B"]
	require.True(t, b.ValueGrowthPct.IsDefined())
	assert.InDelta(t, -50.0, b.ValueGrowthPct.Value, 1e-9)

	assert.InDelta(t, 1900.0, result.Summary.TotalStart, 1e-9)
	assert.InDelta(t, 2200.0, result.Summary.TotalEnd, 1e-9)
	assert.InDelta(t, 300.0, result.Summary.AbsoluteGrowth, 1e-9)
	require.True(t, result.Summary.PercentGrowth.IsDefined())
	assert.InDelta(t, 100*300.0/1900.0, result.Summary.PercentGrowth.Value, 1e-9)
}

func TestAnalyzeShifts_OuterJoinZeroFill(t *testing.T) {
	records := []domain.TradeRecord{
		{Country: "Old", Year: 2001, TradeType: domain.TradeTypeImport, ValueNominal: 300},
		{Country: "Both", Year: 2001, TradeType: domain.TradeTypeImport, ValueNominal: 100},
		{Country: "Both", Year: 2008, TradeType: domain.TradeTypeImport, ValueNominal: 150},
		{Country: "New", Year: 2008, TradeType: domain.TradeTypeImport, ValueNominal: 50},
	}

	result, err := AnalyzeShifts(records, domain.TradeTypeImport, 2001, 2008, 2)
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)

	byCountry := make(map[string]ComparisonRow)
	for _, row := range result.Rows {
		byCountry[row.Country] = row
	}

	// A country absent in the end year keeps a row with value 0.
	old := byCountry["Old"]
	assert.Equal(t, 0.0, old.ValueEnd)
	assert.Equal(t, -300.0, old.ValueChange)
	require.True(t, old.ValueGrowthPct.IsDefined())
	assert.InDelta(t, -100.0, old.ValueGrowthPct.Value, 1e-9)

	// A country absent in the start year has undefined growth, not +inf.
	newcomer := byCountry["New"]
	assert.Equal(t, 0.0, newcomer.ValueStart)
	assert.False(t, newcomer.ValueGrowthPct.IsDefined())

	// Zero-filled countries are ranked like everyone else.
	assert.Equal(t, 3, old.RankEnd)
	assert.Equal(t, 3, newcomer.RankStart)

	assert.Equal(t, 2, result.Summary.CountryCountStart)
	assert.Equal(t, 2, result.Summary.CountryCountEnd)
}

func TestAnalyzeShifts_GainersAndLosers(t *testing.T) {
	result, err := AnalyzeShifts(shiftFixture(), domain.TradeTypeImport, 2001, 2008, 1)
	require.NoError(t, err)

	require.Len(t, result.Gainers, 1)
	require.Len(t, result.Losers, 1)
	assert.Equal(t, "A", result.Gainers[0].Country)
	assert.Equal(t, "B", result.Losers[0].Country)
}

func TestAnalyzeShifts_TiedValuesShareRank(t *testing.T) {
	records := []domain.TradeRecord{
		{Country: "A", Year: 2001, TradeType: domain.TradeTypeImport, ValueNominal: 100},
		{Country: "B", Year: 2001, TradeType: domain.TradeTypeImport, ValueNominal: 100},
		{Country: "C", Year: 2001, TradeType: domain.TradeTypeImport, ValueNominal: 50},
		{Country: "A", Year: 2008, TradeType: domain.TradeTypeImport, ValueNominal: 10},
		{Country: "B", Year: 2008, TradeType: domain.TradeTypeImport, ValueNominal: 20},
		{Country: "C", Year: 2008, TradeType: domain.TradeTypeImport, ValueNominal: 30},
	}

	result, err := AnalyzeShifts(records, domain.TradeTypeImport, 2001, 2008, 3)
	require.NoError(t, err)

	byCountry := make(map[string]ComparisonRow)
	for _, row := range result.Rows {
		byCountry[row.Country] = row
	}

	// Competition ranking: both leaders take rank 1, next rank is 3.
	assert.Equal(t, 1, byCountry["A"].RankStart)
	assert.Equal(t, 1, byCountry["B"].RankStart)
	assert.Equal(t, 3, byCountry["C"].RankStart)
}

func TestAnalyzeShifts_Validation(t *testing.T) {
	_, err := AnalyzeShifts(shiftFixture(), domain.TradeTypeImport, 2008, 2001, 3)
	assert.Error(t, err)

	_, err = AnalyzeShifts(shiftFixture(), domain.TradeTypeImport, 2010, 2012, 3)
	assert.Error(t, err)
}
