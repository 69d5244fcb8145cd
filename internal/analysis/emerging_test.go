package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradepulse/pkg/contracts/domain"
)

func emergingFixture() []domain.TradeRecord {
	// Window 2010-2020. Vietnam triples (200% growth) and holds 2.5% of
	// the 2020 total; China is flat and anchors the denominator.
	return []domain.TradeRecord{
		{Country: "Vietnam", Year: 2010, TradeType: domain.TradeTypeImport, ValueNominal: 10},
		{Country: "Vietnam", Year: 2020, TradeType: domain.TradeTypeImport, ValueNominal: 30},
		{Country: "China", Year: 2010, TradeType: domain.TradeTypeImport, ValueNominal: 1170},
		{Country: "China", Year: 2020, TradeType: domain.TradeTypeImport, ValueNominal: 1170},
	}
}

func TestIdentifyEmergingPartners_ThresholdPass(t *testing.T) {
	opts := EmergingOptions{LookbackYears: 10, GrowthThreshold: 100, MinFinalShare: 1.0}

	out, err := IdentifyEmergingPartners(emergingFixture(), domain.TradeTypeImport, opts)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, "Vietnam", out[0].Country)
	assert.InDelta(t, 200.0, out[0].GrowthPct, 1e-9)
	assert.InDelta(t, 2.5, out[0].EndShare, 1e-9)
	assert.InDelta(t, 10.0, out[0].StartValue, 1e-9)
	assert.InDelta(t, 30.0, out[0].EndValue, 1e-9)
}

func TestIdentifyEmergingPartners_ShareFloorExcludes(t *testing.T) {
	opts := EmergingOptions{LookbackYears: 10, GrowthThreshold: 100, MinFinalShare: 5.0}

	out, err := IdentifyEmergingPartners(emergingFixture(), domain.TradeTypeImport, opts)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestIdentifyEmergingPartners_ZeroStartExcluded(t *testing.T) {
	records := append(emergingFixture(), domain.TradeRecord{
		// Present only in the final year; growth is undefined.
		Country: "Newland", Year: 2020, TradeType: domain.TradeTypeImport, ValueNominal: 500,
	})

	out, err := IdentifyEmergingPartners(records, domain.TradeTypeImport, DefaultEmergingOptions())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Vietnam", out[0].Country)
}

func TestIdentifyEmergingPartners_SortedByGrowthDesc(t *testing.T) {
	records := append(emergingFixture(),
		domain.TradeRecord{Country: "India", Year: 2010, TradeType: domain.TradeTypeImport, ValueNominal: 10},
		domain.TradeRecord{Country: "India", Year: 2020, TradeType: domain.TradeTypeImport, ValueNominal: 60},
	)

	out, err := IdentifyEmergingPartners(records, domain.TradeTypeImport, DefaultEmergingOptions())
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "India", out[0].Country) // 500% growth
	assert.Equal(t, "Vietnam", out[1].Country)
}

func TestIdentifyEmergingPartners_Errors(t *testing.T) {
	_, err := IdentifyEmergingPartners(emergingFixture(), domain.TradeTypeImport,
		EmergingOptions{LookbackYears: 0, GrowthThreshold: 100, MinFinalShare: 1})
	assert.Error(t, err)

	_, err = IdentifyEmergingPartners(emergingFixture(), domain.TradeTypeExport, DefaultEmergingOptions())
	assert.Error(t, err)

	_, err = IdentifyEmergingPartners(nil, domain.TradeTypeImport, DefaultEmergingOptions())
	assert.Error(t, err)
}
