package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradepulse/internal/config"
	"tradepulse/internal/dataset"
	"tradepulse/internal/store/sqlite"
	"tradepulse/pkg/contracts/domain"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessor_Run(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(outDir, 0o755))

	importsFile := writeFixture(t, dir, "imports.csv",
		"Country,Year,1,2,3,4,5,6,7,8,9,10,11,12\n"+
			"\"CHINA, PEOPLES REPUBLIC OF\",2020,10,10,10,10,10,10,10,10,10,10,10,10\n"+
			"\"CHINA, PEOPLES REPUBLIC OF\",2021,10,10,10,10,10,10,10,,,,,\n"+
			"MEXICO,2020,5,5,5,5,5,5,5,5,5,5,5,5\n"+
			"MEXICO,2021,5,5,5,5,5,5,5,,,,,\n"+
			"Total,2020,999,999,999,999,999,999,999,999,999,999,999,999\n")

	historicalFile := writeFixture(t, dir, "historical_imports.csv",
		"Country,Year,Value\n"+
			"\"CHINA, P.R.\",2018,100\n"+
			"\"CHINA, P.R.\",2019,110\n"+
			"\"CHINA, P.R.\",2020,999\n"+
			"MEXICO,2018,50\n")

	deflatorFile := writeFixture(t, dir, "deflators.csv",
		"year,deflator\n2018,90\n2019,95\n2020,100\n2021,105\n")

	cfg := config.Default()
	cfg.Paths.ImportsFile = importsFile
	cfg.Paths.HistoricalImportsFile = historicalFile
	cfg.Paths.DeflatorFile = deflatorFile
	cfg.Paths.OutputDir = outDir
	cfg.Paths.DatabaseFile = filepath.Join(outDir, "trade.db")
	cfg.Pipeline.BaseYear = 2020

	result, err := New(&cfg, nil).Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, [2]int{2018, 2021}, result.YearRange)
	assert.Equal(t, filepath.Join(outDir, "trade_data_2018_2021.csv"), result.SnapshotPath)

	records, err := dataset.ReadSnapshot(result.SnapshotPath)
	require.NoError(t, err)
	// China 2018, 2019, 2020, 2021 plus Mexico 2018, 2020, 2021.
	require.Len(t, records, 7)
	assert.Equal(t, len(records), result.RecordCount)

	type key struct {
		country string
		year    int
	}
	byKey := make(map[key]domain.TradeRecord)
	for _, r := range records {
		// Raw labels were collapsed to canonical names.
		assert.Contains(t, []string{"China", "Mexico"}, r.Country)
		byKey[key{r.Country, r.Year}] = r
	}

	// Monthly-derived 2020 replaces the historical 999; historical years
	// below the cutoff survive as complete years.
	assert.InDelta(t, 120.0, byKey[key{"China", 2020}].ValueNominal, 1e-9)
	assert.InDelta(t, 110.0, byKey[key{"China", 2019}].ValueNominal, 1e-9)
	assert.False(t, byKey[key{"China", 2019}].IsYTD)
	assert.Equal(t, 12, byKey[key{"China", 2019}].MonthCount)

	// Partial 2021 stays flagged year-to-date.
	china2021 := byKey[key{"China", 2021}]
	assert.True(t, china2021.IsYTD)
	assert.Equal(t, 7, china2021.MonthCount)
	assert.InDelta(t, 70.0, china2021.ValueNominal, 1e-9)

	// Inflation adjustment against the 2020 base.
	china2018 := byKey[key{"China", 2018}]
	require.True(t, china2018.ValueReal.IsDefined())
	assert.InDelta(t, 100.0*100.0/90.0, china2018.ValueReal.Value, 1e-9)

	// Shares within 2020: 120 vs 60 at equal deflators.
	require.True(t, byKey[key{"China", 2020}].SharePct.IsDefined())
	assert.InDelta(t, 100.0*120.0/180.0, byKey[key{"China", 2020}].SharePct.Value, 1e-9)

	// First year of each series has no growth; later years do.
	assert.False(t, china2018.YoYGrowthPct.IsDefined())
	assert.True(t, byKey[key{"China", 2019}].YoYGrowthPct.IsDefined())

	// Period tags follow the year.
	assert.Equal(t, "Trade War", china2018.Period)
	assert.Equal(t, "COVID Era", china2021.Period)

	// Concentration export exists alongside the snapshot.
	_, err = os.Stat(result.HHIPath)
	require.NoError(t, err)

	// The sqlite snapshot holds the same records.
	store, err := sqlite.New(cfg.Paths.DatabaseFile)
	require.NoError(t, err)
	defer store.Close()
	stored, err := store.LoadRecords(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 7)
}

func TestProcessor_Run_MissingInputFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.ImportsFile = filepath.Join(t.TempDir(), "absent.csv")
	cfg.Paths.OutputDir = t.TempDir()
	cfg.Paths.DatabaseFile = ""

	_, err := New(&cfg, nil).Run(context.Background())
	assert.Error(t, err)
}

func TestProcessor_Run_ScaleFactor(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(outDir, 0o755))

	importsFile := writeFixture(t, dir, "imports.csv",
		"Country,Year,1,2\nMEXICO,2020,5,5\n")

	cfg := config.Default()
	cfg.Paths.ImportsFile = importsFile
	cfg.Paths.OutputDir = outDir
	cfg.Paths.DatabaseFile = ""
	cfg.Pipeline.ScaleFactor = 1e3

	result, err := New(&cfg, nil).Run(context.Background())
	require.NoError(t, err)

	records, err := dataset.ReadSnapshot(result.SnapshotPath)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 10000.0, records[0].ValueNominal, 1e-9)
}

func TestProcessor_Run_NoDeflatorTable(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(outDir, 0o755))

	importsFile := writeFixture(t, dir, "imports.csv",
		"Country,Year,1,2\nMEXICO,2020,5,5\nMEXICO,2021,6,6\n")

	cfg := config.Default()
	cfg.Paths.ImportsFile = importsFile
	cfg.Paths.OutputDir = outDir
	cfg.Paths.DatabaseFile = ""

	result, err := New(&cfg, nil).Run(context.Background())
	require.NoError(t, err)

	records, err := dataset.ReadSnapshot(result.SnapshotPath)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Without a deflator table real values equal nominal ones.
	for _, r := range records {
		require.True(t, r.ValueReal.IsDefined())
		assert.InDelta(t, r.ValueNominal, r.ValueReal.Value, 1e-9)
	}
}
