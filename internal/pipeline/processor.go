package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"tradepulse/internal/analysis"
	"tradepulse/internal/config"
	"tradepulse/internal/dataset"
	"tradepulse/internal/monthly"
	"tradepulse/internal/normalize"
	"tradepulse/internal/store/sqlite"
	"tradepulse/internal/transform"
	"tradepulse/pkg/contracts/domain"
)

// Result summarizes one pipeline run.
type Result struct {
	RunID        string                     `json:"run_id"`
	SnapshotPath string                     `json:"snapshot_path"`
	HHIPath      string                     `json:"hhi_path"`
	RecordCount  int                        `json:"record_count"`
	YearRange    [2]int                     `json:"year_range"`
	Emerging     []analysis.EmergingPartner `json:"emerging,omitempty"`
}

// Processor runs the full reconciliation pipeline as a single batch.
type Processor struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Processor. A nil logger falls back to slog.Default().
func New(cfg *config.Config, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{cfg: cfg, logger: logger}
}

// Run executes the pipeline: parse monthly wide tables, aggregate to
// annual, merge with historical data, normalize country names, derive
// real values, shares and growth, tag periods, then write the snapshot
// CSV, the concentration CSV and the sqlite snapshot.
func (p *Processor) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)
	logger.InfoContext(ctx, "pipeline run starting")

	reader := dataset.NewReader(logger)
	exclusions := p.cfg.Pipeline.Exclusions
	if len(exclusions) == 0 {
		exclusions = monthly.DefaultExclusions()
	}
	parser := monthly.NewParser(exclusions, logger)

	var merged []domain.AnnualAggregate
	for _, input := range []struct {
		monthlyFile    string
		historicalFile string
		tradeType      domain.TradeType
	}{
		{p.cfg.Paths.ImportsFile, p.cfg.Paths.HistoricalImportsFile, domain.TradeTypeImport},
		{p.cfg.Paths.ExportsFile, p.cfg.Paths.HistoricalExportsFile, domain.TradeTypeExport},
	} {
		aggregates, err := p.loadFlow(ctx, reader, parser, input.monthlyFile, input.historicalFile, input.tradeType)
		if err != nil {
			return nil, err
		}
		merged = append(merged, aggregates...)
	}

	records := dataset.RecordsFromAggregates(dataset.Merge(nil, merged))
	records = normalize.New(normalize.DefaultSynonyms(), logger).Apply(records)

	if p.cfg.Paths.DeflatorFile != "" {
		table, err := transform.LoadDeflators(p.cfg.Paths.DeflatorFile)
		if err != nil {
			return nil, err
		}
		records = transform.AdjustForInflation(records, table, p.cfg.Pipeline.BaseYear)
	} else {
		// Without a deflator table real values equal nominal ones.
		records = transform.AdjustForInflation(records, unityDeflators(records), p.cfg.Pipeline.BaseYear)
	}

	records = transform.CalculateShares(records)
	records = transform.CalculateYoYGrowth(records)
	records = normalize.TagPeriods(records)

	logger.InfoContext(ctx, "derived metrics computed",
		"records", len(records))

	writer := dataset.NewWriter(logger)
	snapshotPath, err := writer.WriteSnapshot(p.cfg.Paths.OutputDir, records)
	if err != nil {
		return nil, err
	}

	hhiPath := filepath.Join(p.cfg.Paths.OutputDir, "hhi.csv")
	if err := writer.WriteHHI(hhiPath, analysis.CalculateHHI(records)); err != nil {
		return nil, err
	}

	if p.cfg.Paths.DatabaseFile != "" {
		if err := p.saveToStore(ctx, runID, records); err != nil {
			return nil, err
		}
	}

	result := &Result{
		RunID:        runID,
		SnapshotPath: snapshotPath,
		HHIPath:      hhiPath,
		RecordCount:  len(records),
		YearRange:    yearRange(records),
	}

	emerging, err := analysis.IdentifyEmergingPartners(records, domain.TradeTypeImport, analysis.EmergingOptions{
		LookbackYears:   p.cfg.Analysis.LookbackYears,
		GrowthThreshold: p.cfg.Analysis.GrowthThreshold,
		MinFinalShare:   p.cfg.Analysis.MinFinalShare,
	})
	if err != nil {
		logger.WarnContext(ctx, "emerging partner screen skipped", "error", err)
	} else {
		result.Emerging = emerging
	}

	logger.InfoContext(ctx, "pipeline run finished",
		"snapshot", snapshotPath,
		"records", len(records))
	return result, nil
}

// loadFlow builds the merged annual aggregates for one flow direction:
// the parsed and aggregated monthly table, reconciled against the
// optional historical annual table.
func (p *Processor) loadFlow(ctx context.Context, reader *dataset.Reader, parser *monthly.Parser, monthlyFile, historicalFile string, tradeType domain.TradeType) ([]domain.AnnualAggregate, error) {
	var derived []domain.AnnualAggregate
	if monthlyFile != "" {
		rows, err := reader.ReadRows(monthlyFile)
		if err != nil {
			return nil, err
		}
		values, err := parser.ParseWide(rows, tradeType)
		if err != nil {
			return nil, err
		}
		derived = monthly.AggregateAnnual(values)
		if p.cfg.Pipeline.ScaleFactor != 0 && p.cfg.Pipeline.ScaleFactor != 1 {
			derived = monthly.Scale(derived, p.cfg.Pipeline.ScaleFactor)
		}
		if p.cfg.Pipeline.Annualize {
			derived = monthly.Annualize(derived)
		}
		p.logger.InfoContext(ctx, "monthly table aggregated",
			"trade_type", string(tradeType),
			"monthly_values", len(values),
			"annual_aggregates", len(derived))
	}

	var historical []domain.AnnualAggregate
	if historicalFile != "" {
		var err error
		historical, err = reader.ReadAnnual(historicalFile, tradeType)
		if err != nil {
			return nil, err
		}
	}

	return dataset.Merge(historical, derived), nil
}

func (p *Processor) saveToStore(ctx context.Context, runID string, records []domain.TradeRecord) error {
	store, err := sqlite.New(p.cfg.Paths.DatabaseFile)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.SaveSnapshot(ctx, runID, records)
}

func unityDeflators(records []domain.TradeRecord) domain.DeflatorTable {
	table := make(domain.DeflatorTable)
	for _, r := range records {
		table[r.Year] = domain.DefaultBaseDeflator
	}
	return table
}

func yearRange(records []domain.TradeRecord) [2]int {
	if len(records) == 0 {
		return [2]int{}
	}
	minYear, maxYear := records[0].Year, records[0].Year
	for _, r := range records[1:] {
		if r.Year < minYear {
			minYear = r.Year
		}
		if r.Year > maxYear {
			maxYear = r.Year
		}
	}
	return [2]int{minYear, maxYear}
}
