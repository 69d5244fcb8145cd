package dataset

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tradepulse/internal/analysis"
	"tradepulse/internal/errors"
	"tradepulse/pkg/contracts/domain"
)

// snapshotColumns is the fixed output contract of a snapshot file.
var snapshotColumns = []string{
	"country", "year", "trade_type", "value", "value_real",
	"share", "share_pct", "yoy_growth", "yoy_growth_pct",
	"period", "is_ytd", "month_count", "last_month",
}

// SnapshotName returns the canonical snapshot filename for a record
// set: trade_data_{start}_{end}.csv with both years recomputed from the
// records, never carried over from an input filename.
func SnapshotName(records []domain.TradeRecord) string {
	if len(records) == 0 {
		return "trade_data_empty.csv"
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
	return fmt.Sprintf("trade_data_%d_%d.csv", minYear, maxYear)
}

// Writer persists derived datasets as CSV snapshots.
type Writer struct {
	logger *slog.Logger
}

// NewWriter creates a Writer. A nil logger falls back to slog.Default().
func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

// WriteSnapshot writes the records to dir under the canonical snapshot
// name and returns the full path. The write is atomic: data goes to a
// temp file in the same directory which is renamed into place, so an
// existing snapshot is either fully replaced or untouched. Non-defined
// measures render as empty cells.
func (w *Writer) WriteSnapshot(dir string, records []domain.TradeRecord) (string, error) {
	path := filepath.Join(dir, SnapshotName(records))

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, snapshotColumns)
	for _, r := range records {
		rows = append(rows, []string{
			r.Country,
			strconv.Itoa(r.Year),
			string(r.TradeType),
			formatFloat(r.ValueNominal),
			formatMeasure(r.ValueReal),
			formatMeasure(r.Share),
			formatMeasure(r.SharePct),
			formatMeasure(r.YoYGrowth),
			formatMeasure(r.YoYGrowthPct),
			r.Period,
			strconv.FormatBool(r.IsYTD),
			strconv.Itoa(r.MonthCount),
			strconv.Itoa(r.LastMonth),
		})
	}

	if err := w.writeAtomic(path, rows); err != nil {
		return "", err
	}

	w.logger.Info("wrote snapshot",
		"path", path,
		"records", len(records))
	return path, nil
}

// WriteHHI writes concentration metrics to path as CSV.
func (w *Writer) WriteHHI(path string, hhi []analysis.HHIRecord) error {
	rows := make([][]string, 0, len(hhi)+1)
	rows = append(rows, []string{"year", "trade_type", "hhi", "concentration"})
	for _, h := range hhi {
		rows = append(rows, []string{
			strconv.Itoa(h.Year),
			string(h.TradeType),
			formatFloat(h.HHI),
			string(h.Concentration),
		})
	}

	if err := w.writeAtomic(path, rows); err != nil {
		return err
	}

	w.logger.Info("wrote concentration metrics",
		"path", path,
		"groups", len(hhi))
	return nil
}

func (w *Writer) writeAtomic(path string, rows [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.NewStorageError("failed to create temp file", err).
			WithContext("path", path)
	}
	tmpName := tmp.Name()

	writer := csv.NewWriter(tmp)
	if err := writer.WriteAll(rows); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewStorageError("failed to write csv", err).
			WithContext("path", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewStorageError("failed to close temp file", err).
			WithContext("path", path)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.NewStorageError("failed to replace snapshot", err).
			WithContext("path", path)
	}
	return nil
}

// ReadSnapshot loads a snapshot written by WriteSnapshot. Empty measure
// cells come back undefined; the defined/undefined split round-trips
// but the undefined/missing distinction is not persisted in CSV.
func ReadSnapshot(path string) ([]domain.TradeRecord, error) {
	rows, err := readCSVRows(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.NewParsingError("snapshot file is empty", nil).
			WithContext("path", path)
	}
	if len(rows[0]) != len(snapshotColumns) {
		return nil, errors.NewValidationError("snapshot header does not match output contract").
			WithContext("path", path).
			WithContext("header", rows[0])
	}

	out := make([]domain.TradeRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		r, err := parseSnapshotRow(row)
		if err != nil {
			return nil, errors.NewParsingError("invalid snapshot row", err).
				WithContext("path", path).
				WithContext("row", i+2)
		}
		out = append(out, r)
	}
	return out, nil
}

func parseSnapshotRow(row []string) (domain.TradeRecord, error) {
	var r domain.TradeRecord
	if len(row) != len(snapshotColumns) {
		return r, fmt.Errorf("expected %d columns, got %d", len(snapshotColumns), len(row))
	}

	var err error
	r.Country = row[0]
	if r.Year, err = strconv.Atoi(row[1]); err != nil {
		return r, fmt.Errorf("year: %w", err)
	}
	r.TradeType = domain.TradeType(row[2])
	if !r.TradeType.IsValid() {
		return r, fmt.Errorf("unknown trade type %q", row[2])
	}
	if r.ValueNominal, err = strconv.ParseFloat(row[3], 64); err != nil {
		return r, fmt.Errorf("value: %w", err)
	}
	if r.ValueReal, err = parseMeasure(row[4]); err != nil {
		return r, fmt.Errorf("value_real: %w", err)
	}
	if r.Share, err = parseMeasure(row[5]); err != nil {
		return r, fmt.Errorf("share: %w", err)
	}
	if r.SharePct, err = parseMeasure(row[6]); err != nil {
		return r, fmt.Errorf("share_pct: %w", err)
	}
	if r.YoYGrowth, err = parseMeasure(row[7]); err != nil {
		return r, fmt.Errorf("yoy_growth: %w", err)
	}
	if r.YoYGrowthPct, err = parseMeasure(row[8]); err != nil {
		return r, fmt.Errorf("yoy_growth_pct: %w", err)
	}
	r.Period = row[9]
	if r.IsYTD, err = strconv.ParseBool(row[10]); err != nil {
		return r, fmt.Errorf("is_ytd: %w", err)
	}
	if r.MonthCount, err = strconv.Atoi(row[11]); err != nil {
		return r, fmt.Errorf("month_count: %w", err)
	}
	if r.LastMonth, err = strconv.Atoi(row[12]); err != nil {
		return r, fmt.Errorf("last_month: %w", err)
	}
	return r, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatMeasure(m domain.Measure) string {
	if !m.IsDefined() {
		return ""
	}
	return formatFloat(m.Value)
}

func parseMeasure(cell string) (domain.Measure, error) {
	if strings.TrimSpace(cell) == "" {
		return domain.Undefined(), nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return domain.Measure{}, err
	}
	return domain.Defined(v), nil
}
