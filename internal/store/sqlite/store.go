// Package sqlite persists pipeline snapshots in an embedded database so
// successive runs can be compared without reparsing CSV output.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"tradepulse/internal/errors"
	"tradepulse/pkg/contracts/domain"
)

// Store wraps a single-connection sqlite database holding run metadata
// and the reconciled trade records of each run.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at path and applies migrations.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.NewConfigError("sqlite path is required", nil)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open database", err).
			WithContext("path", path)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveSnapshot records a pipeline run and upserts its records keyed on
// (country, year, trade_type). Non-defined measures are stored as NULL
// with the kind preserved alongside, so a reload can distinguish an
// undefined growth from a missing deflator.
func (s *Store) SaveSnapshot(ctx context.Context, runID string, records []domain.TradeRecord) error {
	if runID == "" {
		return errors.NewValidationError("run id is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStorageError("failed to begin transaction", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, created_at, record_count) VALUES (?, ?, ?)`,
		runID, time.Now().UTC().Format(time.RFC3339), len(records))
	if err != nil {
		_ = tx.Rollback()
		return errors.NewStorageError("failed to record run", err).
			WithContext("run_id", runID)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trade_records (
			country, year, trade_type, value, value_real, value_real_kind,
			share_pct, share_pct_kind, yoy_growth_pct, yoy_growth_pct_kind,
			period, is_ytd, month_count, last_month, run_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(country, year, trade_type)
		DO UPDATE SET
			value = excluded.value,
			value_real = excluded.value_real,
			value_real_kind = excluded.value_real_kind,
			share_pct = excluded.share_pct,
			share_pct_kind = excluded.share_pct_kind,
			yoy_growth_pct = excluded.yoy_growth_pct,
			yoy_growth_pct_kind = excluded.yoy_growth_pct_kind,
			period = excluded.period,
			is_ytd = excluded.is_ytd,
			month_count = excluded.month_count,
			last_month = excluded.last_month,
			run_id = excluded.run_id
	`)
	if err != nil {
		_ = tx.Rollback()
		return errors.NewStorageError("failed to prepare upsert", err)
	}
	defer stmt.Close()

	for i := range records {
		r := records[i]
		_, err = stmt.ExecContext(ctx,
			r.Country, r.Year, string(r.TradeType), r.ValueNominal,
			nullableMeasure(r.ValueReal), r.ValueReal.Kind.String(),
			nullableMeasure(r.SharePct), r.SharePct.Kind.String(),
			nullableMeasure(r.YoYGrowthPct), r.YoYGrowthPct.Kind.String(),
			r.Period, r.IsYTD, r.MonthCount, r.LastMonth, runID,
		)
		if err != nil {
			_ = tx.Rollback()
			return errors.NewStorageError("failed to upsert record", err).
				WithContext("country", r.Country).
				WithContext("year", r.Year)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.NewStorageError("failed to commit snapshot", err)
	}
	return nil
}

// LoadRecords returns all stored trade records ordered by country, year
// and trade type.
func (s *Store) LoadRecords(ctx context.Context) ([]domain.TradeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT country, year, trade_type, value, value_real, value_real_kind,
		       share_pct, share_pct_kind, yoy_growth_pct, yoy_growth_pct_kind,
		       period, is_ytd, month_count, last_month
		FROM trade_records
		ORDER BY country, year, trade_type
	`)
	if err != nil {
		return nil, errors.NewStorageError("failed to query records", err)
	}
	defer rows.Close()

	var out []domain.TradeRecord
	for rows.Next() {
		var r domain.TradeRecord
		var tradeType, period string
		var valueReal, sharePct, growthPct sql.NullFloat64
		var valueRealKind, sharePctKind, growthPctKind string

		err := rows.Scan(&r.Country, &r.Year, &tradeType,
			&r.ValueNominal, &valueReal, &valueRealKind,
			&sharePct, &sharePctKind, &growthPct, &growthPctKind,
			&period, &r.IsYTD, &r.MonthCount, &r.LastMonth)
		if err != nil {
			return nil, errors.NewStorageError("failed to scan record", err)
		}

		r.TradeType = domain.TradeType(tradeType)
		r.Period = period
		r.ValueReal = measureFromColumns(valueReal, valueRealKind)
		r.SharePct = measureFromColumns(sharePct, sharePctKind)
		r.YoYGrowthPct = measureFromColumns(growthPct, growthPctKind)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("failed to iterate records", err)
	}

	return out, nil
}

// RunCount returns the number of recorded pipeline runs.
func (s *Store) RunCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n)
	if err != nil {
		return 0, errors.NewStorageError("failed to count runs", err)
	}
	return n, nil
}

func (s *Store) migrate() error {
	statements := []string{
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT NOT NULL PRIMARY KEY,
			created_at TEXT NOT NULL,
			record_count INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS trade_records (
			country TEXT NOT NULL,
			year INTEGER NOT NULL,
			trade_type TEXT NOT NULL,
			value REAL NOT NULL,
			value_real REAL,
			value_real_kind TEXT NOT NULL,
			share_pct REAL,
			share_pct_kind TEXT NOT NULL,
			yoy_growth_pct REAL,
			yoy_growth_pct_kind TEXT NOT NULL,
			period TEXT NOT NULL,
			is_ytd INTEGER NOT NULL,
			month_count INTEGER NOT NULL,
			last_month INTEGER NOT NULL,
			run_id TEXT NOT NULL,
			PRIMARY KEY (country, year, trade_type)
		);`,
	}

	for _, statement := range statements {
		if _, err := s.db.Exec(statement); err != nil {
			return errors.NewStorageError("migration failed", err)
		}
	}

	return nil
}

func nullableMeasure(m domain.Measure) any {
	if !m.IsDefined() {
		return nil
	}
	return m.Value
}

func measureFromColumns(v sql.NullFloat64, kind string) domain.Measure {
	if v.Valid {
		return domain.Defined(v.Float64)
	}
	if kind == domain.MeasureMissing.String() {
		return domain.Missing()
	}
	return domain.Undefined()
}
