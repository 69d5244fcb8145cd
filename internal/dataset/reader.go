package dataset

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"tradepulse/internal/errors"
	"tradepulse/pkg/contracts/domain"
)

// Reader loads tabular input files from disk. It hands back raw string
// rows so the parsing packages own all cell interpretation.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a Reader. A nil logger falls back to slog.Default().
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger}
}

// ReadRows reads a table from a CSV file or the first sheet of an xlsx
// workbook, chosen by file extension. A missing file is reported as a
// not-found error carrying the path.
func (r *Reader) ReadRows(path string) ([][]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.NewNotFoundError("input file").WithContext("path", path)
	}

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readExcelRows(path)
	default:
		rows, err = readCSVRows(path)
	}
	if err != nil {
		return nil, err
	}

	r.logger.Info("read input table",
		"path", path,
		"rows", len(rows))
	return rows, nil
}

// ReadAnnual loads a historical annual table with country, year and
// value columns, located by case-insensitive header match. Extra
// columns are ignored. Rows with an unparseable year or value are an
// error rather than silently dropped; historical data is curated and a
// bad cell means a corrupted file.
func (r *Reader) ReadAnnual(path string, tradeType domain.TradeType) ([]domain.AnnualAggregate, error) {
	rows, err := r.ReadRows(path)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errors.NewParsingError("annual table has no data rows", nil).
			WithContext("path", path)
	}

	countryCol, yearCol, valueCol := -1, -1, -1
	for i, h := range rows[0] {
		switch {
		case strings.Contains(strings.ToLower(h), "country"):
			countryCol = i
		case strings.Contains(strings.ToLower(h), "year"):
			yearCol = i
		case strings.Contains(strings.ToLower(h), "value"):
			valueCol = i
		}
	}
	if countryCol < 0 || yearCol < 0 || valueCol < 0 {
		return nil, errors.NewValidationError("annual table header must name country, year and value columns").
			WithContext("path", path).
			WithContext("header", rows[0])
	}

	out := make([]domain.AnnualAggregate, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) <= countryCol || len(row) <= yearCol || len(row) <= valueCol {
			continue
		}
		country := strings.TrimSpace(row[countryCol])
		if country == "" {
			continue
		}

		year, err := strconv.Atoi(strings.TrimSpace(row[yearCol]))
		if err != nil {
			return nil, errors.NewParsingError("invalid year in annual table", err).
				WithContext("path", path).
				WithContext("row", i+2)
		}
		value, err := strconv.ParseFloat(cleanNumber(row[valueCol]), 64)
		if err != nil {
			return nil, errors.NewParsingError("invalid value in annual table", err).
				WithContext("path", path).
				WithContext("row", i+2)
		}

		out = append(out, domain.AnnualAggregate{
			Country:      country,
			Year:         year,
			TradeType:    tradeType,
			ValueNominal: value,
		})
	}

	return out, nil
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewParsingError("failed to open csv file", err).
			WithContext("path", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // input tables have ragged rows
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParsingError("failed to read csv file", err).
			WithContext("path", path)
	}
	return rows, nil
}

func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParsingError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParsingError("workbook has no sheets", nil).
			WithContext("path", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParsingError("failed to read sheet", err).
			WithContext("path", path).
			WithContext("sheet", sheets[0])
	}
	return rows, nil
}

func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	return strings.Trim(s, `"`)
}
