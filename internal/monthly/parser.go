package monthly

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"tradepulse/pkg/contracts/domain"
)

// Value is a single long-format observation parsed from a wide table.
type Value struct {
	Country   string
	Year      int
	Month     int
	TradeType domain.TradeType
	Value     float64
}

// Parser converts wide-format monthly tables into long records.
// The exclusion set identifies source-table footer and aggregate rows
// that are not countries; it is injected so tests can substitute
// alternate sets.
type Parser struct {
	exclusions map[string]struct{} // upper-cased labels
	logger     *slog.Logger
}

// NewParser creates a parser with the given row exclusion set.
func NewParser(exclusions []string, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}

	set := make(map[string]struct{}, len(exclusions))
	for _, label := range exclusions {
		set[strings.ToUpper(strings.TrimSpace(label))] = struct{}{}
	}

	return &Parser{exclusions: set, logger: logger}
}

// DefaultExclusions returns the footer and aggregate row labels found in
// USITC monthly exports.
func DefaultExclusions() []string {
	return []string{
		"Total",
		"Total:",
		"Unspecified",
		"Transshipment",
		"Internat Organization",
	}
}

// ParseWide parses a wide-format table (header row first) into long
// records. Values that are non-positive or non-numeric after comma and
// quote stripping are dropped; a zero monthly value is treated as no
// trade and omitted rather than kept as an explicit zero.
func (p *Parser) ParseWide(rows [][]string, tradeType domain.TradeType) ([]Value, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty table")
	}

	schema, err := ValidateHeader(rows[0])
	if err != nil {
		return nil, fmt.Errorf("validate header: %w", err)
	}
	if len(schema.Excluded) > 0 {
		p.logger.Warn("excluded unrecognized month columns",
			slog.Any("headers", schema.Excluded))
	}

	var values []Value
	droppedRows := 0
	droppedCells := 0

	for _, row := range rows[1:] {
		if len(row) <= schema.YearCol {
			continue
		}

		country := strings.TrimSpace(row[schema.CountryCol])
		if country == "" {
			continue
		}
		if _, excluded := p.exclusions[strings.ToUpper(country)]; excluded {
			droppedRows++
			continue
		}

		year, err := strconv.Atoi(strings.TrimSpace(row[schema.YearCol]))
		if err != nil {
			droppedRows++
			continue
		}

		for col, month := range schema.MonthCols {
			if col >= len(row) {
				continue
			}
			v, ok := parseValue(row[col])
			if !ok {
				droppedCells++
				continue
			}
			values = append(values, Value{
				Country:   country,
				Year:      year,
				Month:     month,
				TradeType: tradeType,
				Value:     v,
			})
		}
	}

	p.logger.Info("parsed wide-format monthly table",
		slog.Int("values", len(values)),
		slog.Int("dropped_rows", droppedRows),
		slog.Int("dropped_cells", droppedCells))

	return values, nil
}

// parseValue cleans and parses a single cell. Returns false for empty,
// non-numeric, or non-positive values.
func parseValue(cell string) (float64, bool) {
	cleaned := strings.NewReplacer(",", "", `"`, "", "'", "").Replace(strings.TrimSpace(cell))
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
