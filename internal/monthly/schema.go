package monthly

import (
	"fmt"
	"strconv"
	"strings"

	"tradepulse/internal/errors"
)

// Schema describes the layout of a wide-format monthly table after
// up-front header classification. The first two columns must be country
// and year; every remaining column is either a month column (numeric
// header 1..12) or excluded. Classifying headers before parsing replaces
// silent column skipping with a fail-fast check on ambiguous layouts.
type Schema struct {
	CountryCol int
	YearCol    int
	MonthCols  map[int]int // column index -> month number
	Excluded   []string    // headers that could not be classified
}

// ValidateHeader classifies the header row of a wide-format monthly
// table. Unparseable month headers are excluded from aggregation rather
// than failing the parse, trading completeness for resilience to
// column-format drift between source years. Duplicate months or a table
// with no month columns at all fail fast.
func ValidateHeader(header []string) (*Schema, error) {
	if len(header) < 3 {
		return nil, errors.NewValidationError(
			fmt.Sprintf("wide-format header needs country, year and at least one month column, got %d columns", len(header)))
	}

	first := strings.ToLower(strings.TrimSpace(header[0]))
	if !strings.Contains(first, "country") {
		return nil, errors.NewValidationError(
			fmt.Sprintf("first column must be the country column, got %q", header[0]))
	}

	second := strings.ToLower(strings.TrimSpace(header[1]))
	if !strings.Contains(second, "year") {
		return nil, errors.NewValidationError(
			fmt.Sprintf("second column must be the year column, got %q", header[1]))
	}

	schema := &Schema{
		CountryCol: 0,
		YearCol:    1,
		MonthCols:  make(map[int]int),
	}
	seen := make(map[int]int) // month -> column index

	for i := 2; i < len(header); i++ {
		label := strings.TrimSpace(header[i])
		month, err := strconv.Atoi(label)
		if err != nil || month < 1 || month > 12 {
			schema.Excluded = append(schema.Excluded, header[i])
			continue
		}
		if prev, dup := seen[month]; dup {
			return nil, errors.NewValidationError(
				fmt.Sprintf("month %d appears in columns %d and %d", month, prev, i))
		}
		seen[month] = i
		schema.MonthCols[i] = month
	}

	if len(schema.MonthCols) == 0 {
		return nil, errors.NewValidationError("no month columns recognized in header")
	}

	return schema, nil
}
