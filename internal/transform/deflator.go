package transform

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"tradepulse/internal/errors"
	"tradepulse/pkg/contracts/domain"
)

// LoadDeflators reads a two-column year,deflator CSV reference file.
// A missing file is fatal and reported with the expected path; there is
// no silent fallback to stale data.
func LoadDeflators(path string) (domain.DeflatorTable, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("deflator reference file").WithContext("path", path)
		}
		return nil, errors.NewStorageError("failed to open deflator file", err).WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParsingError("failed to read deflator CSV", err).WithContext("path", path)
	}
	if len(rows) == 0 {
		return nil, errors.NewParsingError("deflator file is empty", nil).WithContext("path", path)
	}

	table := make(domain.DeflatorTable)
	start := 0
	if isDeflatorHeader(rows[0]) {
		start = 1
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 2 {
			return nil, errors.NewParsingError(
				fmt.Sprintf("deflator row %d has %d columns, expected 2", i+1, len(row)), nil)
		}
		year, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, errors.NewParsingError(fmt.Sprintf("deflator row %d: bad year", i+1), err)
		}
		deflator, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, errors.NewParsingError(fmt.Sprintf("deflator row %d: bad deflator", i+1), err)
		}
		table[year] = deflator
	}

	return table, nil
}

func isDeflatorHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(row[0]))
	return err != nil
}
