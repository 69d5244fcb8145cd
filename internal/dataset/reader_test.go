package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "tradepulse/internal/errors"
	"tradepulse/pkg/contracts/domain"
)

func TestReadRows_CSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.csv")
	require.NoError(t, os.WriteFile(path, []byte("Country,Year,Value\nChina,2020,100\nMexico,2020\n"), 0o644))

	rows, err := NewReader(nil).ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"China", "2020", "100"}, rows[1])
	// Ragged rows are allowed; parsers decide what to do with them.
	assert.Len(t, rows[2], 2)
}

func TestReadRows_Excel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Country", "Year", "Value"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"China", 2020, 100}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := NewReader(nil).ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "China", rows[1][0])
}

func TestReadRows_MissingFile(t *testing.T) {
	_, err := NewReader(nil).ReadRows(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeNotFound, appErr.Type)
	assert.Contains(t, appErr.Context, "path")
}

func TestReadAnnual(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "historical.csv")
	content := "Country Name,Calendar Year,Customs Value,Notes\n" +
		"China,2018,\"1,234.5\",x\n" +
		"Mexico,2019,300,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, err := NewReader(nil).ReadAnnual(path, domain.TradeTypeImport)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "China", out[0].Country)
	assert.Equal(t, 2018, out[0].Year)
	assert.InDelta(t, 1234.5, out[0].ValueNominal, 1e-9)
	assert.Equal(t, domain.TradeTypeImport, out[0].TradeType)
}

func TestReadAnnual_HeaderValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("Country,Amount\nChina,100\n"), 0o644))

	_, err := NewReader(nil).ReadAnnual(path, domain.TradeTypeImport)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeValidation, appErr.Type)
}

func TestReadAnnual_BadCellIsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.csv")
	require.NoError(t, os.WriteFile(path, []byte("Country,Year,Value\nChina,20x8,100\n"), 0o644))

	_, err := NewReader(nil).ReadAnnual(path, domain.TradeTypeImport)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)
}
