package sheets

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"id", "full_name", "email"},
		{1, "Ada Lovelace", "ada@example.com"},
		{2, "Grace Hopper", "grace@example.com"},
		{},
		{3, "Linus Torvalds", "linus@example.com"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	_, err := f.NewSheet("Extra")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "roster.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadWorkbook(t *testing.T) {
	path := writeWorkbook(t)

	ds, err := LoadWorkbook(path, "Sheet1!A1:C100")
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "full_name", "email"}, ds.Headers)
	require.Len(t, ds.Records(), 3, "blank rows are skipped")
	assert.Equal(t, "Grace Hopper", ResolveName(ds.Records()[1], ds, "full_name"))
	assert.Equal(t, 3, ds.Count)
}

func TestLoadWorkbookColumnSpan(t *testing.T) {
	path := writeWorkbook(t)

	ds, err := LoadWorkbook(path, "Sheet1!B:C")
	require.NoError(t, err)

	assert.Equal(t, []string{"full_name", "email"}, ds.Headers)
	assert.Equal(t, IndexedRow{"Ada Lovelace", "ada@example.com"}, ds.Records()[0])
}

func TestLoadWorkbookErrors(t *testing.T) {
	path := writeWorkbook(t)

	_, err := LoadWorkbook(path, "no-bang")
	assert.Error(t, err)

	_, err = LoadWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"), "Sheet1!A:Z")
	assert.Error(t, err)
}

func TestWorkbookTabs(t *testing.T) {
	tabs, err := WorkbookTabs(writeWorkbook(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"Sheet1", "Extra"}, tabs)
}

func TestParseRange(t *testing.T) {
	ref, err := ParseRange("Data!A5:E10")
	require.NoError(t, err)
	assert.Equal(t, RangeRef{Sheet: "Data", StartCol: 1, EndCol: 5, StartRow: 5, EndRow: 10}, ref)

	ref, err = ParseRange("Data!C:A")
	require.NoError(t, err)
	assert.Equal(t, 1, ref.StartCol)
	assert.Equal(t, 3, ref.EndCol)
	assert.Zero(t, ref.StartRow)
}
