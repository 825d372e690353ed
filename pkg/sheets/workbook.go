package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RangeRef is a parsed A1 range. Zero rows mean the span is open.
type RangeRef struct {
	Sheet    string
	StartCol int
	EndCol   int
	StartRow int
	EndRow   int
}

// ParseRange parses ranges produced by BuildRange, e.g. "Data!A5:E10" or "Data!A:Z".
func ParseRange(s string) (RangeRef, error) {
	sheet, area, ok := strings.Cut(s, "!")
	if !ok || sheet == "" {
		return RangeRef{}, fmt.Errorf("range %q has no sheet name", s)
	}
	from, to, ok := strings.Cut(area, ":")
	if !ok {
		return RangeRef{}, fmt.Errorf("range %q is not a span", s)
	}
	ref := RangeRef{Sheet: sheet}
	var err error
	if ref.StartCol, ref.StartRow, err = splitCell(from); err != nil {
		return RangeRef{}, fmt.Errorf("range %q: %w", s, err)
	}
	if ref.EndCol, ref.EndRow, err = splitCell(to); err != nil {
		return RangeRef{}, fmt.Errorf("range %q: %w", s, err)
	}
	if ref.EndCol < ref.StartCol {
		ref.StartCol, ref.EndCol = ref.EndCol, ref.StartCol
	}
	return ref, nil
}

func splitCell(cell string) (col, row int, err error) {
	i := 0
	for i < len(cell) && (cell[i] < '0' || cell[i] > '9') {
		i++
	}
	col, err = excelize.ColumnNameToNumber(cell[:i])
	if err != nil {
		return 0, 0, err
	}
	if i < len(cell) {
		row, err = strconv.Atoi(cell[i:])
		if err != nil {
			return 0, 0, fmt.Errorf("bad row in %q", cell)
		}
	}
	return col, row, nil
}

// LoadWorkbook reads the area named by rangeString from a local .xlsx file.
// The first row of the area becomes the headers.
func LoadWorkbook(path, rangeString string) (*Dataset, error) {
	ref, err := ParseRange(rangeString)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	all, err := f.GetRows(ref.Sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", ref.Sheet, err)
	}

	first, last := 1, len(all)
	if ref.StartRow > 0 {
		first = ref.StartRow
	}
	if ref.EndRow > 0 && ref.EndRow < last {
		last = ref.EndRow
	}

	var headers []string
	var rows []Row
	for n := first; n <= last; n++ {
		cells := sliceColumns(all[n-1], ref.StartCol, ref.EndCol)
		if headers == nil {
			headers = trimTrailingEmpty(cells)
			continue
		}
		if isBlank(cells) {
			continue
		}
		rows = append(rows, IndexedRow(cells))
	}
	if headers == nil {
		headers = []string{}
	}
	return NewDataset(headers, rows), nil
}

// WorkbookTabs lists the sheet names of a local workbook in order.
func WorkbookTabs(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

func sliceColumns(row []string, startCol, endCol int) []string {
	out := make([]string, 0, endCol-startCol+1)
	for c := startCol; c <= endCol; c++ {
		if c-1 < len(row) {
			out = append(out, row[c-1])
		} else {
			out = append(out, "")
		}
	}
	return out
}

func trimTrailingEmpty(cells []string) []string {
	n := len(cells)
	for n > 0 && strings.TrimSpace(cells[n-1]) == "" {
		n--
	}
	return cells[:n]
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
