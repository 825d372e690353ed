package sheets

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultSheetName is used whenever no tab has been chosen yet.
const DefaultSheetName = "Sheet1"

// Mode selects between the full span and an explicit selection.
type Mode string

const (
	ModeAll    Mode = "all"
	ModeCustom Mode = "custom"
)

// RangeSpec describes the spreadsheet area picked in the range builder.
type RangeSpec struct {
	SheetName  string
	ColumnMode Mode
	Columns    []string
	RowMode    Mode
	RowStart   int
	RowEnd     int
}

// DefaultRangeSpec matches the console's initial state: all columns, rows 1..1000.
func DefaultRangeSpec() RangeSpec {
	return RangeSpec{
		SheetName:  DefaultSheetName,
		ColumnMode: ModeAll,
		Columns:    []string{"A"},
		RowMode:    ModeCustom,
		RowStart:   1,
		RowEnd:     1000,
	}
}

var columnLetters = func() []string {
	cols := make([]string, 26)
	for i := range cols {
		cols[i] = string(rune('A' + i))
	}
	return cols
}()

// Columns returns the selectable column letters A through Z.
func Columns() []string {
	out := make([]string, len(columnLetters))
	copy(out, columnLetters)
	return out
}

func columnIndex(letter string) int {
	if len(letter) != 1 {
		return -1
	}
	c := letter[0]
	if c < 'A' || c > 'Z' {
		return -1
	}
	return int(c - 'A')
}

// ToggleColumn adds letter to cols when absent and removes it otherwise.
// Letters outside A-Z are ignored.
func ToggleColumn(cols []string, letter string) []string {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if columnIndex(letter) < 0 {
		return cols
	}
	out := make([]string, 0, len(cols)+1)
	found := false
	for _, c := range cols {
		if c == letter {
			found = true
			continue
		}
		out = append(out, c)
	}
	if !found {
		out = append(out, letter)
	}
	return out
}

// ColumnSpan returns the bounding letters of a range's column selection.
// Custom selections collapse to their min/max letter; an empty or invalid
// selection widens to A:Z so the range is never degenerate.
func ColumnSpan(spec RangeSpec) (string, string) {
	start, end := "A", "Z"
	if spec.ColumnMode != ModeCustom {
		return start, end
	}
	var idxs []int
	for _, c := range spec.Columns {
		if i := columnIndex(c); i >= 0 {
			idxs = append(idxs, i)
		}
	}
	if len(idxs) == 0 {
		return start, end
	}
	sort.Ints(idxs)
	return columnLetters[idxs[0]], columnLetters[idxs[len(idxs)-1]]
}

// RowSpan clamps the requested rows so that start >= 1 and end >= start.
func RowSpan(start, end int) (int, int) {
	if start < 1 {
		start = 1
	}
	if end < start {
		end = start
	}
	return start, end
}

// BuildRange derives the A1-notation range string for spec.
func BuildRange(spec RangeSpec) string {
	name := strings.TrimSpace(spec.SheetName)
	if name == "" {
		name = DefaultSheetName
	}
	start, end := ColumnSpan(spec)
	if spec.RowMode == ModeAll {
		return fmt.Sprintf("%s!%s:%s", name, start, end)
	}
	rs, re := RowSpan(spec.RowStart, spec.RowEnd)
	return fmt.Sprintf("%s!%s%d:%s%d", name, start, rs, end, re)
}
