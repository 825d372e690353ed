package sheets

import (
	"regexp"
	"testing"
)

func TestBuildRange(t *testing.T) {
	tests := []struct {
		name     string
		spec     RangeSpec
		expected string
	}{
		{
			name:     "defaults",
			spec:     DefaultRangeSpec(),
			expected: "Sheet1!A1:Z1000",
		},
		{
			name: "custom columns collapse to bounding span and end clamps to start",
			spec: RangeSpec{
				SheetName:  "Data",
				ColumnMode: ModeCustom,
				Columns:    []string{"C", "A", "E"},
				RowMode:    ModeCustom,
				RowStart:   5,
				RowEnd:     2,
			},
			expected: "Data!A5:E5",
		},
		{
			name:     "all rows",
			spec:     RangeSpec{SheetName: "Roster", ColumnMode: ModeAll, RowMode: ModeAll},
			expected: "Roster!A:Z",
		},
		{
			name:     "empty custom selection falls back to A:Z",
			spec:     RangeSpec{SheetName: "Roster", ColumnMode: ModeCustom, RowMode: ModeAll},
			expected: "Roster!A:Z",
		},
		{
			name: "invalid letters are ignored",
			spec: RangeSpec{
				SheetName:  "Roster",
				ColumnMode: ModeCustom,
				Columns:    []string{"AA", "q", "", "D"},
				RowMode:    ModeAll,
			},
			expected: "Roster!D:D",
		},
		{
			name:     "blank sheet name falls back",
			spec:     RangeSpec{SheetName: "   ", RowMode: ModeCustom, RowStart: 0, RowEnd: 0},
			expected: "Sheet1!A1:Z1",
		},
		{
			name:     "negative start clamps to one",
			spec:     RangeSpec{SheetName: "S", RowMode: ModeCustom, RowStart: -4, RowEnd: 10},
			expected: "S!A1:Z10",
		},
		{
			name:     "sheet name is trimmed",
			spec:     RangeSpec{SheetName: "  Names ", RowMode: ModeAll},
			expected: "Names!A:Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildRange(tt.spec); got != tt.expected {
				t.Errorf("BuildRange() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBuildRangeShape(t *testing.T) {
	bounded := regexp.MustCompile(`^[^!]+![A-Z]\d*:[A-Z]\d*$`)
	open := regexp.MustCompile(`^[^!]+![A-Z]:[A-Z]$`)

	for start := -2; start <= 4; start++ {
		for end := -2; end <= 4; end++ {
			for _, rowMode := range []Mode{ModeAll, ModeCustom} {
				spec := RangeSpec{
					SheetName:  "Sheet",
					ColumnMode: ModeCustom,
					Columns:    []string{"Z", "B"},
					RowMode:    rowMode,
					RowStart:   start,
					RowEnd:     end,
				}
				got := BuildRange(spec)
				if !bounded.MatchString(got) && !open.MatchString(got) {
					t.Fatalf("BuildRange(%+v) = %q has unexpected shape", spec, got)
				}
				ref, err := ParseRange(got)
				if err != nil {
					t.Fatalf("ParseRange(%q): %v", got, err)
				}
				if ref.StartRow > 0 && ref.EndRow < ref.StartRow {
					t.Errorf("range %q has end before start", got)
				}
			}
		}
	}
}

func TestToggleColumn(t *testing.T) {
	cols := ToggleColumn(nil, "c")
	if len(cols) != 1 || cols[0] != "C" {
		t.Fatalf("expected [C], got %v", cols)
	}
	cols = ToggleColumn(cols, "A")
	cols = ToggleColumn(cols, "C")
	if len(cols) != 1 || cols[0] != "A" {
		t.Errorf("expected [A], got %v", cols)
	}
	if got := ToggleColumn(cols, "AA"); len(got) != 1 {
		t.Errorf("multi-letter columns should be ignored, got %v", got)
	}
}

func TestColumns(t *testing.T) {
	cols := Columns()
	if len(cols) != 26 || cols[0] != "A" || cols[25] != "Z" {
		t.Errorf("unexpected columns %v", cols)
	}
	cols[0] = "mutated"
	if Columns()[0] != "A" {
		t.Error("Columns should return a copy")
	}
}
