// Package examples installs sample rosters and blank certificate templates
// so the offline commands can be tried without a spreadsheet or backend.
package examples

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/xuri/excelize/v2"
)

// ErrExists is returned when an example file is already present and
// overwriting was not requested.
var ErrExists = errors.New("example already exists")

// ExampleSet is one roster plus the template it is meant for.
type ExampleSet struct {
	Category    string
	Name        string
	Description string
	Roster      Roster
	Template    Template
}

// Roster is a small sheet of recipients.
type Roster struct {
	Filename string
	Sheet    string
	Headers  []string
	Rows     [][]string
}

// Template describes a blank certificate background.
type Template struct {
	Filename      string
	Width, Height int
	Title         string
	Background    string
	Accent        string
}

// Categories lists the installable categories in display order.
var Categories = []string{"thai", "latin", "all"}

// GetExamples returns example sets for the given category
func GetExamples(category string) []ExampleSet {
	switch category {
	case "thai":
		return []ExampleSet{thaiExample()}
	case "latin":
		return []ExampleSet{latinExample()}
	case "all":
		return []ExampleSet{thaiExample(), latinExample()}
	default:
		return []ExampleSet{}
	}
}

func thaiExample() ExampleSet {
	return ExampleSet{
		Category:    "thai",
		Name:        "Thai workshop",
		Description: "Thai recipient names with a full_name column and a landscape A4 template",
		Roster: Roster{
			Filename: "example-thai-roster.xlsx",
			Sheet:    "Participants",
			Headers:  []string{"id", "full_name", "email"},
			Rows: [][]string{
				{"1", "สมชาย ใจดี", "somchai@example.com"},
				{"2", "สุดารัตน์ แก้วมณี", "sudarat@example.com"},
				{"3", "ณัฐพล ศรีสุข", "nattapon@example.com"},
				{"4", "กมลชนก วงศ์ไทย", "kamonchanok@example.com"},
			},
		},
		Template: Template{
			Filename:   "example-thai-template.png",
			Width:      1754,
			Height:     1240,
			Title:      "CERTIFICATE OF PARTICIPATION",
			Background: "#fdf8ee",
			Accent:     "#8a6d3b",
		},
	}
}

func latinExample() ExampleSet {
	return ExampleSet{
		Category:    "latin",
		Name:        "Conference speakers",
		Description: "Accented Latin names that exercise filename slugs, keyed by a name column",
		Roster: Roster{
			Filename: "example-latin-roster.xlsx",
			Sheet:    "Speakers",
			Headers:  []string{"name", "talk"},
			Rows: [][]string{
				{"José Ñúñez", "Streaming joins"},
				{"Zoë Brontë", "Typography at scale"},
				{"Anaïs Lefèvre", "Certificates/PDF pipelines"},
			},
		},
		Template: Template{
			Filename:   "example-latin-template.png",
			Width:      1600,
			Height:     1131,
			Title:      "CERTIFICATE OF APPRECIATION",
			Background: "#ffffff",
			Accent:     "#1f4e79",
		},
	}
}

func checkTarget(path string, force bool) error {
	if force {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w at %s", ErrExists, path)
	}
	return nil
}

// InstallRoster writes the set's roster workbook into dir.
func InstallRoster(dir string, r Roster, force bool) (string, error) {
	path := filepath.Join(dir, r.Filename)
	if err := checkTarget(path, force); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", r.Sheet); err != nil {
		return "", fmt.Errorf("failed to name sheet: %w", err)
	}

	lines := append([][]string{r.Headers}, r.Rows...)
	for i, line := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return "", err
		}
		values := make([]interface{}, len(line))
		for j, v := range line {
			values[j] = v
		}
		if err := f.SetSheetRow(r.Sheet, cell, &values); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}
	return path, nil
}

// InstallTemplate draws the set's blank template into dir as a PNG.
func InstallTemplate(dir string, t Template, force bool) (string, error) {
	path := filepath.Join(dir, t.Filename)
	if err := checkTarget(path, force); err != nil {
		return "", err
	}

	w, h := float64(t.Width), float64(t.Height)
	dc := gg.NewContext(t.Width, t.Height)
	dc.SetHexColor(t.Background)
	dc.Clear()

	// Double frame
	dc.SetHexColor(t.Accent)
	dc.SetLineWidth(w / 120)
	dc.DrawRectangle(w*0.03, h*0.04, w*0.94, h*0.92)
	dc.Stroke()
	dc.SetLineWidth(w / 600)
	dc.DrawRectangle(w*0.05, h*0.07, w*0.90, h*0.86)
	dc.Stroke()

	dc.DrawStringAnchored(t.Title, w/2, h*0.25, 0.5, 0.5)

	// Signature line under the name area
	dc.SetLineWidth(w / 800)
	dc.DrawLine(w*0.3, h*0.62, w*0.7, h*0.62)
	dc.Stroke()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}
	return path, nil
}
