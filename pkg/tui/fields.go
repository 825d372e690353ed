package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pluqqy/certadmin/internal/cli"
	"github.com/pluqqy/certadmin/pkg/fonts"
	"github.com/pluqqy/certadmin/pkg/notices"
	"github.com/pluqqy/certadmin/pkg/request"
	"github.com/pluqqy/certadmin/pkg/session"
	"github.com/pluqqy/certadmin/pkg/sheets"
)

var (
	modes   = []string{request.ModeAuto, request.ModeImage, request.ModePDF}
	formats = []string{"pdf", "png"}
)

const (
	minWeight = 100
	maxWeight = 900
)

// cycleString steps through options starting from current.
func cycleString(options []string, current string, delta int) string {
	if len(options) == 0 {
		return current
	}
	i := 0
	for j, o := range options {
		if o == current {
			i = j
			break
		}
	}
	i = (i + delta) % len(options)
	if i < 0 {
		i += len(options)
	}
	return options[i]
}

// emptyValue stands in for unset fields.
const emptyValue = "—"

func orDash(v string) string {
	if v == "" {
		return emptyValue
	}
	return v
}

func sheetFields() []field {
	return []field{
		{
			label: "Sheet link",
			value: func(s *session.Session) string { return s.Selection.LinkText },
			set: func(s *session.Session, v string) (string, error) {
				s.SetLink(v)
				if v != "" && s.SheetID() == "" {
					return "", errors.New(notices.T(notices.InvalidSheetLink))
				}
				return "", nil
			},
		},
		{
			label: "Sheet ID",
			value: func(s *session.Session) string { return orDash(s.SheetID()) },
		},
		{
			label: "Tab",
			value: func(s *session.Session) string {
				if s.Selection.ActiveTab != "" {
					return fmt.Sprintf("%s (%d)", s.Selection.ActiveTab, len(s.Selection.Tabs))
				}
				return s.Range.SheetName
			},
			set: func(s *session.Session, v string) (string, error) {
				if v == "" || s.SelectTab(v) {
					return "", nil
				}
				if len(s.Selection.Tabs) > 0 {
					return "", fmt.Errorf("unknown tab %q", v)
				}
				s.Range.SheetName = v
				return "", nil
			},
			cycle: func(s *session.Session, delta int) {
				s.Selection.CycleTab(delta)
				if s.Selection.ActiveTab != "" {
					s.Range.SheetName = s.Selection.ActiveTab
				}
			},
		},
		{
			label: "Columns",
			value: func(s *session.Session) string {
				if s.Range.ColumnMode != sheets.ModeCustom {
					return "all (A:Z)"
				}
				return strings.Join(s.Range.Columns, ",")
			},
			set: func(s *session.Session, v string) (string, error) {
				if strings.EqualFold(v, string(sheets.ModeAll)) {
					s.Range.ColumnMode = sheets.ModeAll
					return "", nil
				}
				cols, err := parseColumns(v)
				if err != nil {
					return "", err
				}
				s.Range.ColumnMode = sheets.ModeCustom
				s.Range.Columns = cols
				return "", nil
			},
		},
		{
			label: "Rows",
			value: func(s *session.Session) string {
				if s.Range.RowMode == sheets.ModeAll {
					return "all"
				}
				start, end := sheets.RowSpan(s.Range.RowStart, s.Range.RowEnd)
				return fmt.Sprintf("%d:%d", start, end)
			},
			set: func(s *session.Session, v string) (string, error) {
				if strings.EqualFold(v, string(sheets.ModeAll)) {
					s.Range.RowMode = sheets.ModeAll
					return "", nil
				}
				start, end, err := parseRows(v)
				if err != nil {
					return "", err
				}
				s.Range.RowMode = sheets.ModeCustom
				s.Range.RowStart, s.Range.RowEnd = start, end
				return "", nil
			},
		},
		{
			label: "Range",
			value: func(s *session.Session) string { return s.CurrentRange() },
			set: func(s *session.Session, v string) (string, error) {
				s.RangeOverride = v
				return "", nil
			},
		},
	}
}

// parseColumns reads letters separated by commas or spaces.
func parseColumns(v string) ([]string, error) {
	var cols []string
	for _, part := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' }) {
		letter := strings.ToUpper(part)
		if !cli.Contains(sheets.Columns(), letter) {
			return nil, fmt.Errorf("invalid column %q (expected A-Z)", part)
		}
		if !cli.Contains(cols, letter) {
			cols = sheets.ToggleColumn(cols, letter)
		}
	}
	if len(cols) == 0 {
		return nil, errors.New("select at least one column")
	}
	return cols, nil
}

// parseRows reads "start:end" or "start-end".
func parseRows(v string) (int, int, error) {
	parts := strings.FieldsFunc(v, func(r rune) bool { return r == ':' || r == '-' })
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid rows %q (expected start:end or all)", v)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start row: %w", err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid end row: %w", err)
	}
	start, end = sheets.RowSpan(start, end)
	return start, end, nil
}

func parsePositive(v, what string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("%s must be a positive number", what)
	}
	return f, nil
}

func styleFields() []field {
	return []field{
		{
			label: "Template",
			value: func(s *session.Session) string { return orDash(s.TemplatePath()) },
			set: func(s *session.Session, v string) (string, error) {
				if v == "" {
					s.ClearTemplate()
					return "", nil
				}
				if _, err := s.SetTemplate(v); err != nil {
					return "", errors.New(notices.F(notices.TemplateFailed, err))
				}
				return notices.F(notices.TemplateLoaded, s.Mode), nil
			},
		},
		{
			label: "Mode",
			value: func(s *session.Session) string { return s.Mode },
			cycle: func(s *session.Session, delta int) { s.Mode = cycleString(modes, s.Mode, delta) },
		},
		{
			label: "PDF page",
			value: func(s *session.Session) string { return strconv.Itoa(s.PageIndex) },
			set: func(s *session.Session, v string) (string, error) {
				n, err := strconv.Atoi(v)
				if err != nil || n < 0 {
					return "", errors.New("page must be a whole number from 0")
				}
				s.PageIndex = n
				return "", nil
			},
		},
		{
			label: "Font",
			value: func(s *session.Session) string { return fonts.FindPreset(s.FontPreset).Label },
			cycle: func(s *session.Session, delta int) {
				s.FontPreset = cycleString(fonts.Keys(), s.FontPreset, delta)
			},
		},
		{
			label: "Font file",
			value: func(s *session.Session) string {
				if a := s.Fonts().Custom(); a != nil {
					return a.Filename
				}
				return emptyValue
			},
			set: func(s *session.Session, v string) (string, error) {
				if v == "" {
					s.Fonts().ClearCustom()
					if s.FontPreset == fonts.CustomKey {
						s.FontPreset = fonts.Presets[0].Key
					}
					return "", nil
				}
				a, err := s.Fonts().RegisterCustom(v)
				if err != nil {
					return "", err
				}
				s.FontPreset = fonts.CustomKey
				return notices.F(notices.FontLoaded, a.Filename), nil
			},
		},
		{
			label: "Size",
			value: func(s *session.Session) string { return strconv.FormatFloat(s.FontSize, 'f', -1, 64) },
			set: func(s *session.Session, v string) (string, error) {
				f, err := parsePositive(v, "size")
				if err != nil {
					return "", err
				}
				s.FontSize = f
				return "", nil
			},
		},
		{
			label: "Weight",
			value: func(s *session.Session) string { return strconv.Itoa(s.FontWeight) },
			cycle: func(s *session.Session, delta int) {
				w := s.FontWeight + delta*100
				if w < minWeight {
					w = minWeight
				}
				if w > maxWeight {
					w = maxWeight
				}
				s.FontWeight = w
			},
		},
		{
			label: "Spacing",
			value: func(s *session.Session) string { return strconv.FormatFloat(s.LetterSpacing, 'f', -1, 64) },
			set: func(s *session.Session, v string) (string, error) {
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return "", errors.New("spacing must be a number")
				}
				s.LetterSpacing = f
				return "", nil
			},
		},
		{
			label: "Color",
			value: func(s *session.Session) string { return s.Color },
			set: func(s *session.Session, v string) (string, error) {
				if err := cli.ValidateColor(v); err != nil {
					return "", err
				}
				s.Color = v
				return "", nil
			},
		},
		{
			label: "Name column",
			value: func(s *session.Session) string { return s.NameColumn },
			set: func(s *session.Session, v string) (string, error) {
				if v == "" {
					return "", errors.New("name column cannot be empty")
				}
				s.NameColumn = v
				return "", nil
			},
			cycle: func(s *session.Session, delta int) {
				if ds := s.Dataset(); ds != nil && len(ds.Headers) > 0 {
					s.NameColumn = cycleString(ds.Headers, s.NameColumn, delta)
				}
			},
		},
		{
			label: "Format",
			value: func(s *session.Session) string { return s.OutputFormat },
			cycle: func(s *session.Session, delta int) {
				s.OutputFormat = cycleString(formats, s.OutputFormat, delta)
			},
		},
		{
			label: "Prefix",
			value: func(s *session.Session) string { return s.FilenamePrefix },
			set: func(s *session.Session, v string) (string, error) {
				s.FilenamePrefix = v
				return "", nil
			},
		},
		{
			label: "Example",
			value: func(s *session.Session) string { return s.ExampleFilename() },
		},
	}
}
