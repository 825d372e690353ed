package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/certadmin/internal/cli"
	"github.com/pluqqy/certadmin/pkg/session"
	"github.com/pluqqy/certadmin/pkg/sheets"
)

// loadContext reads and validates configuration for commands that talk
// to the backend.
func loadContext(cmd *cobra.Command) (*cli.CommandContext, error) {
	path, _ := cmd.Flags().GetString("config")
	ctx, err := cli.NewCommandContext(path)
	if err != nil {
		return nil, err
	}
	ctx.UseConsoleLogger()
	return ctx, nil
}

// rangeFlags describe a range from the command line.
type rangeFlags struct {
	sheet   string
	cols    string
	rows    string
	literal string
}

func addRangeFlags(cmd *cobra.Command, f *rangeFlags) {
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "Sheet tab name (default Sheet1)")
	cmd.Flags().StringVar(&f.cols, "cols", "", "Comma-separated columns, e.g. A,C,F (default all)")
	cmd.Flags().StringVar(&f.rows, "rows", "1:1000", "Row span start:end, or 'all'")
	cmd.Flags().StringVar(&f.literal, "range", "", "Literal A1 range; overrides --sheet/--cols/--rows")
}

func (f rangeFlags) spec() (sheets.RangeSpec, error) {
	spec := sheets.DefaultRangeSpec()
	if f.sheet != "" {
		spec.SheetName = f.sheet
	}

	if f.cols != "" {
		spec.ColumnMode = sheets.ModeCustom
		spec.Columns = nil
		for _, c := range strings.Split(f.cols, ",") {
			c = strings.ToUpper(strings.TrimSpace(c))
			if c == "" {
				continue
			}
			if len(c) != 1 || c[0] < 'A' || c[0] > 'Z' {
				return spec, fmt.Errorf("invalid column %q (expected A-Z)", c)
			}
			spec.Columns = sheets.ToggleColumn(spec.Columns, c)
		}
	}

	switch {
	case f.rows == "" || strings.EqualFold(f.rows, "all"):
		spec.RowMode = sheets.ModeAll
	default:
		start, end, ok := strings.Cut(f.rows, ":")
		if !ok {
			return spec, fmt.Errorf("invalid --rows %q (expected start:end)", f.rows)
		}
		s, err := strconv.Atoi(strings.TrimSpace(start))
		if err != nil {
			return spec, fmt.Errorf("invalid row start %q", start)
		}
		e, err := strconv.Atoi(strings.TrimSpace(end))
		if err != nil {
			return spec, fmt.Errorf("invalid row end %q", end)
		}
		spec.RowMode = sheets.ModeCustom
		spec.RowStart, spec.RowEnd = s, e
	}
	return spec, nil
}

func (f rangeFlags) build() (string, error) {
	if f.literal != "" {
		return f.literal, nil
	}
	spec, err := f.spec()
	if err != nil {
		return "", err
	}
	return sheets.BuildRange(spec), nil
}

// styleFlags carry the generation settings shared by generate, generate-one
// and render. Unset flags keep the configured defaults.
type styleFlags struct {
	template      string
	fontFile      string
	fontPreset    string
	fontSize      float64
	fontWeight    int
	letterSpacing float64
	color         string
	x, y          float64
	pageIndex     int
	nameColumn    string
	format        string
	prefix        string
	mode          string
}

func addStyleFlags(cmd *cobra.Command, f *styleFlags) {
	cmd.Flags().StringVarP(&f.template, "template", "t", "", "Template image or PDF (required)")
	cmd.Flags().StringVar(&f.fontFile, "font-file", "", "Custom font file; selects the Custom preset")
	cmd.Flags().StringVar(&f.fontPreset, "font", "", "Font preset")
	cmd.Flags().Float64Var(&f.fontSize, "size", 0, "Font size in px")
	cmd.Flags().IntVar(&f.fontWeight, "weight", 0, "Font weight (100-900)")
	cmd.Flags().Float64Var(&f.letterSpacing, "spacing", 0, "Letter spacing in px")
	cmd.Flags().StringVar(&f.color, "color", "", "Text colour (#rrggbb)")
	cmd.Flags().Float64Var(&f.x, "x", 0.5, "Horizontal position as a fraction of the width")
	cmd.Flags().Float64Var(&f.y, "y", 0.5, "Vertical position as a fraction of the height, from the top")
	cmd.Flags().IntVar(&f.pageIndex, "page", 0, "PDF page index (0-based)")
	cmd.Flags().StringVar(&f.nameColumn, "name-column", "", "Column holding the name")
	cmd.Flags().StringVar(&f.format, "format", "", "Certificate format: pdf or png")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "Filename prefix")
	cmd.Flags().StringVar(&f.mode, "mode", "", "Template mode: auto, image or pdf")
	cmd.MarkFlagRequired("template")
}

func (f styleFlags) validate(cmd *cobra.Command) error {
	if f.format != "" {
		if err := cli.ValidateRenderFormat(f.format); err != nil {
			return err
		}
	}
	if f.mode != "" {
		if err := cli.ValidateMode(f.mode); err != nil {
			return err
		}
	}
	if f.color != "" {
		if err := cli.ValidateColor(f.color); err != nil {
			return err
		}
	}
	if f.fontPreset != "" {
		if err := cli.ValidateFontPreset(f.fontPreset); err != nil {
			return err
		}
	}
	return cli.ValidateFilePath(f.template)
}

// apply loads the template and copies flags onto the session. The
// template goes first since loading it resets the marker.
func (f styleFlags) apply(cmd *cobra.Command, s *session.Session) error {
	if _, err := s.SetTemplate(f.template); err != nil {
		return err
	}
	if f.fontFile != "" {
		if _, err := s.Fonts().RegisterCustom(f.fontFile); err != nil {
			return err
		}
		s.FontPreset = "Custom"
	}
	if f.fontPreset != "" {
		s.FontPreset = f.fontPreset
	}
	if f.fontSize > 0 {
		s.FontSize = f.fontSize
	}
	if f.fontWeight > 0 {
		s.FontWeight = f.fontWeight
	}
	if cmd.Flags().Changed("spacing") {
		s.LetterSpacing = f.letterSpacing
	}
	if f.color != "" {
		s.Color = f.color
	}
	if f.nameColumn != "" {
		s.NameColumn = f.nameColumn
	}
	if f.format != "" {
		s.OutputFormat = f.format
	}
	if cmd.Flags().Changed("prefix") {
		s.FilenamePrefix = f.prefix
	}
	if f.mode != "" {
		s.Mode = f.mode
	}
	s.PageIndex = f.pageIndex
	s.Placement.Place(f.x, f.y)
	return nil
}

// prepareSession builds a session for link with the range and style flags
// applied.
func prepareSession(cmd *cobra.Command, ctx *cli.CommandContext, link string, rf rangeFlags, sf styleFlags) (*session.Session, error) {
	s, err := ctx.NewSession()
	if err != nil {
		return nil, err
	}
	s.SetLink(link)
	if s.SheetID() == "" {
		return nil, session.ErrInvalidSheetLink
	}
	spec, err := rf.spec()
	if err != nil {
		return nil, err
	}
	s.Range = spec
	s.RangeOverride = rf.literal
	if err := sf.apply(cmd, s); err != nil {
		return nil, err
	}
	return s, nil
}
