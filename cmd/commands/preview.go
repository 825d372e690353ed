package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pluqqy/certadmin/internal/cli"
	"github.com/pluqqy/certadmin/pkg/notices"
	"github.com/pluqqy/certadmin/pkg/sheets"
)

// PreviewResult represents the output structure for the preview command
type PreviewResult struct {
	Source     string          `json:"source" yaml:"source"`
	Range      string          `json:"range" yaml:"range"`
	Headers    []string        `json:"headers" yaml:"headers"`
	Count      int             `json:"count" yaml:"count"`
	NameColumn string          `json:"name_column" yaml:"name_column"`
	Rows       []PreviewRowOut `json:"rows" yaml:"rows"`
}

// PreviewRowOut is one listed row
type PreviewRowOut struct {
	Index    int    `json:"index" yaml:"index"`
	Name     string `json:"name" yaml:"name"`
	Filename string `json:"filename" yaml:"filename"`
}

var (
	previewRange      rangeFlags
	previewXLSX       string
	previewLimit      int
	previewNameColumn string
	previewPrefix     string
	previewFormat     string
)

// NewPreviewCommand creates the preview command
func NewPreviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [link-or-id]",
		Short: "Show the rows in a sheet range with their certificate filenames",
		Long: `Fetch the rows of a range and show each row's resolved name and the
file it would be saved as.

With --xlsx the rows are read from a local workbook instead of the backend.

Examples:
  certadmin preview 1AbCdEfGhIjKlMnOpQrStUv --sheet Students --rows 1:50
  certadmin preview --xlsx roster.xlsx --sheet Sheet1 -o json`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if previewXLSX == "" && len(args) == 0 {
				return fmt.Errorf("a sheet link or --xlsx is required")
			}
			if previewXLSX != "" {
				return cli.ValidateFilePath(previewXLSX)
			}
			return nil
		},
		RunE: runPreview,
	}

	addRangeFlags(cmd, &previewRange)
	cmd.Flags().StringVar(&previewXLSX, "xlsx", "", "Read rows from a local .xlsx workbook")
	cmd.Flags().IntVarP(&previewLimit, "limit", "n", 24, "Rows to list (0 for all)")
	cmd.Flags().StringVar(&previewNameColumn, "name-column", "", "Column holding the name (default full_name or first header)")
	cmd.Flags().StringVar(&previewPrefix, "prefix", "CERT_", "Filename prefix")
	cmd.Flags().StringVar(&previewFormat, "format", "pdf", "Certificate format: pdf or png")

	return cmd
}

func runPreview(cmd *cobra.Command, args []string) error {
	if err := cli.ValidateRenderFormat(previewFormat); err != nil {
		return err
	}
	rng, err := previewRange.build()
	if err != nil {
		return err
	}

	var ds *sheets.Dataset
	source := previewXLSX
	if previewXLSX != "" {
		ds, err = sheets.LoadWorkbook(previewXLSX, rng)
		if err != nil {
			return err
		}
	} else {
		ctx, err := loadContext(cmd)
		if err != nil {
			return err
		}
		defer ctx.Close()

		s, err := ctx.NewSession()
		if err != nil {
			return err
		}
		s.SetLink(args[0])
		s.RangeOverride = rng
		ds, err = s.LoadPreview(cmd.Context())
		if err != nil {
			cli.PrintError(notices.PreviewFailed)
			return err
		}
		source = s.SheetID()
	}

	result := buildPreviewResult(ds, source, rng)
	if cli.Output() != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), cli.Output(), result)
	}

	cli.PrintSuccess(notices.PreviewLoaded, result.Count, rng)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Headers: %v\nName column: %s\n\n", result.Headers, result.NameColumn)
	table := cli.NewTableFormatter(out)
	table.Header("#", "NAME", "FILENAME")
	for _, r := range result.Rows {
		table.Row(strconv.Itoa(r.Index+1), r.Name, r.Filename)
	}
	table.Flush()
	return nil
}

func buildPreviewResult(ds *sheets.Dataset, source, rng string) PreviewResult {
	column := previewNameColumn
	if column == "" {
		column = ds.DefaultNameColumn("full_name")
	}
	records := ds.Records()
	n := len(records)
	if previewLimit > 0 && previewLimit < n {
		n = previewLimit
	}
	result := PreviewResult{
		Source:     source,
		Range:      rng,
		Headers:    ds.Headers,
		Count:      len(records),
		NameColumn: column,
		Rows:       make([]PreviewRowOut, 0, n),
	}
	for i := 0; i < n; i++ {
		name := sheets.DisplayName(ds, i, column)
		result.Rows = append(result.Rows, PreviewRowOut{
			Index:    i,
			Name:     name,
			Filename: sheets.Filename(previewPrefix, name, previewFormat),
		})
	}
	return result
}
