package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/pluqqy/certadmin/internal/cli"
	"github.com/pluqqy/certadmin/pkg/notices"
	"github.com/pluqqy/certadmin/pkg/sheets"
)

// RangeResult represents the output structure for the range command
type RangeResult struct {
	Range string `json:"range" yaml:"range"`
}

// IDResult represents the output structure for the id command
type IDResult struct {
	ID string `json:"id" yaml:"id"`
}

var (
	rangeOpts rangeFlags
	rangeCopy bool
)

// NewRangeCommand creates the range command
func NewRangeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "range",
		Short: "Build an A1 range from a sheet, columns and rows",
		Long: `Build the A1 range string sent to the backend.

Examples:
  # Whole default area
  certadmin range

  # Columns B..D of the Students tab, rows 2 to 200
  certadmin range --sheet Students --cols B,D --rows 2:200

  # Every row, copied to the clipboard
  certadmin range --rows all --copy`,
		Args: cobra.NoArgs,
		RunE: runRange,
	}

	addRangeFlags(cmd, &rangeOpts)
	cmd.Flags().BoolVar(&rangeCopy, "copy", false, "Copy the range to the clipboard")

	return cmd
}

func runRange(cmd *cobra.Command, args []string) error {
	rng, err := rangeOpts.build()
	if err != nil {
		return err
	}

	if rangeCopy {
		if err := clipboard.WriteAll(rng); err != nil {
			cli.PrintWarning(notices.ClipboardFailed)
		} else {
			cli.PrintSuccess(notices.RangeCopied)
		}
	}

	if cli.Output() != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), cli.Output(), RangeResult{Range: rng})
	}
	fmt.Fprintln(cmd.OutOrStdout(), rng)
	return nil
}

// NewIDCommand creates the id command
func NewIDCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "id <link-or-id>",
		Short: "Extract the spreadsheet id from a Google Sheets link",
		Long: `Extract the spreadsheet id from a Google Sheets link or a bare id.

Examples:
  certadmin id "https://docs.google.com/spreadsheets/d/1AbC.../edit#gid=0"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := sheets.ExtractIdentifier(args[0])
			if id == "" {
				return errInvalidLink
			}
			if cli.Output() != string(cli.FormatText) {
				return cli.OutputResults(cmd.OutOrStdout(), cli.Output(), IDResult{ID: id})
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}
