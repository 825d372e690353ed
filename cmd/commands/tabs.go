package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/certadmin/internal/cli"
	"github.com/pluqqy/certadmin/pkg/notices"
	"github.com/pluqqy/certadmin/pkg/session"
	"github.com/pluqqy/certadmin/pkg/sheets"
)

var errInvalidLink = errors.New(notices.T(notices.InvalidSheetLink))

// TabsResult represents the output structure for the tabs command
type TabsResult struct {
	SheetID string   `json:"sheet_id" yaml:"sheet_id"`
	Tabs    []string `json:"tabs" yaml:"tabs"`
}

var tabsXLSX string

// NewTabsCommand creates the tabs command
func NewTabsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tabs [link-or-id]",
		Short: "List the tabs of a spreadsheet",
		Long: `Ask the backend for the tab names of a spreadsheet.

Examples:
  certadmin tabs "https://docs.google.com/spreadsheets/d/1AbC.../edit"
  certadmin tabs 1AbCdEfGhIjKlMnOpQrStUv -o json
  certadmin tabs --xlsx roster.xlsx`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if tabsXLSX == "" && len(args) == 0 {
				return fmt.Errorf("a sheet link or --xlsx is required")
			}
			return nil
		},
		RunE: runTabs,
	}

	cmd.Flags().StringVar(&tabsXLSX, "xlsx", "", "List the tabs of a local .xlsx workbook")

	return cmd
}

func runTabs(cmd *cobra.Command, args []string) error {
	if tabsXLSX != "" {
		tabs, err := sheets.WorkbookTabs(tabsXLSX)
		if err != nil {
			return err
		}
		return printTabs(cmd, tabsXLSX, tabs)
	}

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

	tabs, err := s.SyncTabs(cmd.Context())
	if err != nil {
		if errors.Is(err, session.ErrInvalidSheetLink) {
			return errInvalidLink
		}
		cli.PrintError(notices.TabsSyncFailed)
		return err
	}

	return printTabs(cmd, s.SheetID(), tabs)
}

func printTabs(cmd *cobra.Command, source string, tabs []string) error {
	if cli.Output() != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), cli.Output(), TabsResult{SheetID: source, Tabs: tabs})
	}
	cli.PrintSuccess(notices.TabsSynced, len(tabs))
	for _, t := range tabs {
		fmt.Fprintln(cmd.OutOrStdout(), "  "+t)
	}
	return nil
}
