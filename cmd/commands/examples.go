package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/certadmin/internal/cli"
	"github.com/pluqqy/certadmin/pkg/examples"
)

func NewExamplesCommand() *cobra.Command {
	var category string
	var dir string
	var listOnly bool
	var force bool

	cmd := &cobra.Command{
		Use:   "examples [category]",
		Short: "Install sample rosters and certificate templates",
		Long: `Install sample roster workbooks and blank certificate templates.

The samples let you try the offline commands without a Google Sheet or a
running backend: load rows with 'preview --xlsx' and draw a name with
'compose'.

Categories:
  thai         - Thai names in a full_name column (default)
  latin        - Accented Latin names that exercise filename slugs
  all          - Install every sample`,
		Example: `  # Install the Thai sample
  certadmin examples

  # List samples without installing
  certadmin examples --list

  # Install everything into ./samples, overwriting existing files
  certadmin examples all --dir samples --force

  # Try them out
  certadmin preview --xlsx samples/example-thai-roster.xlsx --sheet Participants
  certadmin compose -t samples/example-thai-template.png --name "สมชาย ใจดี"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				category = args[0]
			} else if category == "" {
				if listOnly {
					category = "all"
				} else {
					category = "thai"
				}
			}

			if !cli.Contains(examples.Categories, category) {
				return fmt.Errorf("invalid category '%s'. Valid categories: %s",
					category, strings.Join(examples.Categories, ", "))
			}

			if listOnly {
				return listExamples(cmd, category)
			}
			return installExamples(cmd, category, dir, force)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category of samples to install")
	cmd.Flags().StringVarP(&dir, "dir", "d", "samples", "Directory to install samples into")
	cmd.Flags().BoolVarP(&listOnly, "list", "l", false, "List available samples without installing")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing sample files")

	return cmd
}

func listExamples(cmd *cobra.Command, category string) error {
	out := cmd.OutOrStdout()
	for _, set := range examples.GetExamples(category) {
		fmt.Fprintf(out, "📦 [%s] %s\n", set.Category, set.Name)
		fmt.Fprintf(out, "   %s\n", set.Description)
		fmt.Fprintf(out, "   • %s (%d rows, sheet %s)\n", set.Roster.Filename, len(set.Roster.Rows), set.Roster.Sheet)
		fmt.Fprintf(out, "   • %s (%dx%d)\n\n", set.Template.Filename, set.Template.Width, set.Template.Height)
	}
	return nil
}

func installExamples(cmd *cobra.Command, category, dir string, force bool) error {
	out := cmd.OutOrStdout()
	installed, skipped := 0, 0

	record := func(path string, err error) error {
		if errors.Is(err, examples.ErrExists) {
			skipped++
			fmt.Fprintf(out, "   ⚠️  Skipped %s (use --force to overwrite)\n", path)
			return nil
		}
		if err != nil {
			return err
		}
		installed++
		fmt.Fprintf(out, "   ✓ Installed %s\n", path)
		return nil
	}

	for _, set := range examples.GetExamples(category) {
		fmt.Fprintf(out, "📦 Installing %s...\n", set.Name)

		path, err := examples.InstallRoster(dir, set.Roster, force)
		if path == "" {
			path = set.Roster.Filename
		}
		if err := record(path, err); err != nil {
			return fmt.Errorf("failed to install roster %s: %w", set.Roster.Filename, err)
		}

		path, err = examples.InstallTemplate(dir, set.Template, force)
		if path == "" {
			path = set.Template.Filename
		}
		if err := record(path, err); err != nil {
			return fmt.Errorf("failed to install template %s: %w", set.Template.Filename, err)
		}
	}

	fmt.Fprintln(out)
	cli.PrintSuccess("Installed %d files into %s", installed, dir)
	if skipped > 0 {
		cli.PrintWarning("%d files skipped (already exist)", skipped)
	}
	return nil
}
