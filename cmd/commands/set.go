package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/certadmin/internal/cli"
	"github.com/pluqqy/certadmin/pkg/files"
)

// NewSetCommand creates the set command
func NewSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting in the config file",
		Long: `Change one setting in the config file and save it.

Keys use dots for nesting, e.g. api.url or text.font_size. Local font
faces for quick previews are set per preset: text.font_faces.<preset>.

Examples:
  # Point the console at a backend
  certadmin set api.url https://certs.example.org

  # Render PNGs by default
  certadmin set output.format png

  # Use a local Kanit face for quick previews
  certadmin set text.font_faces.kanit ./fonts/Kanit-Bold.ttf`,
		Args: cobra.ExactArgs(2),
		RunE: runSet,
	}
	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = files.ConfigFile
	}

	key, value := strings.ToLower(args[0]), args[1]
	if _, err := files.UpdateSetting(path, key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if cli.Output() != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), cli.Output(), SettingResult{Key: key, Value: value})
	}
	cli.PrintSuccess("Set %s = %s in %s", key, value, path)
	return nil
}
