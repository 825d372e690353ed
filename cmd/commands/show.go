package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/certadmin/internal/cli"
	"github.com/pluqqy/certadmin/pkg/files"
)

// SettingResult is one configuration value
type SettingResult struct {
	Key   string      `json:"key" yaml:"key"`
	Value interface{} `json:"value" yaml:"value"`
}

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [key-prefix]",
		Short: "Display the configuration in effect",
		Long: `Display every setting after defaults, the config file and
CERTADMIN_* environment variables are merged.

Examples:
  # Show everything
  certadmin show

  # Show only text settings
  certadmin show text

  # Output as JSON
  certadmin show -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShow,
	}
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	all, err := files.EffectiveSettings(path)
	if err != nil {
		return err
	}

	prefix := ""
	if len(args) > 0 {
		prefix = strings.ToLower(args[0])
	}

	var results []SettingResult
	for key, value := range all {
		if strings.HasPrefix(key, prefix) {
			results = append(results, SettingResult{Key: key, Value: value})
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Key < results[j].Key })
	if len(results) == 0 {
		return fmt.Errorf("no settings match %q", prefix)
	}

	if cli.Output() != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), cli.Output(), results)
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("KEY", "VALUE")
	for _, r := range results {
		table.Row(r.Key, fmt.Sprintf("%v", r.Value))
	}
	table.Flush()
	return nil
}
