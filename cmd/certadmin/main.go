package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pluqqy/certadmin/cmd/commands"
	"github.com/pluqqy/certadmin/internal/cli"
	"github.com/pluqqy/certadmin/pkg/files"
	"github.com/pluqqy/certadmin/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	configPath string
	quiet      bool
	noColor    bool
	yes        bool
	output     string
	initForce  bool
)

var rootCmd = &cobra.Command{
	Use:   "certadmin",
	Short: "Terminal console for generating certificates from Google Sheets",
	Long: `certadmin places a name on a certificate template, previews it against
rows from a Google Sheet and asks the certificate backend to render one
file or a ZIP of all of them. Run without a subcommand to open the console.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.ValidateOutputFormat(output); err != nil {
			return err
		}
		cli.SetGlobalFlags(quiet, noColor, yes, output)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := cli.NewCommandContext(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Run 'certadmin init' to create %s, then set api.url.\n", files.ConfigFile)
			return err
		}
		defer ctx.Close()

		if err := ctx.UseFileLogger(); err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}

		if err := tui.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to start the terminal user interface: %v\n", err)
			fmt.Fprintf(os.Stderr, "This could be due to terminal compatibility issues. Try running in a different terminal.\n")
			return err
		}
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a certadmin.yaml in the current directory",
	Long:  `Writes a default certadmin.yaml and creates the download directory`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine current directory: %w", err)
		}

		if _, err := os.Stat(filepath.Join(cwd, files.ConfigFile)); err == nil && !initForce {
			ok, err := cli.Confirm(fmt.Sprintf("%s already exists. Overwrite?", files.ConfigFile), false)
			if err != nil {
				return err
			}
			if !ok {
				cli.PrintInfo("Nothing changed")
				return nil
			}
			initForce = true
		}

		cli.PrintInfo("Initializing certadmin in %s...", cwd)

		path, err := files.InitProjectStructure(cwd, initForce)
		if err != nil {
			return err
		}

		cli.PrintSuccess("Created %s", path)
		cli.PrintInfo("Set api.url (or CERTADMIN_API_URL) and run 'certadmin' to open the console.")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of certadmin",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "certadmin version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ./certadmin.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print errors")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Plain output without symbols")
	rootCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "Answer yes to prompts")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "Output format: text, json, yaml")

	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing certadmin.yaml")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewRangeCommand())
	rootCmd.AddCommand(commands.NewIDCommand())
	rootCmd.AddCommand(commands.NewTabsCommand())
	rootCmd.AddCommand(commands.NewPreviewCommand())
	rootCmd.AddCommand(commands.NewGenerateCommand())
	rootCmd.AddCommand(commands.NewGenerateOneCommand())
	rootCmd.AddCommand(commands.NewRenderCommand())
	rootCmd.AddCommand(commands.NewComposeCommand())
	rootCmd.AddCommand(commands.NewExamplesCommand())
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewSetCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
