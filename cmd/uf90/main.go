package main

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/uf90/am"
	"github.com/teranos/uf90/cmd/uf90/commands"
	"github.com/teranos/uf90/display"
	"github.com/teranos/uf90/errors"
	"github.com/teranos/uf90/logger"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "uf90",
	Short: "uf90 - Unicode Fortran to ASCII translator",
	Long: `uf90 - Unicode Fortran to ASCII translator.

Write Fortran with Greek letters, subscripts and mathematical operators in
.f90u files; uf90 turns them into plain ASCII .f90 sources any compiler
accepts.

Available commands:
  translate - Translate one file
  sync      - Translate every changed source in a project
  check     - Exit 1 when sources need translating
  fpm       - Sync, then run the Fortran build tool
  table     - Print the symbol reference table
  am        - Manage uf90 configuration ("I am")

Examples:
  uf90 translate heat.f90u     # writes heat.f90
  uf90 sync --watch            # keep a project translated
  uf90 fpm -- test             # sync, then 'fpm test'
  uf90 table                   # list every supported symbol`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configFile != "" {
			am.SetConfigFile(configFile)
		}

		cfg, err := am.Load()
		if err != nil {
			return err
		}
		// 'am' and 'version' must still work on a broken configuration
		if !skipsValidation(cmd) {
			if err := cfg.Validate(); err != nil {
				return errors.WithHint(err, "run 'uf90 am where' to see which file sets it")
			}
		}

		verbosity, _ := cmd.Flags().GetCount("verbose")
		logger.SetTheme(cfg.GetLogTheme())
		logger.SetColor(display.ColorEnabled(os.Stderr))
		if !display.ColorEnabled(os.Stdout) {
			pterm.DisableColor()
		}
		if err := logger.Initialize(cfg.Log.JSON, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}

		if logger.ShouldOutput(verbosity, logger.OutputConfig) {
			logger.Debugw("Effective configuration",
				logger.FieldCommand, cmd.CommandPath(),
				logger.FieldConfig, cfg.String())
		}
		return nil
	},
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file merged above uf90.toml")

	// Add commands
	rootCmd.AddCommand(commands.TranslateCmd)
	rootCmd.AddCommand(commands.SyncCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.FpmCmd)
	rootCmd.AddCommand(commands.TableCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func skipsValidation(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == commands.AmCmd || c == commands.VersionCmd {
			return true
		}
	}
	return false
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		os.Exit(commands.ReportError(os.Stderr, err))
	}
}
