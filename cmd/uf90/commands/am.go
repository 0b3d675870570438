package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teranos/uf90/am"
	"github.com/teranos/uf90/display"
	"github.com/teranos/uf90/errors"
)

// AmCmd represents the am (configuration) command
var AmCmd = newAmCmd()

// Overridable in tests
var (
	configIntrospection = am.GetConfigIntrospection
	configValue         = am.Get
	workingDir          = os.Getwd
)

func newAmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "am",
		Short: "Manage uf90 configuration",
		Long: `am — Manage uf90 configuration

Display and manage uf90 configuration settings.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (UF90_* prefix)
3. --config file
4. Project config (nearest uf90.toml, searching up directories)
5. User config (~/.uf90/config.toml)
6. System config (/etc/uf90/config.toml)
7. Default values

Examples:
  uf90 am show                    # Show current configuration
  uf90 am show --format json      # Show configuration in JSON format
  uf90 am get sync.workers        # Get specific config value
  uf90 am validate                # Validate current configuration
  uf90 am where                   # Show which file set each value
  uf90 am init                    # Write a default uf90.toml here`,
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current uf90 configuration merged from all sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			data, err := am.Encode(cfg, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	showCmd.Flags().StringVar(&format, "format", am.FormatTOML, "Output format: toml, json, yaml")

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a specific configuration value",
		Long:  "Get a specific configuration value using dot notation (e.g., translate.identifier_prefix, sync.workers)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := configValue(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate current configuration",
		Long:  "Validate that the current uf90 configuration is valid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return errors.Wrap(err, "configuration validation failed")
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).Println("Configuration is valid")
			return nil
		},
	}

	whereCmd := &cobra.Command{
		Use:   "where",
		Short: "Show where configuration is loaded from",
		Long: `Show the configuration cascade and which source set each value.

Lists all configuration sources in order of precedence, then every
effective setting grouped by the file or variable that supplied it.`,
		Args: cobra.NoArgs,
		RunE: runAmWhere,
	}
	whereCmd.Flags().Bool("json", false, "Output settings with their sources as JSON")

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default uf90.toml in the current directory",
		Long: `Write uf90.toml with every setting at its default value.

An existing file is kept unless --force is given; it is then rotated to
uf90.toml.back1 (older backups move to .back2 and .back3).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workingDir()
			if err != nil {
				return errors.Wrap(err, "failed to get working directory")
			}

			v := viper.New()
			am.SetDefaults(v)
			cfg, err := am.LoadWithViper(v)
			if err != nil {
				return err
			}

			path, err := am.InitProjectConfig(dir, cfg, force)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing uf90.toml (keeps a backup)")

	cmd.AddCommand(showCmd, getCmd, validateCmd, whereCmd, initCmd)
	return cmd
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	intro, err := configIntrospection()
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(cmd.OutOrStdout(), intro)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  1. [DEFAULT]  Built-in defaults")
	fmt.Fprintf(out, "  2. [SYSTEM]   %s\n", am.SystemConfigPath)
	fmt.Fprintf(out, "  3. [USER]     ~/%s\n", filepath.Join(am.UserConfigDir, am.UserConfigName))
	fmt.Fprintf(out, "  4. [PROJECT]  ./%s (searches up directories)\n", am.ProjectConfigName)
	fmt.Fprintln(out, "  5. [FLAG]     --config <file>")
	fmt.Fprintf(out, "  6. [ENV]      %s_* environment variables\n", am.EnvPrefix)
	fmt.Fprintln(out)

	type group struct {
		source   am.ConfigSource
		path     string
		settings []am.SettingInfo
	}

	// Group by the file or variable that supplied each value
	groups := make(map[string]*group)
	for _, setting := range intro.Settings {
		key := string(setting.Source)
		if setting.Source != am.SourceDefault && setting.Source != am.SourceEnvironment {
			key += ":" + setting.SourcePath
		}
		g, ok := groups[key]
		if !ok {
			g = &group{source: setting.Source, path: setting.SourcePath}
			groups[key] = g
		}
		g.settings = append(g.settings, setting)
	}

	order := []am.ConfigSource{
		am.SourceDefault,
		am.SourceSystem,
		am.SourceUser,
		am.SourceProject,
		am.SourceExplicit,
		am.SourceEnvironment,
	}

	fmt.Fprintln(out, "Active configuration:")
	for _, source := range order {
		var matched []*group
		for _, g := range groups {
			if g.source == source {
				matched = append(matched, g)
			}
		}
		sort.Slice(matched, func(i, j int) bool { return matched[i].path < matched[j].path })

		for _, g := range matched {
			switch source {
			case am.SourceDefault:
				fmt.Fprintf(out, "\n%s: %d settings\n", source, len(g.settings))
			case am.SourceEnvironment:
				fmt.Fprintf(out, "\n%s: %d settings from environment variables\n", source, len(g.settings))
			default:
				fmt.Fprintf(out, "\n%s: %d settings from %s\n", source, len(g.settings), g.path)
			}

			for _, setting := range g.settings {
				value := fmt.Sprintf("%v", setting.Value)
				if len(value) > 50 {
					value = value[:47] + "..."
				}
				if source == am.SourceEnvironment {
					fmt.Fprintf(out, "  %s = %s (%s)\n", setting.Key, value, setting.SourcePath)
					continue
				}
				fmt.Fprintf(out, "  %s = %s\n", setting.Key, value)
			}
		}
	}
	return nil
}
