package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/supportchat/internal/config"
	"github.com/diogo/supportchat/internal/render"
)

// newConfigCmd creates the config command and its subcommands
func newConfigCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change settings",
		Long: `Inspect or change supportchat settings.

Settings live in ~/.supportchat/config.json. The environment variables
` + config.EnvAPIURL + ` and ` + config.EnvProxy + ` and the global flags
override the file.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return writeJSON(cmd.OutOrStdout(), c.cfg)
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := config.GetConfigPath()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Change one setting",
			Long: `Change one setting and save the configuration file.

Keys: ` + strings.Join(config.SettableKeys(), ", "),
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runConfigSet(cmd, args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "themes",
			Short: "List the available color themes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, theme := range render.AvailableThemes() {
					marker := " "
					if theme.Name == render.CurrentTheme().Name {
						marker = "*"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %-12s %s\n", marker, theme.Name, theme.Description)
				}
				return nil
			},
		},
	)

	return cmd
}

func runConfigSet(cmd *cobra.Command, key, value string) error {
	if key == "tui_theme" {
		if _, ok := render.ThemeByName(value); !ok {
			return fmt.Errorf("unknown theme %q (available: %s)", value, strings.Join(render.ThemeNames(), ", "))
		}
	}

	// Environment overrides are not written back
	cfg, err := config.LoadConfigFile()
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := config.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✓ %s = %s", key, value)))
	return nil
}
