package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/bleconsole/internal/config"
	"github.com/rileyhilliard/bleconsole/internal/errors"
)

var configInitGlobal bool

// configCmd groups the config subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or edit configuration",
	Long: `Inspect or edit the bleconsole configuration.

The config is read once at startup. Edits made with 'config set' apply the
next time the console starts.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration the console would boot with: the config file
merged over the defaults, with BLECONSOLE_* environment overrides applied.

Examples:
  bleconsole config show
  BLECONSOLE_HEAP_FLOOR=90000 bleconsole config show`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShow(cmd.OutOrStdout())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default bleconsole.yaml",
	Long: `Write the default configuration to ./bleconsole.yaml, to the path given
with --config, or with --global to ~/.config/bleconsole/config.yaml.
An existing file is never overwritten.

Examples:
  bleconsole config init
  bleconsole config init --global`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configInitPath(cfgFile, configInitGlobal)
		if err != nil {
			return err
		}
		return configInit(cmd.OutOrStdout(), path)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one value in the config file",
	Long: `Set a dotted key in the config file, keeping the rest of the file as is.
The result is validated before the command returns.

Examples:
  bleconsole config set heap.floor 90000
  bleconsole config set scan.duration 20s
  bleconsole config set intro.enabled false`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return configSet(cmd.OutOrStdout(), args[0], args[1])
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitGlobal, "global", false, "write the per-user config instead")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func configShow(w io.Writer) error {
	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return err
	}
	data, err := config.Dump(cfg)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintln(w, "# defaults (no config file found)")
	} else {
		fmt.Fprintf(w, "# %s\n", path)
	}
	_, err = w.Write(data)
	return err
}

// configInitPath picks where "config init" writes.
func configInitPath(explicit string, global bool) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if !global {
		return config.ConfigFileName, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine your home directory",
			"Pass the target path with --config")
	}
	dir := filepath.Join(home, config.GlobalConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to create "+dir,
			"Check directory permissions")
	}
	return filepath.Join(dir, config.GlobalConfigFile), nil
}

func configInit(w io.Writer, path string) error {
	if err := config.WriteDefault(path); err != nil {
		return err
	}
	fmt.Fprintf(w, "Created %s\n", path)
	return nil
}

func configSet(w io.Writer, key, value string) error {
	path, err := config.Find(cfgFile)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"No config file to edit",
			"Run 'bleconsole config init' first")
	}
	if err := config.SetValue(path, key, value); err != nil {
		return err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("%s now holds an invalid config", path),
			fmt.Sprintf("Fix %s before the next start", key))
	}
	fmt.Fprintf(w, "Set %s = %s in %s (applies on next start)\n", key, value, path)
	return nil
}
