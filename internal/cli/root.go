package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/bleconsole/internal/config"
	"github.com/rileyhilliard/bleconsole/internal/logger"
)

// Global flags
var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "bleconsole",
	Short: "Operator console for a BLE scanning appliance",
	Long: `bleconsole drives the 240x320 operator panel of a BLE scanner: a scrolling
log of device cards, header and footer counters, and a free-heap graph that
restarts the process before memory runs out.

Without the appliance hardware the panel is emulated in memory and mirrored
in the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			os.Setenv(logger.DebugEnv, "1")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./bleconsole.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if isUnknownCommandError(err) {
			if name := extractUnknownCommand(err); name != "" {
				fmt.Fprintf(os.Stderr, "✗ Unknown command '%s'\n\n  Run 'bleconsole --help' to see what's available\n", name)
			} else {
				fmt.Fprintf(os.Stderr, "✗ %s\n\n  Run 'bleconsole --help' for usage\n", err)
			}
			os.Exit(1)
		}
		fmt.Fprint(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// isUnknownCommandError reports whether cobra rejected the command line itself.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "bleconsole"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

// loadConfig finds, loads and validates the config for a command.
func loadConfig() (*config.Config, error) {
	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if path == "" {
		logger.Default().Debug("no config file found, using defaults")
	} else {
		logger.Default().Debug("loaded config from %s", path)
	}
	return cfg, nil
}
