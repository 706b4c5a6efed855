package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/rileyhilliard/bleconsole/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = "bleconsole.yaml"
	// GlobalConfigDir is the directory for the per-user config.
	GlobalConfigDir = ".config/bleconsole"
	// GlobalConfigFile is the per-user config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. BLECONSOLE_HEAP_FLOOR.
	EnvPrefix = "BLECONSOLE"
)

// Load reads config from the specified path. An empty path loads defaults
// with environment overrides applied.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found",
					"Run 'bleconsole config init' to create one, or specify one with --config")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. bleconsole.yaml in the current directory
// 3. ~/.config/bleconsole/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}
	if local := filepath.Join(cwd, ConfigFileName); fileExists(local) {
		return local, nil
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		if global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile); fileExists(global) {
			return global, nil
		}
	}

	return "", nil
}

// LoadOrDefault finds and loads the config, falling back to defaults (plus
// environment overrides) when no file exists.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())
	return v
}

// setDefaults registers every key so env overrides work without a file.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)

	v.SetDefault("display.width", d.Display.Width)
	v.SetDefault("display.height", d.Display.Height)
	v.SetDefault("display.header", d.Display.Header)
	v.SetDefault("display.footer", d.Display.Footer)
	v.SetDefault("display.line_height", d.Display.LineHeight)
	v.SetDefault("display.char_width", d.Display.CharWidth)
	v.SetDefault("display.row_chars", d.Display.RowChars)

	v.SetDefault("heap.floor", d.Heap.Floor)
	v.SetDefault("heap.tolerance", d.Heap.Tolerance)
	v.SetDefault("heap.capacity", d.Heap.Capacity)
	v.SetDefault("heap.graph_y", d.Heap.GraphY)
	v.SetDefault("heap.graph_height", d.Heap.GraphHeight)
	v.SetDefault("heap.graph_idle", d.Heap.GraphIdle)
	v.SetDefault("heap.source", d.Heap.Source)
	v.SetDefault("heap.budget", d.Heap.Budget)
	v.SetDefault("heap.restart_grace", d.Heap.RestartGrace)

	v.SetDefault("scan.duration", d.Scan.Duration)
	v.SetDefault("scan.blink_min", d.Scan.BlinkMin)
	v.SetDefault("scan.blink_max", d.Scan.BlinkMax)
	v.SetDefault("scan.card_cache", d.Scan.CardCache)
	v.SetDefault("scan.pause", d.Scan.Pause)

	v.SetDefault("intro.enabled", d.Intro.Enabled)
	v.SetDefault("intro.hold", d.Intro.Hold)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		source := "the environment"
		if path != "" {
			source = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+source)
	}
	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
