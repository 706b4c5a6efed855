package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Heap sources.
const (
	SourceHost      = "host"
	SourceSimulated = "simulated"
)

// Config represents the complete bleconsole.yaml configuration file.
type Config struct {
	Version int           `yaml:"version" mapstructure:"version"`
	Display DisplayConfig `yaml:"display" mapstructure:"display"`
	Heap    HeapConfig    `yaml:"heap" mapstructure:"heap"`
	Scan    ScanConfig    `yaml:"scan" mapstructure:"scan"`
	Intro   IntroConfig   `yaml:"intro" mapstructure:"intro"`
}

// DisplayConfig describes the panel and its fixed areas.
type DisplayConfig struct {
	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`

	// Header and Footer are the fixed bands; the rest scrolls.
	Header int `yaml:"header" mapstructure:"header"`
	Footer int `yaml:"footer" mapstructure:"footer"`

	// LineHeight is one printed line. The scroll band must be a multiple of it.
	LineHeight int `yaml:"line_height" mapstructure:"line_height"`
	CharWidth  int `yaml:"char_width" mapstructure:"char_width"`

	// RowChars is the column the RSSI is right-aligned against on a card.
	RowChars int `yaml:"row_chars" mapstructure:"row_chars"`
}

// HeapConfig controls the watchdog and the heap graph.
type HeapConfig struct {
	// Floor is the free memory under which storage starts failing.
	Floor uint32 `yaml:"floor" mapstructure:"floor"`

	// Tolerance is how far under the floor the console may dip before restarting.
	Tolerance uint32 `yaml:"tolerance" mapstructure:"tolerance"`

	// Capacity is the sample ring size; the graph is one column narrower.
	Capacity    int           `yaml:"capacity" mapstructure:"capacity"`
	GraphY      int           `yaml:"graph_y" mapstructure:"graph_y"`
	GraphHeight int           `yaml:"graph_height" mapstructure:"graph_height"`
	GraphIdle   time.Duration `yaml:"graph_idle" mapstructure:"graph_idle"`

	// Source is "host" (this process against Budget) or "simulated".
	Source string `yaml:"source" mapstructure:"source"`

	// Budget is the byte budget for the host source. Zero measures the
	// process at startup and adds a small headroom.
	Budget uint64 `yaml:"budget" mapstructure:"budget"`

	RestartGrace time.Duration `yaml:"restart_grace" mapstructure:"restart_grace"`
}

// ScanConfig controls one scan cycle's activity pulse.
type ScanConfig struct {
	Duration time.Duration `yaml:"duration" mapstructure:"duration"`
	BlinkMin time.Duration `yaml:"blink_min" mapstructure:"blink_min"`
	BlinkMax time.Duration `yaml:"blink_max" mapstructure:"blink_max"`

	// CardCache is how many printed addresses are remembered as on screen.
	CardCache int `yaml:"card_cache" mapstructure:"card_cache"`

	// Pause between cycles in the demo feed.
	Pause time.Duration `yaml:"pause" mapstructure:"pause"`
}

// IntroConfig controls the cold boot banner.
type IntroConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Hold    time.Duration `yaml:"hold" mapstructure:"hold"`
}

// Band is the height of the scrolling area.
func (d DisplayConfig) Band() int {
	return d.Height - d.Header - d.Footer
}

// DefaultConfig returns a Config for the stock 240x320 panel.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Display: DisplayConfig{
			Width:      240,
			Height:     320,
			Header:     40,
			Footer:     40,
			LineHeight: 8,
			CharWidth:  6,
			RowChars:   30,
		},
		Heap: HeapConfig{
			Floor:        100000,
			Tolerance:    20000,
			Capacity:     61,
			GraphY:       287,
			GraphHeight:  30,
			GraphIdle:    300 * time.Millisecond,
			Source:       SourceSimulated,
			RestartGrace: time.Second,
		},
		Scan: ScanConfig{
			Duration:  30 * time.Second,
			BlinkMin:  333 * time.Millisecond,
			BlinkMax:  666 * time.Millisecond,
			CardCache: 5,
			Pause:     2 * time.Second,
		},
		Intro: IntroConfig{
			Enabled: true,
			Hold:    5 * time.Second,
		},
	}
}
