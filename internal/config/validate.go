package config

import (
	"fmt"

	"github.com/rileyhilliard/bleconsole/internal/errors"
	"github.com/rileyhilliard/bleconsole/internal/scroll"
)

// Validate checks the config and returns structured error messages. Layout
// problems carry the GEOMETRY code; everything else is CONFIG.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config hasn't been loaded yet",
			"This is unexpected - load a config before validating it.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but bleconsole only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade bleconsole or lower the version in bleconsole.yaml")
	}

	if err := validateDisplay(cfg.Display); err != nil {
		return err
	}

	if err := validateHeap(cfg.Heap, cfg.Display); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'heap' section in your bleconsole.yaml.")
	}

	if err := validateScan(cfg.Scan); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'scan' section in your bleconsole.yaml.")
	}

	if cfg.Intro.Hold < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("intro hold can't be negative, got %s", cfg.Intro.Hold),
			"Set intro.hold to 0 to skip the pause.")
	}

	return nil
}

func validateDisplay(d DisplayConfig) error {
	if d.Width <= 0 || d.Height <= 0 {
		return errors.NewGeometry(fmt.Sprintf("panel must have a positive size, got %dx%d", d.Width, d.Height))
	}
	if err := scroll.ValidateGeometry(d.Height, d.Header, d.Footer, d.LineHeight); err != nil {
		return err
	}
	if d.CharWidth <= 0 {
		return errors.NewGeometry(fmt.Sprintf("char width must be positive, got %d", d.CharWidth))
	}
	// two leading spaces plus " dBm" around the padded address and RSSI
	if need, cols := d.RowChars+6, d.Width/d.CharWidth; d.RowChars <= 0 || need > cols {
		return errors.NewGeometry(fmt.Sprintf("row_chars %d needs %d columns, the panel has %d", d.RowChars, need, cols))
	}
	return nil
}

func validateHeap(h HeapConfig, d DisplayConfig) error {
	if h.Floor == 0 {
		return fmt.Errorf("heap floor must be positive")
	}
	if h.Capacity < 2 {
		return fmt.Errorf("sample capacity must be at least 2, got %d", h.Capacity)
	}
	if width := h.Capacity - 1; width > d.Width-2 {
		return fmt.Errorf("a %d column graph doesn't fit a %dpx wide panel", width, d.Width)
	}
	if h.GraphHeight <= 0 {
		return fmt.Errorf("graph height must be positive, got %d", h.GraphHeight)
	}
	if h.GraphY < 0 || h.GraphY+h.GraphHeight >= d.Height {
		return fmt.Errorf("graph at y=%d with height %d runs off a %dpx tall panel", h.GraphY, h.GraphHeight, d.Height)
	}
	if h.GraphIdle <= 0 {
		return fmt.Errorf("graph idle must be positive, got %s", h.GraphIdle)
	}
	switch h.Source {
	case SourceHost, SourceSimulated:
	default:
		return fmt.Errorf("unknown heap source %q (use %q or %q)", h.Source, SourceHost, SourceSimulated)
	}
	if h.RestartGrace < 0 {
		return fmt.Errorf("restart grace can't be negative, got %s", h.RestartGrace)
	}
	return nil
}

func validateScan(s ScanConfig) error {
	if s.Duration <= 0 {
		return fmt.Errorf("scan duration must be positive, got %s", s.Duration)
	}
	if s.BlinkMin <= 0 || s.BlinkMax <= s.BlinkMin {
		return fmt.Errorf("blink range [%s, %s) is empty", s.BlinkMin, s.BlinkMax)
	}
	if s.CardCache < 1 {
		return fmt.Errorf("card cache must hold at least one address, got %d", s.CardCache)
	}
	if s.Pause < 0 {
		return fmt.Errorf("scan pause can't be negative, got %s", s.Pause)
	}
	return nil
}
