package heap

import "github.com/rileyhilliard/bleconsole/internal/display"

// Default thresholds. Storage starts failing allocations under the floor.
const (
	DefaultFloor     uint32 = 100000
	DefaultTolerance uint32 = 20000
)

// Thresholds pairs the hard floor with the tolerance margin.
type Thresholds struct {
	Floor     uint32
	Tolerance uint32
}

// DefaultThresholds returns the stock floor and tolerance.
func DefaultThresholds() Thresholds {
	return Thresholds{Floor: DefaultFloor, Tolerance: DefaultTolerance}
}

// WarningLine is floor + tolerance, the soft line drawn on the graph.
func (t Thresholds) WarningLine() uint64 {
	return uint64(t.Floor) + uint64(t.Tolerance)
}

// Level is the watchdog's classification of free memory.
type Level int

const (
	LevelNominal Level = iota
	LevelWarning
	LevelCritical
)

// String returns a human-readable level.
func (l Level) String() string {
	switch l {
	case LevelNominal:
		return "nominal"
	case LevelWarning:
		return "warning"
	case LevelCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Level classifies free memory. Critical is strictly free + tolerance < floor;
// reaching the floor exactly with the tolerance added is still survivable.
func (t Thresholds) Level(free uint32) Level {
	switch {
	case uint64(free)+uint64(t.Tolerance) < uint64(t.Floor):
		return LevelCritical
	case free < t.Floor:
		return LevelWarning
	default:
		return LevelNominal
	}
}

// Zone is the color band a graph column falls into.
type Zone int

const (
	ZoneEmpty Zone = iota
	ZoneCritical
	ZoneWarning
	ZoneNominal
)

// String returns a human-readable zone.
func (z Zone) String() string {
	switch z {
	case ZoneEmpty:
		return "empty"
	case ZoneCritical:
		return "critical"
	case ZoneWarning:
		return "warning"
	case ZoneNominal:
		return "nominal"
	default:
		return "unknown"
	}
}

// Zone places a sample relative to the warning line and the floor.
func (t Thresholds) Zone(sample uint32) Zone {
	switch {
	case uint64(sample) > t.WarningLine():
		return ZoneNominal
	case sample > t.Floor:
		return ZoneWarning
	case sample > 0:
		return ZoneCritical
	default:
		return ZoneEmpty
	}
}

// Colors returns the bar and background colors for a zone.
func (z Zone) Colors() (bar, bg display.Color) {
	switch z {
	case ZoneNominal:
		return display.Green, display.DarkGrey
	case ZoneWarning:
		return display.Yellow, display.DarkGreen
	case ZoneCritical:
		return display.Red, display.Orange
	default:
		return display.White, display.Black
	}
}
