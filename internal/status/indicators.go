package status

import "github.com/rileyhilliard/bleconsole/internal/display"

// Indicator geometry in the header.
const (
	IconY     = 7
	IconR     = 4
	ClockX    = 92
	ActivityX = 104
	StorageX  = 116
)

// StorageState is the state of the device database as reported by storage.
type StorageState int

const (
	StorageUnknown StorageState = iota
	StorageOpen
	StorageClosed
	StorageBroken
)

// String returns a human-readable state.
func (s StorageState) String() string {
	switch s {
	case StorageOpen:
		return "open"
	case StorageClosed:
		return "closed"
	case StorageBroken:
		return "broken"
	default:
		return "unknown"
	}
}

// Color is the disc color for the state.
func (s StorageState) Color() display.Color {
	switch s {
	case StorageOpen:
		return display.Yellow
	case StorageClosed:
		return display.DarkGreen
	case StorageBroken:
		return display.Red
	default:
		return display.DarkGrey
	}
}

// Indicators draws the header discs. Every method repaints its disc completely,
// so calling it again with the same input leaves the same pixels.
type Indicators struct {
	disp display.Display
}

// NewIndicators creates indicators drawing on d.
func NewIndicators(d display.Display) *Indicators {
	return &Indicators{disp: d}
}

// Storage paints the database disc.
func (i *Indicators) Storage(state StorageState) {
	i.disp.FillCircle(StorageX, IconY, IconR, state.Color())
}

// Clock paints the clock disc with its two hands. The outline and hands turn
// red while the time is not valid.
func (i *Indicators) Clock(valid bool) {
	outline, hands := display.DarkGreen, display.DarkGrey
	if !valid {
		outline, hands = display.Red, display.Red
	}
	i.disp.FillCircle(ClockX, IconY, IconR, display.GreenYellow)
	i.disp.DrawCircle(ClockX, IconY, IconR, outline)
	i.disp.DrawFastHLine(ClockX, IconY, IconR, hands)
	i.disp.DrawFastVLine(ClockX, IconY, IconR-2, hands)
}

// Activity paints the scan activity disc, or a smaller disc when fill is
// false. Painting the header background unfilled leaves a thin outline of the
// previous color, which is the "off" phase of the blink.
func (i *Indicators) Activity(c display.Color, fill bool) {
	if fill {
		i.disp.FillCircle(ActivityX, IconY, IconR, c)
		return
	}
	i.disp.FillCircle(ActivityX, IconY, IconR-1, c)
}
