package card

import "github.com/rileyhilliard/bleconsole/internal/display"

// RSSIBars returns the colors of the four signal bars, weakest first. Bars
// above the signal level take the off color.
func RSSIBars(rssi int, off display.Color) [4]display.Color {
	switch {
	case rssi >= -30:
		return [4]display.Color{display.Green, display.Green, display.Green, display.Green}
	case rssi >= -67:
		return [4]display.Color{display.Green, display.Green, display.Green, off}
	case rssi >= -70:
		return [4]display.Color{display.Yellow, display.Yellow, display.Yellow, off}
	case rssi >= -80:
		return [4]display.Color{display.Yellow, display.Yellow, off, off}
	default:
		return [4]display.Color{display.Red, off, off, off}
	}
}

// DrawRSSI draws the bars as four 2px columns of rising height, bottom
// aligned on y+8.
func DrawRSSI(d display.Display, x, y, rssi int, off display.Color) {
	bars := RSSIBars(rssi, off)
	for i, c := range bars {
		d.FillRect(x+3*i, y+4-i, 2, 4+i, c)
	}
}
