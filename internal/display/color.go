package display

import (
	"fmt"
	"image/color"
)

// Color is a 16-bit RGB565 panel color.
type Color uint16

// RGB packs 8-bit channels into RGB565.
func RGB(r, g, b uint8) Color {
	return Color(uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b>>3))
}

// RGBA expands the color to 8-bit channels.
func (c Color) RGBA() color.RGBA {
	r := uint8(c>>11) & 0x1F
	g := uint8(c>>5) & 0x3F
	b := uint8(c) & 0x1F
	return color.RGBA{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
		A: 0xFF,
	}
}

// Hex renders the color as #RRGGBB.
func (c Color) Hex() string {
	rgba := c.RGBA()
	return fmt.Sprintf("#%02X%02X%02X", rgba.R, rgba.G, rgba.B)
}

// WROVER kit palette.
const (
	Black       Color = 0x0000
	Navy        Color = 0x000F
	DarkGreen   Color = 0x03E0
	DarkCyan    Color = 0x03EF
	Maroon      Color = 0x7800
	Purple      Color = 0x780F
	Olive       Color = 0x7BE0
	LightGrey   Color = 0xC618
	DarkGrey    Color = 0x7BEF
	Blue        Color = 0x001F
	Green       Color = 0x07E0
	Cyan        Color = 0x07FF
	Red         Color = 0xF800
	Magenta     Color = 0xF81F
	Yellow      Color = 0xFFE0
	White       Color = 0xFFFF
	Orange      Color = 0xFD20
	GreenYellow Color = 0xAFE5
)

// Console colors.
var (
	HeaderBg    = RGB(0x22, 0x22, 0x22)
	FooterBg    = RGB(0x22, 0x22, 0x22)
	CardBg      = RGB(0x22, 0x22, 0x44)
	InCache     = RGB(0x37, 0x6b, 0x37)
	NotInCache  = RGB(0xa4, 0xa0, 0x5f)
	Anonymous   = RGB(0x88, 0x88, 0x88)
	NamedDevice = RGB(0xee, 0xee, 0xee)
	Bluetooth   = RGB(0x14, 0x54, 0xf0)
	DarkOrange  = RGB(0x80, 0x40, 0x00)
)
