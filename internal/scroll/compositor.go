// Package scroll drives the hardware-scrolled band between the fixed header
// and footer. Text is always printed on the bottom line of the band; the
// hardware scroll start follows it so the newest line stays at the bottom.
package scroll

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/bleconsole/internal/display"
	"github.com/rileyhilliard/bleconsole/internal/errors"
)

// Align selects how AlignTextAt positions text horizontally.
type Align int

const (
	AlignFree   Align = iota // at the given x
	AlignLeft                // at x = 0
	AlignRight               // flush with the right edge
	AlignCenter              // centered on the panel
)

// Compositor owns the scroll offset. It is driven from a single goroutine;
// the display serializes individual primitives for everyone else.
type Compositor struct {
	disp       display.Display
	header     int
	footer     int
	band       int
	lineHeight int
	cols       int

	offset int
	fg, bg display.Color
}

// New sets up the scroll area on d. The band between header and footer must
// be a positive multiple of lineHeight.
func New(d display.Display, header, footer, lineHeight int) (*Compositor, error) {
	if err := ValidateGeometry(d.Height(), header, footer, lineHeight); err != nil {
		return nil, err
	}
	charW, _ := d.TextBounds(" ")
	if charW <= 0 {
		charW = display.DefaultCharWidth
	}

	c := &Compositor{
		disp:       d,
		header:     header,
		footer:     footer,
		band:       d.Height() - header - footer,
		lineHeight: lineHeight,
		cols:       d.Width() / charW,
		fg:         display.White,
		bg:         display.CardBg,
	}
	d.SetScrollArea(header, footer)
	return c, nil
}

// ValidateGeometry checks the band derived from a panel height.
func ValidateGeometry(height, header, footer, lineHeight int) error {
	if lineHeight <= 0 {
		return errors.NewGeometry(fmt.Sprintf("line height must be positive, got %d", lineHeight))
	}
	if header < 0 || footer < 0 {
		return errors.NewGeometry(fmt.Sprintf("header (%d) and footer (%d) can't be negative", header, footer))
	}
	band := height - header - footer
	if band <= 0 {
		return errors.NewGeometry(fmt.Sprintf("no room to scroll: height %d, header %d, footer %d", height, header, footer))
	}
	if band%lineHeight != 0 {
		return errors.NewGeometry(fmt.Sprintf("scroll band of %dpx is not a multiple of the %dpx line height", band, lineHeight))
	}
	return nil
}

// SetColors sets the text and line background colors for Println.
func (c *Compositor) SetColors(fg, bg display.Color) {
	c.fg = fg
	c.bg = bg
}

// Offset is the next line's position inside the band, in [0, BandHeight).
func (c *Compositor) Offset() int { return c.offset }

// BandHeight is the height of the scrolling region.
func (c *Compositor) BandHeight() int { return c.band }

// Header is the height of the fixed top area.
func (c *Compositor) Header() int { return c.header }

// Footer is the height of the fixed bottom area.
func (c *Compositor) Footer() int { return c.footer }

// Width is the panel width.
func (c *Compositor) Width() int { return c.disp.Width() }

// LineHeight is the pixel height of one printed line.
func (c *Compositor) LineHeight() int { return c.lineHeight }

// Columns is how many characters fit on one line.
func (c *Compositor) Columns() int { return c.cols }

// Bottom is the physical row the next line is printed on.
func (c *Compositor) Bottom() int { return c.header + c.offset }

// Println prints text on the bottom line and scrolls it into view. Text wider
// than the panel, or containing newlines, takes several lines. It returns the
// number of pixel rows consumed.
func (c *Compositor) Println(text string) int {
	lines := c.wrap(text)
	for _, line := range lines {
		y := c.header + c.offset
		c.disp.FillRect(0, y, c.disp.Width(), c.lineHeight, c.bg)
		if line != "" {
			c.disp.DrawText(0, y, line, c.fg, c.bg)
		}
		c.offset = (c.offset + c.lineHeight) % c.band
		c.disp.ScrollTo(c.header + c.offset)
	}
	return len(lines) * c.lineHeight
}

func (c *Compositor) wrap(text string) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		runes := []rune(para)
		if len(runes) == 0 {
			out = append(out, "")
			continue
		}
		for len(runes) > 0 {
			n := c.cols
			if n <= 0 || n > len(runes) {
				n = len(runes)
			}
			out = append(out, string(runes[:n]))
			runes = runes[n:]
		}
	}
	return out
}

// RowAbove returns the physical row px pixels above the bottom line, wrapping
// inside the band. RowAbove(hop) after a Println is the row that line landed on.
func (c *Compositor) RowAbove(px int) int {
	rel := ((c.offset-px)%c.band + c.band) % c.band
	return c.header + rel
}

// AlignTextAt clears the area text will cover with bg and draws it. Only x is
// adjusted by the alignment.
func (c *Compositor) AlignTextAt(text string, x, y int, fg, bg display.Color, align Align) {
	w, h := c.disp.TextBounds(text)
	switch align {
	case AlignLeft:
		x = 0
	case AlignRight:
		x = c.disp.Width() - w
	case AlignCenter:
		x = c.disp.Width()/2 - w/2
	}
	c.disp.FillRect(x, y, w, h, bg)
	c.disp.DrawText(x, y, text, fg, bg)
}

// Clear fills the band with bg and rewinds to its top.
func (c *Compositor) Clear(bg display.Color) {
	c.disp.FillRect(0, c.header, c.disp.Width(), c.band, bg)
	c.offset = 0
	c.disp.ScrollTo(c.header)
}
