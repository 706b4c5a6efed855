package card

import (
	"strconv"
	"strings"

	"github.com/rileyhilliard/bleconsole/internal/display"
	"github.com/rileyhilliard/bleconsole/internal/logger"
	"github.com/rileyhilliard/bleconsole/internal/scroll"
)

// DefaultRowChars is the width the address line is padded to before the RSSI.
const DefaultRowChars = 30

const (
	spacer = " "
	indent = "      "
)

// Icon columns inside a card.
const (
	stateIconX   = 138
	serviceIconX = 128
	nicIconX     = 10
	nameIconX    = 12
	rssiInset    = 18
)

// Options tunes a Renderer. Zero values take the defaults.
type Options struct {
	RowChars   int
	Radius     int
	RecentSize int
	Logger     logger.Logger
}

// Renderer prints cards through a scroll.Compositor.
type Renderer struct {
	disp     display.Display
	out      *scroll.Compositor
	recent   *Recent
	rowChars int
	radius   int
	log      logger.Logger
}

// NewRenderer creates a renderer drawing icons and borders on d and text
// through out. Both must refer to the same panel.
func NewRenderer(d display.Display, out *scroll.Compositor, opts Options) *Renderer {
	if opts.RowChars <= 0 {
		opts.RowChars = DefaultRowChars
	}
	if opts.Radius <= 0 {
		opts.Radius = DefaultRadius
	}
	return &Renderer{
		disp:     d,
		out:      out,
		recent:   NewRecent(opts.RecentSize),
		rowChars: opts.RowChars,
		radius:   opts.Radius,
		log:      logger.OrDefault(opts.Logger),
	}
}

// Recent exposes the printed-address cache.
func (r *Renderer) Recent() *Recent {
	return r.recent
}

// Print renders e as a card and returns the pixel height it consumed.
func (r *Renderer) Print(e *Entity) int {
	r.out.SetColors(e.TextColor, display.CardBg)

	pos := r.out.Println(spacer)

	if e.Address != "" && e.RSSI != "" {
		r.recent.Add(e.Address)
		hop := r.out.Println(IdentifierLine(e.Address, e.RSSI, r.rowChars))
		pos += hop
		row := r.out.RowAbove(hop)

		rssi, err := strconv.Atoi(strings.TrimSpace(e.RSSI))
		if err != nil {
			r.log.Debug("card %s: unparsable rssi %q", e.Address, e.RSSI)
		}
		DrawRSSI(r.disp, r.out.Width()-rssiInset, row-1, rssi, e.TextColor)

		if e.Known {
			r.disp.DrawIcon(stateIconX, row, display.IconUpdate)
		} else {
			r.disp.DrawIcon(stateIconX, row, display.IconInsert)
		}
		if e.HasServices {
			r.disp.DrawIcon(serviceIconX, row, display.IconService)
		}
	}

	if e.OUI != "" {
		pos += r.out.Println(spacer)
		hop := r.out.Println(indent + e.OUI)
		pos += hop
		r.disp.DrawIcon(nicIconX, r.out.RowAbove(hop), display.IconNIC)
	}

	if e.Appearance != "" {
		pos += r.out.Println(spacer)
		pos += r.out.Println("  Appearance: " + e.Appearance)
	}

	if e.Name != "" {
		pos += r.out.Println(spacer)
		hop := r.out.Println(indent + e.Name)
		pos += hop
		r.disp.DrawIcon(nameIconX, r.out.RowAbove(hop), display.IconName)
	}

	if icon, x, ok := VendorIcon(e.Vendor); ok {
		pos += r.out.Println(spacer)
		hop := r.out.Println(indent + e.Vendor)
		pos += hop
		r.disp.DrawIcon(x, r.out.RowAbove(hop), icon)
	}

	pos += r.out.Println(spacer)

	height := pos
	if height > r.out.BandHeight() {
		r.log.Warn("card %s is %dpx, taller than the %dpx band; border skipped", e.Address, height, r.out.BandHeight())
		return pos
	}
	Draw(r.disp, Border(r.out.Offset(), height, r.out.BandHeight(), r.radius, r.out.Width(), r.out.Header()), e.BorderColor)
	return pos
}

// IdentifierLine lays out the address and RSSI so the RSSI ends on column
// rowChars+2 regardless of the address length.
func IdentifierLine(addr, rssi string, rowChars int) string {
	pad := rowChars - (len(addr) + len(rssi))
	if pad < 0 {
		pad = 0
	}
	return "  " + addr + strings.Repeat(" ", pad) + rssi + " dBm"
}
