package card

import (
	"fmt"

	"github.com/rileyhilliard/bleconsole/internal/display"
	"github.com/rileyhilliard/bleconsole/internal/errors"
)

// DefaultRadius is the card corner radius.
const DefaultRadius = 4

// PrimitiveKind is the drawing call a Primitive stands for.
type PrimitiveKind int

const (
	RoundRect PrimitiveKind = iota
	HLine
	VLine
	Arc
)

// Primitive is one drawing call of a card border, in physical coordinates.
type Primitive struct {
	Kind    PrimitiveKind
	X, Y    int
	W, H    int // W for HLine, H for VLine, both for RoundRect
	R       int
	Corners display.Corner
}

// Border computes the outline of a card that ends at offset inside a band of
// the given height. offset is where the next line will go, so the card covers
// [offset-height, offset) modulo band. An offset of 0 means the card ended
// exactly on the band's last row.
//
// When the card fits above offset it is a single rounded rectangle. Otherwise
// its upper part sits at the bottom of the band and its lower part at the top:
// each gets a horizontal edge, side lines where the part is taller than the
// radius, and the two outer arcs. The corners at the wrap point stay square.
func Border(offset, height, band, radius, width, header int) []Primitive {
	if height > band || height < 0 {
		panic(errors.NewGeometry(fmt.Sprintf("card of %dpx can't be framed in a %dpx band", height, band)))
	}
	if offset == 0 {
		offset = band
	}

	top := offset - height
	if top >= 0 {
		return []Primitive{{
			Kind: RoundRect,
			X:    1,
			Y:    header + top + 1,
			W:    width - 2,
			H:    height - 2,
			R:    radius,
		}}
	}

	h1 := -top - 2
	h2 := offset - 2
	lwidth := width - 2
	vpos1 := header + band + top + 1
	vpos2 := header + offset - 2

	prims := []Primitive{
		{Kind: HLine, X: 1 + radius, Y: vpos1, W: lwidth - 2*radius},
		{Kind: HLine, X: 1 + radius, Y: vpos2, W: lwidth - 2*radius},
	}
	if h1 > radius {
		prims = append(prims,
			Primitive{Kind: VLine, X: 1, Y: vpos1 + radius, H: h1 - radius + 1},
			Primitive{Kind: VLine, X: lwidth, Y: vpos1 + radius, H: h1 - radius + 1},
		)
	}
	if h2 > radius {
		prims = append(prims,
			Primitive{Kind: VLine, X: 1, Y: vpos2 - h2, H: h2 - radius + 1},
			Primitive{Kind: VLine, X: lwidth, Y: vpos2 - h2, H: h2 - radius + 1},
		)
	}
	return append(prims,
		Primitive{Kind: Arc, X: 1 + radius, Y: vpos1 + radius, R: radius, Corners: display.CornerTopLeft},
		Primitive{Kind: Arc, X: lwidth - radius, Y: vpos1 + radius, R: radius, Corners: display.CornerTopRight},
		Primitive{Kind: Arc, X: lwidth - radius, Y: vpos2 - radius, R: radius, Corners: display.CornerBottomRight},
		Primitive{Kind: Arc, X: 1 + radius, Y: vpos2 - radius, R: radius, Corners: display.CornerBottomLeft},
	)
}

// Draw issues the primitives on d in one color.
func Draw(d display.Display, prims []Primitive, c display.Color) {
	for _, p := range prims {
		switch p.Kind {
		case RoundRect:
			d.DrawRoundRect(p.X, p.Y, p.W, p.H, p.R, c)
		case HLine:
			d.DrawFastHLine(p.X, p.Y, p.W, c)
		case VLine:
			d.DrawFastVLine(p.X, p.Y, p.H, c)
		case Arc:
			d.DrawCircleHelper(p.X, p.Y, p.R, p.Corners, c)
		}
	}
}
