package display

import (
	"image"
	"sort"
	"sync"
)

// Default glyph cell of the panel's built-in font at text size 1.
const (
	DefaultCharWidth  = 6
	DefaultCharHeight = 8
)

// Glyph is a character cell stored by DrawText.
type Glyph struct {
	Rune rune
	Fg   Color
	Bg   Color
}

// Framebuffer emulates a TFT panel in memory: RGB565 pixels addressed in
// physical rows, a glyph layer for text, and hardware vertical scrolling.
// It is safe for concurrent use; each call holds the lock until it returns.
type Framebuffer struct {
	mu sync.Mutex

	width, height int
	charW, charH  int
	pix           []Color
	glyphs        map[image.Point]Glyph

	scrollTop    int
	scrollBottom int
	scrollStart  int
}

// NewFramebuffer creates a black panel of the given size.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:       width,
		height:      height,
		charW:       DefaultCharWidth,
		charH:       DefaultCharHeight,
		pix:         make([]Color, width*height),
		glyphs:      make(map[image.Point]Glyph),
		scrollStart: 0,
	}
}

// SetFont changes the glyph cell size used for text.
func (f *Framebuffer) SetFont(charWidth, charHeight int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if charWidth > 0 {
		f.charW = charWidth
	}
	if charHeight > 0 {
		f.charH = charHeight
	}
}

func (f *Framebuffer) Width() int  { return f.width }
func (f *Framebuffer) Height() int { return f.height }

// CharSize returns the glyph cell size.
func (f *Framebuffer) CharSize() (w, h int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.charW, f.charH
}

func (f *Framebuffer) FillScreen(c Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.pix {
		f.pix[i] = c
	}
	f.glyphs = make(map[image.Point]Glyph)
}

func (f *Framebuffer) FillRect(x, y, w, h int, c Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fillRect(x, y, w, h, c)
	f.clearGlyphs(x, y, w, h)
}

func (f *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.line(x0, y0, x1, y1, c)
}

func (f *Framebuffer) DrawFastHLine(x, y, w int, c Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hline(x, y, w, c)
}

func (f *Framebuffer) DrawFastVLine(x, y, h int, c Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vline(x, y, h, c)
}

func (f *Framebuffer) DrawRoundRect(x, y, w, h, r int, c Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	maxRadius := w
	if h < maxRadius {
		maxRadius = h
	}
	maxRadius /= 2
	if r > maxRadius {
		r = maxRadius
	}
	f.hline(x+r, y, w-2*r, c)
	f.hline(x+r, y+h-1, w-2*r, c)
	f.vline(x, y+r, h-2*r, c)
	f.vline(x+w-1, y+r, h-2*r, c)
	f.circleHelper(x+r, y+r, r, CornerTopLeft, c)
	f.circleHelper(x+w-r-1, y+r, r, CornerTopRight, c)
	f.circleHelper(x+w-r-1, y+h-r-1, r, CornerBottomRight, c)
	f.circleHelper(x+r, y+h-r-1, r, CornerBottomLeft, c)
}

func (f *Framebuffer) DrawCircleHelper(x0, y0, r int, corners Corner, c Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.circleHelper(x0, y0, r, corners, c)
}

func (f *Framebuffer) DrawCircle(x0, y0, r int, c Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.set(x0, y0+r, c)
	f.set(x0, y0-r, c)
	f.set(x0+r, y0, c)
	f.set(x0-r, y0, c)
	f.circleHelper(x0, y0, r, CornerTopLeft|CornerTopRight|CornerBottomRight|CornerBottomLeft, c)
}

func (f *Framebuffer) FillCircle(x0, y0, r int, c Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vline(x0, y0-r, 2*r+1, c)

	// midpoint fill, mirrored left and right
	fc := 1 - r
	ddx := 1
	ddy := -2 * r
	x, y := 0, r
	px, py := x, y
	for x < y {
		if fc >= 0 {
			y--
			ddy += 2
			fc += ddy
		}
		x++
		ddx += 2
		fc += ddx
		if x < y+1 {
			f.vline(x0+x, y0-y, 2*y+1, c)
			f.vline(x0-x, y0-y, 2*y+1, c)
		}
		if y != py {
			f.vline(x0+py, y0-px, 2*px+1, c)
			f.vline(x0-py, y0-px, 2*px+1, c)
			py = y
		}
		px = x
	}
}

func (f *Framebuffer) DrawText(x, y int, text string, fg, bg Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	runes := []rune(text)
	f.fillRect(x, y, len(runes)*f.charW, f.charH, bg)
	f.clearGlyphs(x, y, len(runes)*f.charW, f.charH)
	for i, r := range runes {
		if r == ' ' {
			continue
		}
		f.glyphs[image.Pt(x+i*f.charW, y)] = Glyph{Rune: r, Fg: fg, Bg: bg}
	}
}

func (f *Framebuffer) TextBounds(text string) (w, h int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len([]rune(text)) * f.charW, f.charH
}

func (f *Framebuffer) DrawIcon(x, y int, icon Icon) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, h := icon.Size()
	f.fillRect(x, y, w, h, icon.Tint())
	f.clearGlyphs(x, y, w, h)
}

func (f *Framebuffer) SetScrollArea(top, bottom int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scrollTop = top
	f.scrollBottom = bottom
	f.scrollStart = top
}

func (f *Framebuffer) ScrollTo(y int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scrollStart = y
}

// ScrollStart returns the physical row shown at the top of the scrolling band.
func (f *Framebuffer) ScrollStart() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scrollStart
}

// Pixel returns the color at a physical coordinate.
func (f *Framebuffer) Pixel(x, y int) Color {
	f.mu.Lock()
	defer f.mu.Unlock()
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return Black
	}
	return f.pix[y*f.width+x]
}

// GlyphAt returns the glyph whose cell origin is at a physical coordinate.
func (f *Framebuffer) GlyphAt(x, y int) (Glyph, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.glyphs[image.Pt(x, y)]
	return g, ok
}

// PhysicalRow translates a visible row into the physical row the panel shows there.
func (f *Framebuffer) PhysicalRow(visible int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.physicalRow(visible)
}

// TextLine returns the text printed on a physical row, with empty cells as spaces.
func (f *Framebuffer) TextLine(y int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	cols := f.width / f.charW
	line := make([]rune, cols)
	for i := range line {
		line[i] = ' '
	}
	for pt, g := range f.glyphs {
		if pt.Y != y {
			continue
		}
		col := pt.X / f.charW
		if col >= 0 && col < cols {
			line[col] = g.Rune
		}
	}
	return string(line)
}

// VisibleGlyph is a glyph positioned in visible (scrolled) coordinates.
type VisibleGlyph struct {
	Glyph
	X, Y int
}

// VisibleGlyphs returns every glyph translated to where the operator sees it,
// ordered top to bottom, left to right.
func (f *Framebuffer) VisibleGlyphs() []VisibleGlyph {
	f.mu.Lock()
	defer f.mu.Unlock()
	inverse := make(map[int]int, f.height)
	for vy := 0; vy < f.height; vy++ {
		inverse[f.physicalRow(vy)] = vy
	}
	out := make([]VisibleGlyph, 0, len(f.glyphs))
	for pt, g := range f.glyphs {
		vy, ok := inverse[pt.Y]
		if !ok {
			continue
		}
		out = append(out, VisibleGlyph{Glyph: g, X: pt.X, Y: vy})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Image returns the panel as the operator sees it, with hardware scrolling applied.
// Text is represented by its background only; use VisibleGlyphs for characters.
func (f *Framebuffer) Image() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for vy := 0; vy < f.height; vy++ {
		py := f.physicalRow(vy)
		for x := 0; x < f.width; x++ {
			img.SetRGBA(x, vy, f.pix[py*f.width+x].RGBA())
		}
	}
	return img
}

func (f *Framebuffer) physicalRow(visible int) int {
	band := f.height - f.scrollTop - f.scrollBottom
	if band <= 0 || visible < f.scrollTop || visible >= f.scrollTop+band {
		return visible
	}
	shift := f.scrollStart - f.scrollTop
	return f.scrollTop + ((visible-f.scrollTop+shift)%band+band)%band
}

func (f *Framebuffer) set(x, y int, c Color) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	f.pix[y*f.width+x] = c
}

func (f *Framebuffer) fillRect(x, y, w, h int, c Color) {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			f.set(i, j, c)
		}
	}
}

func (f *Framebuffer) clearGlyphs(x, y, w, h int) {
	for pt := range f.glyphs {
		if pt.X >= x && pt.X < x+w && pt.Y >= y && pt.Y < y+h {
			delete(f.glyphs, pt)
		}
	}
}

func (f *Framebuffer) hline(x, y, w int, c Color) {
	for i := x; i < x+w; i++ {
		f.set(i, y, c)
	}
}

func (f *Framebuffer) vline(x, y, h int, c Color) {
	for j := y; j < y+h; j++ {
		f.set(x, j, c)
	}
}

func (f *Framebuffer) line(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		f.set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (f *Framebuffer) circleHelper(x0, y0, r int, corners Corner, c Color) {
	fc := 1 - r
	ddx := 1
	ddy := -2 * r
	x, y := 0, r
	for x < y {
		if fc >= 0 {
			y--
			ddy += 2
			fc += ddy
		}
		x++
		ddx += 2
		fc += ddx
		if corners&CornerBottomRight != 0 {
			f.set(x0+x, y0+y, c)
			f.set(x0+y, y0+x, c)
		}
		if corners&CornerTopRight != 0 {
			f.set(x0+x, y0-y, c)
			f.set(x0+y, y0-x, c)
		}
		if corners&CornerBottomLeft != 0 {
			f.set(x0-y, y0+x, c)
			f.set(x0-x, y0+y, c)
		}
		if corners&CornerTopLeft != 0 {
			f.set(x0-y, y0-x, c)
			f.set(x0-x, y0-y, c)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
