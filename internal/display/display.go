package display

// Corner selects quarter-circle arcs for DrawCircleHelper.
// The values match the mask convention of common TFT graphics libraries.
type Corner uint8

const (
	CornerTopLeft     Corner = 1
	CornerTopRight    Corner = 2
	CornerBottomRight Corner = 4
	CornerBottomLeft  Corner = 8
)

// Display is the drawing surface. Implementations must make each call run to
// completion before another caller's call starts.
type Display interface {
	Width() int
	Height() int

	FillScreen(c Color)
	FillRect(x, y, w, h int, c Color)
	DrawLine(x0, y0, x1, y1 int, c Color)
	DrawFastHLine(x, y, w int, c Color)
	DrawFastVLine(x, y, h int, c Color)
	DrawRoundRect(x, y, w, h, r int, c Color)
	DrawCircleHelper(x0, y0, r int, corners Corner, c Color)
	DrawCircle(x0, y0, r int, c Color)
	FillCircle(x0, y0, r int, c Color)

	// DrawText prints a single line of text with its top-left corner at x, y,
	// painting bg behind every glyph cell.
	DrawText(x, y int, text string, fg, bg Color)
	// TextBounds reports the pixel size text would occupy.
	TextBounds(text string) (w, h int)
	DrawIcon(x, y int, icon Icon)

	// SetScrollArea defines the fixed header and footer bands; rows in
	// between scroll in hardware.
	SetScrollArea(top, bottom int)
	// ScrollTo sets the physical row shown at the top of the scrolling band.
	ScrollTo(y int)
}
