// Package preview mirrors the emulated panel in a terminal. Two pixel rows
// share one terminal row through the upper half block; text cells print their
// character on top of their background.
package preview

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/bleconsole/internal/display"
)

const halfBlock = "▀"

type cell struct {
	text   string
	fg, bg display.Color
}

// Render draws fb as the operator sees it. The result has one line per two
// pixel rows and one column per pixel.
func Render(fb *display.Framebuffer) string {
	img := fb.Image()
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	rows := (h + 1) / 2

	grid := make([][]cell, rows)
	for r := range grid {
		grid[r] = make([]cell, w)
		for x := 0; x < w; x++ {
			top := pixel(img, x, 2*r)
			bottom := display.Black
			if 2*r+1 < h {
				bottom = pixel(img, x, 2*r+1)
			}
			grid[r][x] = cell{text: halfBlock, fg: top, bg: bottom}
		}
	}

	_, charH := fb.CharSize()
	for _, g := range fb.VisibleGlyphs() {
		r := (g.Y + charH/2) / 2
		if r < 0 || r >= rows || g.X < 0 || g.X >= w {
			continue
		}
		grid[r][g.X] = cell{text: string(g.Rune), fg: g.Fg, bg: g.Bg}
	}

	var b strings.Builder
	for r, row := range grid {
		if r > 0 {
			b.WriteByte('\n')
		}
		writeRow(&b, row)
	}
	return b.String()
}

// writeRow renders runs of identically styled cells with one style each.
func writeRow(b *strings.Builder, row []cell) {
	start := 0
	for i := 1; i <= len(row); i++ {
		if i < len(row) && row[i].fg == row[start].fg && row[i].bg == row[start].bg {
			continue
		}
		var run strings.Builder
		for _, c := range row[start:i] {
			run.WriteString(c.text)
		}
		b.WriteString(styleFor(row[start].fg, row[start].bg).Render(run.String()))
		start = i
	}
}

func styleFor(fg, bg display.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg.Hex())).
		Background(lipgloss.Color(bg.Hex()))
}

func pixel(img *image.RGBA, x, y int) display.Color {
	c := img.RGBAAt(x, y)
	return display.RGB(c.R, c.G, c.B)
}

// Text returns the characters on screen, one line per distinct text row,
// top to bottom, with trailing blanks trimmed.
func Text(fb *display.Framebuffer) []string {
	charW, _ := fb.CharSize()
	cols := fb.Width() / charW

	var lines []string
	var line []rune
	row := -1
	flush := func() {
		if line != nil {
			lines = append(lines, strings.TrimRight(string(line), " "))
		}
	}
	for _, g := range fb.VisibleGlyphs() {
		if g.Y != row {
			flush()
			row = g.Y
			line = []rune(strings.Repeat(" ", cols))
		}
		if col := g.X / charW; col >= 0 && col < cols {
			line[col] = g.Rune
		}
	}
	flush()
	return lines
}
