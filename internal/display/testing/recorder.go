// Package testing provides test doubles for the display package.
package testing

import (
	"sync"

	"github.com/rileyhilliard/bleconsole/internal/display"
)

// Op kinds recorded by Recorder.
const (
	OpFillScreen   = "fillScreen"
	OpFillRect     = "fillRect"
	OpLine         = "line"
	OpHLine        = "hline"
	OpVLine        = "vline"
	OpRoundRect    = "roundRect"
	OpCircleHelper = "circleHelper"
	OpCircle       = "circle"
	OpFillCircle   = "fillCircle"
	OpText         = "text"
	OpIcon         = "icon"
	OpScrollArea   = "scrollArea"
	OpScrollTo     = "scrollTo"
)

// Op records a single Display call.
type Op struct {
	Kind    string
	X, Y    int
	X1, Y1  int
	W, H    int
	R       int
	Corners display.Corner
	Color   display.Color
	Bg      display.Color
	Text    string
	Icon    display.Icon
}

// Recorder is a Display that remembers every call instead of drawing.
type Recorder struct {
	mu     sync.Mutex
	width  int
	height int
	charW  int
	charH  int
	ops    []Op
}

// NewRecorder creates a recorder for a panel of the given size using the
// default 6x8 glyph cell.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:  width,
		height: height,
		charW:  display.DefaultCharWidth,
		charH:  display.DefaultCharHeight,
	}
}

func (r *Recorder) add(op Op) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

// Ops returns a copy of all recorded calls.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// OpsOf returns recorded calls of the given kinds, in call order.
func (r *Recorder) OpsOf(kinds ...string) []Op {
	want := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	var out []Op
	for _, op := range r.Ops() {
		if want[op.Kind] {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns the text of every DrawText call in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.OpsOf(OpText) {
		out = append(out, op.Text)
	}
	return out
}

// Icons returns every icon placed, in order.
func (r *Recorder) Icons() []display.Icon {
	var out []display.Icon
	for _, op := range r.OpsOf(OpIcon) {
		out = append(out, op.Icon)
	}
	return out
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = nil
}

func (r *Recorder) Width() int  { return r.width }
func (r *Recorder) Height() int { return r.height }

func (r *Recorder) FillScreen(c display.Color) {
	r.add(Op{Kind: OpFillScreen, Color: c})
}

func (r *Recorder) FillRect(x, y, w, h int, c display.Color) {
	r.add(Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) DrawLine(x0, y0, x1, y1 int, c display.Color) {
	r.add(Op{Kind: OpLine, X: x0, Y: y0, X1: x1, Y1: y1, Color: c})
}

func (r *Recorder) DrawFastHLine(x, y, w int, c display.Color) {
	r.add(Op{Kind: OpHLine, X: x, Y: y, W: w, Color: c})
}

func (r *Recorder) DrawFastVLine(x, y, h int, c display.Color) {
	r.add(Op{Kind: OpVLine, X: x, Y: y, H: h, Color: c})
}

func (r *Recorder) DrawRoundRect(x, y, w, h, radius int, c display.Color) {
	r.add(Op{Kind: OpRoundRect, X: x, Y: y, W: w, H: h, R: radius, Color: c})
}

func (r *Recorder) DrawCircleHelper(x0, y0, radius int, corners display.Corner, c display.Color) {
	r.add(Op{Kind: OpCircleHelper, X: x0, Y: y0, R: radius, Corners: corners, Color: c})
}

func (r *Recorder) DrawCircle(x0, y0, radius int, c display.Color) {
	r.add(Op{Kind: OpCircle, X: x0, Y: y0, R: radius, Color: c})
}

func (r *Recorder) FillCircle(x0, y0, radius int, c display.Color) {
	r.add(Op{Kind: OpFillCircle, X: x0, Y: y0, R: radius, Color: c})
}

func (r *Recorder) DrawText(x, y int, text string, fg, bg display.Color) {
	r.add(Op{Kind: OpText, X: x, Y: y, Text: text, Color: fg, Bg: bg})
}

func (r *Recorder) TextBounds(text string) (w, h int) {
	return len([]rune(text)) * r.charW, r.charH
}

func (r *Recorder) DrawIcon(x, y int, icon display.Icon) {
	r.add(Op{Kind: OpIcon, X: x, Y: y, Icon: icon})
}

func (r *Recorder) SetScrollArea(top, bottom int) {
	r.add(Op{Kind: OpScrollArea, Y: top, H: bottom})
}

func (r *Recorder) ScrollTo(y int) {
	r.add(Op{Kind: OpScrollTo, Y: y})
}

var _ display.Display = (*Recorder)(nil)
