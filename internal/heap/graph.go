package heap

import (
	"context"
	"time"

	"github.com/rileyhilliard/bleconsole/internal/display"
	"github.com/rileyhilliard/bleconsole/internal/logger"
)

// Graph layout defaults for a 240x320 panel.
const (
	DefaultGraphHeight = 30
	DefaultGraphY      = 287
	DefaultGraphIdle   = 300 * time.Millisecond
)

// Scale is the result of rescaling a sample window.
type Scale struct {
	Min           uint32
	Max           uint32
	ToleranceLine int // pixels above the graph baseline
	FloorLine     int
	Flat          bool // Min == Max: nothing can be scaled
}

// Rescale finds the chart bounds for a window. Both bounds start at the floor:
// Min only drops for real (nonzero) samples below it and Max only rises for
// samples above it, so Min <= floor and Max >= Min always hold.
func Rescale(window []uint32, th Thresholds, lineHeight int) Scale {
	s := Scale{
		Min:           th.Floor,
		Max:           th.Floor,
		ToleranceLine: lineHeight,
	}
	for _, v := range window {
		if v != 0 && v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}

	s.Flat = s.Min == s.Max
	if s.Flat {
		return s
	}

	s.FloorLine = s.mapValue(uint64(th.Floor), lineHeight)
	warning := th.WarningLine()
	switch {
	case warning > uint64(s.Max):
		s.ToleranceLine = lineHeight
	case warning < uint64(s.Min):
		s.ToleranceLine = 0
	default:
		s.ToleranceLine = s.mapValue(warning, lineHeight)
	}
	return s
}

// BarHeight maps a sample onto [0, lineHeight]. A flat history has no range to
// map against, so every observed column is drawn at full height.
func (s Scale) BarHeight(v uint32, lineHeight int) int {
	if s.Flat {
		return lineHeight
	}
	return s.mapValue(uint64(v), lineHeight)
}

func (s Scale) mapValue(v uint64, lineHeight int) int {
	return int((int64(v) - int64(s.Min)) * int64(lineHeight) / (int64(s.Max) - int64(s.Min)))
}

// GraphOptions positions the chart and tunes its loop.
type GraphOptions struct {
	X          int
	Y          int
	LineHeight int
	Idle       time.Duration
	Logger     logger.Logger
}

// Graph samples free memory into a Ring and draws it as a bar chart.
type Graph struct {
	disp       display.Display
	src        Source
	ring       *Ring
	th         Thresholds
	x, y       int
	lineHeight int
	idle       time.Duration
	log        logger.Logger

	last     uint32
	observed bool
}

// NewGraph creates a graph whose width is one less than the ring's capacity.
// A zero X places the chart two pixels from the right edge.
func NewGraph(d display.Display, src Source, ring *Ring, th Thresholds, opts GraphOptions) *Graph {
	if opts.LineHeight <= 0 {
		opts.LineHeight = DefaultGraphHeight
	}
	if opts.Idle <= 0 {
		opts.Idle = DefaultGraphIdle
	}
	if opts.X == 0 {
		opts.X = d.Width() - (ring.Capacity() - 1) - 2
	}
	if opts.Y == 0 {
		opts.Y = DefaultGraphY
	}
	return &Graph{
		disp:       d,
		src:        src,
		ring:       ring,
		th:         th,
		x:          opts.X,
		y:          opts.Y,
		lineHeight: opts.LineHeight,
		idle:       opts.Idle,
		log:        logger.OrDefault(opts.Logger),
	}
}

// Width is the number of columns drawn.
func (g *Graph) Width() int {
	return g.ring.Capacity() - 1
}

// Ring exposes the sample buffer.
func (g *Graph) Ring() *Ring {
	return g.ring
}

// Observe polls free memory and records it when it changed since the last poll.
func (g *Graph) Observe() bool {
	free := g.src.Free()
	if g.observed && free == g.last {
		return false
	}
	g.ring.Record(free)
	g.last = free
	g.observed = true
	return true
}

// Draw redraws the chart from the ring and returns the scale it used.
func (g *Graph) Draw() Scale {
	width := g.Width()
	window := g.ring.Window(width)
	scale := Rescale(window, g.th, g.lineHeight)

	base := g.y + g.lineHeight
	for i, v := range window {
		bar, bg := g.th.Zone(v).Colors()
		g.disp.DrawLine(g.x+i, g.y, g.x+i, base, bg)
		if v > 0 {
			h := scale.BarHeight(v, g.lineHeight)
			g.disp.DrawLine(g.x+i, base, g.x+i, base-h, bar)
		}
	}

	if !scale.Flat {
		g.disp.DrawFastHLine(g.x, base-scale.ToleranceLine, width, display.LightGrey)
		g.disp.DrawFastHLine(g.x, base-scale.FloorLine, width, display.Red)
	}
	return scale
}

// Run polls and redraws until ctx is done. An unchanged reading sleeps for the
// idle interval instead of redrawing.
func (g *Graph) Run(ctx context.Context) {
	g.log.Debug("heap graph started (%d columns at %d,%d)", g.Width(), g.x, g.y)
	for {
		select {
		case <-ctx.Done():
			g.log.Debug("heap graph stopped")
			return
		default:
		}

		if !g.Observe() {
			select {
			case <-ctx.Done():
				g.log.Debug("heap graph stopped")
				return
			case <-time.After(g.idle):
			}
			continue
		}
		scale := g.Draw()
		g.log.Debug("heap %d (scale %d..%d)", g.last, scale.Min, scale.Max)
	}
}
