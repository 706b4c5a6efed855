package heap

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/bleconsole/internal/display"
	dtest "github.com/rileyhilliard/bleconsole/internal/display/testing"
	"github.com/rileyhilliard/bleconsole/internal/logger"
)

func sequence(values ...uint32) Source {
	i := 0
	return SourceFunc(func() uint32 {
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v
	})
}

func TestRescale(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name   string
		window []uint32
		want   Scale
	}{
		{
			name:   "empty history is flat at the floor",
			window: []uint32{0, 0, 0},
			want:   Scale{Min: 100000, Max: 100000, ToleranceLine: 30, Flat: true},
		},
		{
			name:   "samples at the floor are flat",
			window: []uint32{0, 100000, 100000},
			want:   Scale{Min: 100000, Max: 100000, ToleranceLine: 30, Flat: true},
		},
		{
			name:   "all above the floor keeps Min at the floor",
			window: []uint32{0, 130000, 110000},
			want:   Scale{Min: 100000, Max: 130000, ToleranceLine: 20, FloorLine: 0},
		},
		{
			name:   "straddling the floor",
			window: []uint32{90000, 130000},
			want:   Scale{Min: 90000, Max: 130000, ToleranceLine: 22, FloorLine: 7},
		},
		{
			name:   "all under the floor pins the tolerance line to the top",
			window: []uint32{70000, 80000},
			want:   Scale{Min: 70000, Max: 100000, ToleranceLine: 30, FloorLine: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rescale(tt.window, th, 30)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got.Min, th.Floor)
			assert.LessOrEqual(t, got.Min, got.Max)
		})
	}
}

func TestScaleBarHeight(t *testing.T) {
	s := Rescale([]uint32{90000, 130000}, DefaultThresholds(), 30)
	assert.Equal(t, 0, s.BarHeight(90000, 30))
	assert.Equal(t, 30, s.BarHeight(130000, 30))
	assert.Equal(t, 15, s.BarHeight(110000, 30))

	flat := Rescale([]uint32{100000}, DefaultThresholds(), 30)
	assert.Equal(t, 30, flat.BarHeight(100000, 30))
}

func TestGraphObserve(t *testing.T) {
	rec := dtest.NewRecorder(240, 320)
	g := NewGraph(rec, sequence(5, 5, 6), NewRing(0), DefaultThresholds(), GraphOptions{})

	assert.True(t, g.Observe(), "first reading is always recorded")
	assert.False(t, g.Observe(), "unchanged reading is skipped")
	assert.True(t, g.Observe())
	assert.Equal(t, []uint32{5, 6}, g.Ring().Window(2))
}

func TestGraphDefaults(t *testing.T) {
	rec := dtest.NewRecorder(240, 320)
	g := NewGraph(rec, sequence(1), NewRing(0), DefaultThresholds(), GraphOptions{})

	assert.Equal(t, 60, g.Width())
	assert.Equal(t, 178, g.x)
	assert.Equal(t, DefaultGraphY, g.y)
	assert.Equal(t, DefaultGraphHeight, g.lineHeight)
	assert.Equal(t, DefaultGraphIdle, g.idle)
}

func TestGraphDraw(t *testing.T) {
	rec := dtest.NewRecorder(240, 320)
	g := NewGraph(rec, sequence(130000, 110000), NewRing(0), DefaultThresholds(), GraphOptions{})
	require.True(t, g.Observe())
	require.True(t, g.Observe())

	scale := g.Draw()
	assert.Equal(t, uint32(100000), scale.Min)
	assert.Equal(t, uint32(130000), scale.Max)

	lines := rec.OpsOf(dtest.OpLine)
	require.Len(t, lines, 62, "60 background columns plus 2 bars")

	// empty column: background only
	assert.Equal(t, dtest.Op{Kind: dtest.OpLine, X: 178, Y: 287, X1: 178, Y1: 317, Color: display.Black}, lines[0])

	// newest column is a warning-zone sample at a third of the range
	n := len(lines)
	assert.Equal(t, dtest.Op{Kind: dtest.OpLine, X: 237, Y: 287, X1: 237, Y1: 317, Color: display.DarkGreen}, lines[n-2])
	assert.Equal(t, dtest.Op{Kind: dtest.OpLine, X: 237, Y: 317, X1: 237, Y1: 307, Color: display.Yellow}, lines[n-1])

	hlines := rec.OpsOf(dtest.OpHLine)
	require.Len(t, hlines, 2)
	assert.Equal(t, dtest.Op{Kind: dtest.OpHLine, X: 178, Y: 297, W: 60, Color: display.LightGrey}, hlines[0])
	assert.Equal(t, dtest.Op{Kind: dtest.OpHLine, X: 178, Y: 317, W: 60, Color: display.Red}, hlines[1])
}

func TestGraphDrawFlatSkipsReferenceLines(t *testing.T) {
	rec := dtest.NewRecorder(240, 320)
	g := NewGraph(rec, sequence(100000), NewRing(0), DefaultThresholds(), GraphOptions{})
	g.Observe()

	scale := g.Draw()
	assert.True(t, scale.Flat)
	assert.Empty(t, rec.OpsOf(dtest.OpHLine))

	lines := rec.OpsOf(dtest.OpLine)
	last := lines[len(lines)-1]
	assert.Equal(t, 317-30, last.Y1, "flat history draws a full-height bar")
}

func TestGraphRun(t *testing.T) {
	rec := dtest.NewRecorder(240, 320)
	var polls atomic.Int32
	src := SourceFunc(func() uint32 {
		polls.Add(1)
		return 120500
	})
	log := logger.NewBufferLogger()
	g := NewGraph(rec, src, NewRing(0), DefaultThresholds(), GraphOptions{Idle: time.Millisecond, Logger: log})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		g.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return polls.Load() > 3 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	assert.Equal(t, 1, g.Ring().Cursor(), "constant reading is recorded once")
	assert.Len(t, rec.OpsOf(dtest.OpHLine), 2, "drawn once")
	assert.True(t, log.HasLevel("debug"))
}

func TestGraphDrawEmptyRing(t *testing.T) {
	rec := dtest.NewRecorder(240, 320)
	g := NewGraph(rec, sequence(120000), NewRing(0), DefaultThresholds(), GraphOptions{})

	scale := g.Draw()
	assert.True(t, scale.Flat)
	assert.Len(t, rec.OpsOf(dtest.OpLine), 60, "one background line per column, no bars")
	assert.Empty(t, rec.OpsOf(dtest.OpHLine), "no guide lines without samples")
}
