package progress

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/bleconsole/internal/display"
	dtest "github.com/rileyhilliard/bleconsole/internal/display/testing"
	"github.com/rileyhilliard/bleconsole/internal/logger"
	"github.com/rileyhilliard/bleconsole/internal/status"
)

func fastBlink(rec *dtest.Recorder, d time.Duration) *Blink {
	return New(rec, status.NewIndicators(rec), Options{
		Duration:      d,
		BlinkMin:      2 * time.Millisecond,
		BlinkMax:      4 * time.Millisecond,
		Tick:          time.Millisecond,
		ProgressEvery: 10 * time.Millisecond,
		Seed:          1,
		Logger:        logger.Noop(),
	})
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("blink did not finish")
	}
}

func TestNewDefaults(t *testing.T) {
	rec := dtest.NewRecorder(240, 320)
	b := New(rec, status.NewIndicators(rec), Options{})

	assert.Equal(t, DefaultDuration, b.opts.Duration)
	assert.Equal(t, DefaultBlinkMin, b.opts.BlinkMin)
	assert.Equal(t, DefaultBlinkMax, b.opts.BlinkMax)
	assert.Equal(t, DefaultTick, b.opts.Tick)
	assert.Equal(t, DefaultProgressEvery, b.opts.ProgressEvery)
	assert.Equal(t, DefaultBarY, b.opts.BarY)
}

func TestIntervalRange(t *testing.T) {
	rec := dtest.NewRecorder(240, 320)
	b := New(rec, status.NewIndicators(rec), Options{Seed: 9})

	for i := 0; i < 1000; i++ {
		d := b.interval()
		require.GreaterOrEqual(t, d, DefaultBlinkMin)
		require.Less(t, d, DefaultBlinkMax)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(30*time.Second, 30*time.Second))
	assert.Equal(t, 50, Percent(15*time.Second, 30*time.Second))
	assert.Equal(t, 97, Percent(time.Second, 30*time.Second))
	assert.Equal(t, 100, Percent(0, 30*time.Second))
	assert.Equal(t, 100, Percent(time.Second, 0))
}

func TestBlinkRunsToCompletion(t *testing.T) {
	rec := dtest.NewRecorder(240, 320)
	b := fastBlink(rec, 60*time.Millisecond)

	waitDone(t, b.Start(context.Background()))

	ops := rec.Ops()
	require.GreaterOrEqual(t, len(ops), 2)
	assert.Equal(t, dtest.Op{Kind: dtest.OpFillRect, X: 0, Y: 30, W: 240, H: 2, Color: display.DarkGrey}, ops[len(ops)-2])
	assert.Equal(t, dtest.Op{Kind: dtest.OpFillCircle, X: 104, Y: 7, R: 4, Color: display.DarkGrey}, ops[len(ops)-1])

	var bars []dtest.Op
	var toggles int
	for _, op := range ops[:len(ops)-2] {
		switch op.Kind {
		case dtest.OpFillRect:
			bars = append(bars, op)
		case dtest.OpFillCircle:
			toggles++
		}
	}
	assert.Greater(t, toggles, 0, "the disc blinked")
	require.NotEmpty(t, bars, "the bar advanced")
	for i, bar := range bars {
		assert.Equal(t, display.Bluetooth, bar.Color)
		assert.LessOrEqual(t, bar.W, 240)
		if i > 0 {
			assert.GreaterOrEqual(t, bar.W, bars[i-1].W, "the bar only grows")
		}
	}
}

func TestBlinkStopsOnCancel(t *testing.T) {
	rec := dtest.NewRecorder(240, 320)
	b := fastBlink(rec, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := b.Start(ctx)
	time.Sleep(5 * time.Millisecond)
	cancel()
	waitDone(t, done)

	ops := rec.Ops()
	assert.Equal(t, display.DarkGrey, ops[len(ops)-1].Color, "cancelled pulse still idles the header")
}
