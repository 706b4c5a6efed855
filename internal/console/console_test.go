package console

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/bleconsole/internal/card"
	"github.com/rileyhilliard/bleconsole/internal/config"
	"github.com/rileyhilliard/bleconsole/internal/display"
	dtest "github.com/rileyhilliard/bleconsole/internal/display/testing"
	"github.com/rileyhilliard/bleconsole/internal/errors"
	"github.com/rileyhilliard/bleconsole/internal/heap"
	"github.com/rileyhilliard/bleconsole/internal/logger"
	"github.com/rileyhilliard/bleconsole/internal/status"
)

type harness struct {
	console  *Console
	rec      *dtest.Recorder
	free     uint32
	sleeps   []time.Duration
	restarts []string
}

func newHarness(t *testing.T, mutate func(cfg *config.Config, opts *Options)) *harness {
	t.Helper()
	h := &harness{rec: dtest.NewRecorder(240, 320), free: 150000}

	cfg := config.DefaultConfig()
	cfg.Intro.Enabled = false
	cfg.Heap.RestartGrace = 0
	opts := Options{
		Config: cfg,
		Source: heap.SourceFunc(func() uint32 { return h.free }),
		Restarter: heap.RestarterFunc(func(reason string) error {
			h.restarts = append(h.restarts, reason)
			return nil
		}),
		Logger: logger.Noop(),
		Now:    func() time.Time { return time.Date(2018, 6, 1, 12, 0, 0, 0, time.UTC) },
		Sleep:  func(d time.Duration) { h.sleeps = append(h.sleeps, d) },
	}
	if mutate != nil {
		mutate(cfg, &opts)
	}

	c, err := New(h.rec, opts)
	require.NoError(t, err)
	h.console = c
	return h
}

func (h *harness) init(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	h.console.Init(ctx)
	t.Cleanup(func() {
		cancel()
		h.console.Wait()
	})
}

func TestNewRejectsBadGeometry(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display.Footer = 37

	_, err := New(dtest.NewRecorder(240, 320), Options{Config: cfg, Logger: logger.Noop()})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrGeometry))
}

func TestNewAssignsSession(t *testing.T) {
	a := newHarness(t, nil)
	b := newHarness(t, nil)
	assert.NotEqual(t, uuid.Nil, a.console.Session())
	assert.NotEqual(t, a.console.Session(), b.console.Session())
}

func TestInitColdBoot(t *testing.T) {
	h := newHarness(t, nil)
	h.rec.Reset()
	h.init(t)

	ops := h.rec.Ops()
	require.NotEmpty(t, ops)
	assert.Equal(t, dtest.Op{Kind: dtest.OpFillScreen, Color: display.Black}, ops[0])
	assert.Equal(t, dtest.Op{Kind: dtest.OpFillRect, X: 0, Y: 40, W: 240, H: 240, Color: display.CardBg}, ops[1])

	texts := h.rec.Texts()
	assert.Contains(t, texts, Title)
	assert.Contains(t, texts, " "+StatusInit)
	assert.Contains(t, texts, " Last:  0 ")
	assert.Empty(t, h.sleeps)
}

func TestInitAfterRestart(t *testing.T) {
	h := newHarness(t, func(_ *config.Config, opts *Options) {
		opts.Restarted = true
	})
	h.rec.Reset()
	h.init(t)

	assert.Empty(t, h.rec.OpsOf(dtest.OpFillScreen), "the panel is kept after a restart")
	assert.Contains(t, h.rec.Texts(), " "+StatusRestart)
	assert.Equal(t, []time.Duration{time.Second}, h.sleeps)
}

func TestInitPlaysIntro(t *testing.T) {
	h := newHarness(t, func(cfg *config.Config, _ *Options) {
		cfg.Intro.Enabled = true
	})
	h.rec.Reset()
	h.init(t)

	texts := h.rec.Texts()
	for _, line := range introBanner {
		assert.Contains(t, texts, line)
	}
	var logos []dtest.Op
	for _, op := range h.rec.OpsOf(dtest.OpIcon) {
		if op.Icon == display.IconLogo && op.X == introLogoX {
			logos = append(logos, op)
		}
	}
	require.Len(t, logos, 1)
	// five blank lines then the banner starting at offset 40: the logo sits
	// one line below the first blank
	assert.Equal(t, 48, logos[0].Y)
	assert.Equal(t, []time.Duration{5 * time.Second}, h.sleeps)
}

func TestUpdateNominal(t *testing.T) {
	h := newHarness(t, nil)
	h.console.SetClockValid(true)

	require.NoError(t, h.console.Update())
	snap := h.console.Stats().Snapshot()
	assert.Equal(t, uint32(150000), snap.FreeHeap)
	assert.Equal(t, "2018-06-01 12:00:00", snap.Time)
	assert.Equal(t, "Uptime: 00:00:00", snap.Uptime)
	assert.Empty(t, h.restarts)
}

func TestUpdateWithoutClock(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.console.Update())
	assert.Equal(t, noTime, h.console.Stats().Snapshot().Time)
}

func TestUpdateRestartsOnHeapExhaustion(t *testing.T) {
	h := newHarness(t, nil)
	h.free = 70000
	h.rec.Reset()

	err := h.console.Update()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrHeap))
	assert.Len(t, h.restarts, 1)
	assert.Contains(t, h.rec.Texts(), " "+StatusOOM)
	assert.Contains(t, h.rec.Texts(), " Heap: 70000 ")
}

func TestRestartGraceUsesConsoleSleep(t *testing.T) {
	h := newHarness(t, func(cfg *config.Config, _ *Options) {
		cfg.Heap.RestartGrace = time.Second
	})
	h.free = 70000

	require.Error(t, h.console.Update())
	assert.Equal(t, []time.Duration{time.Second}, h.sleeps)
	assert.Len(t, h.restarts, 1)
}

func TestPrintCardAndIsOnScreen(t *testing.T) {
	h := newHarness(t, nil)

	height := h.console.PrintCard(&card.Entity{
		Address: "AA:BB:CC:DD:EE:FF",
		RSSI:    "-65",
		Vendor:  card.VendorApple,
	})
	assert.Equal(t, 40, height)
	assert.True(t, h.console.IsOnScreen("AA:BB:CC:DD:EE:FF"))
	assert.False(t, h.console.IsOnScreen("11:22:33:44:55:66"))
}

func TestStartScan(t *testing.T) {
	h := newHarness(t, func(cfg *config.Config, _ *Options) {
		cfg.Scan.Duration = 20 * time.Millisecond
		cfg.Scan.BlinkMin = time.Millisecond
		cfg.Scan.BlinkMax = 2 * time.Millisecond
	})
	h.console.Stats().CountDevice(true)

	done := h.console.StartScan(context.Background())
	assert.Equal(t, uint32(0), h.console.Stats().Snapshot().NewDevices, "cycle counters reset")

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scan pulse did not finish")
	}
	ops := h.rec.Ops()
	assert.Equal(t, display.DarkGrey, ops[len(ops)-1].Color)
}

func TestSetStorage(t *testing.T) {
	h := newHarness(t, nil)
	h.rec.Reset()

	h.console.SetStorage(status.StorageBroken)
	assert.Equal(t, status.StorageBroken, h.console.Stats().Snapshot().Storage)
	assert.Equal(t, []dtest.Op{{Kind: dtest.OpFillCircle, X: status.StorageX, Y: status.IconY, R: status.IconR, Color: display.Red}}, h.rec.Ops())
}

func TestWaitWithoutInit(t *testing.T) {
	h := newHarness(t, nil)
	h.console.Wait()
}
