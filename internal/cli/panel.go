package cli

import (
	"context"
	"time"

	"github.com/rileyhilliard/bleconsole/internal/config"
	"github.com/rileyhilliard/bleconsole/internal/display"
	"github.com/rileyhilliard/bleconsole/internal/heap"
)

// newPanel creates the emulated panel for cfg.
func newPanel(cfg *config.Config) *display.Framebuffer {
	fb := display.NewFramebuffer(cfg.Display.Width, cfg.Display.Height)
	fb.SetFont(cfg.Display.CharWidth, cfg.Display.LineHeight)
	return fb
}

// newSource picks the free-memory source named by heap.source.
func newSource(cfg *config.Config, seed uint64) heap.Source {
	if cfg.Heap.Source == config.SourceHost {
		return heap.NewHostSource(cfg.Heap.Budget)
	}
	return heap.NewSimulatedSource(heap.SimulatedOptions{
		Period: cfg.Heap.GraphIdle,
		Seed:   seed,
	})
}

// sleepUntil returns a sleep function that wakes early when ctx is done.
func sleepUntil(ctx context.Context) func(time.Duration) {
	return func(d time.Duration) {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}
}
