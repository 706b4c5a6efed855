// Package progress runs the scan activity pulse: a blinking header disc and a
// progress bar that fills over one scan cycle.
package progress

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/rileyhilliard/bleconsole/internal/display"
	"github.com/rileyhilliard/bleconsole/internal/logger"
	"github.com/rileyhilliard/bleconsole/internal/status"
)

// Defaults for one scan cycle.
const (
	DefaultDuration      = 30 * time.Second
	DefaultBlinkMin      = 333 * time.Millisecond
	DefaultBlinkMax      = 666 * time.Millisecond
	DefaultTick          = 30 * time.Millisecond
	DefaultProgressEvery = time.Second
	DefaultBarY          = 30
	barHeight            = 2
)

// Options tunes a Blink. Zero values take the defaults.
type Options struct {
	Duration      time.Duration
	BlinkMin      time.Duration
	BlinkMax      time.Duration
	Tick          time.Duration
	ProgressEvery time.Duration
	BarY          int
	Seed          uint64
	Logger        logger.Logger
}

// Blink is one bounded activity pulse. A Blink is single use: Run it once.
type Blink struct {
	disp display.Display
	ind  *status.Indicators
	opts Options
	rng  *rand.Rand
	log  logger.Logger
	now  func() time.Time
}

// New creates a pulse drawing on d and the activity indicator.
func New(d display.Display, ind *status.Indicators, opts Options) *Blink {
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.BlinkMin <= 0 {
		opts.BlinkMin = DefaultBlinkMin
	}
	if opts.BlinkMax <= opts.BlinkMin {
		opts.BlinkMax = opts.BlinkMin + (DefaultBlinkMax - DefaultBlinkMin)
	}
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = DefaultProgressEvery
	}
	if opts.BarY == 0 {
		opts.BarY = DefaultBarY
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Blink{
		disp: d,
		ind:  ind,
		opts: opts,
		rng:  rand.New(rand.NewPCG(seed, seed>>1|1)),
		log:  logger.OrDefault(opts.Logger),
		now:  time.Now,
	}
}

// interval samples the next blink period in [BlinkMin, BlinkMax).
func (b *Blink) interval() time.Duration {
	return b.opts.BlinkMin + time.Duration(b.rng.Int64N(int64(b.opts.BlinkMax-b.opts.BlinkMin)))
}

// Percent is how much of the cycle has elapsed with remaining time left.
func Percent(remaining, duration time.Duration) int {
	if duration <= 0 {
		return 100
	}
	return 100 - int(remaining*100/duration)
}

// Run pulses until the cycle ends or ctx is done, then greys out the bar and
// the disc. It always leaves the header in the idle state.
func (b *Blink) Run(ctx context.Context) {
	start := b.now()
	end := start.Add(b.opts.Duration)
	lastBlink, lastProgress := start, start
	next := b.interval()
	on := true

	ticker := time.NewTicker(b.opts.Tick)
	defer ticker.Stop()

	b.log.Debug("scan pulse started for %s", b.opts.Duration)

loop:
	for now := start; now.Before(end); now = b.now() {
		if now.Sub(lastBlink) > next {
			on = !on
			if on {
				b.ind.Activity(display.Bluetooth, true)
			} else {
				b.ind.Activity(display.HeaderBg, false)
			}
			lastBlink = now
			next = b.interval()
		}
		if now.Sub(lastProgress) > b.opts.ProgressEvery {
			pct := Percent(end.Sub(now), b.opts.Duration)
			b.disp.FillRect(0, b.opts.BarY, b.disp.Width()*pct/100, barHeight, display.Bluetooth)
			lastProgress = now
		}

		select {
		case <-ctx.Done():
			b.log.Debug("scan pulse cancelled")
			break loop
		case <-ticker.C:
		}
	}

	b.disp.FillRect(0, b.opts.BarY, b.disp.Width(), barHeight, display.DarkGrey)
	b.ind.Activity(display.DarkGrey, true)
	b.log.Debug("scan pulse ended")
}

// Start runs the pulse on its own goroutine. The channel is closed once the
// header is back to idle.
func (b *Blink) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		b.Run(ctx)
	}()
	return done
}
