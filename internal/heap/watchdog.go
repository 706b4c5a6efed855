package heap

import (
	"time"

	"github.com/rileyhilliard/bleconsole/internal/errors"
	"github.com/rileyhilliard/bleconsole/internal/logger"
)

// DefaultRestartGrace is how long the final status stays on screen before restarting.
const DefaultRestartGrace = time.Second

// Restarter replaces the running process with a fresh one.
type Restarter interface {
	Restart(reason string) error
}

// RestarterFunc adapts a function to Restarter.
type RestarterFunc func(reason string) error

// Restart calls f.
func (f RestarterFunc) Restart(reason string) error {
	return f(reason)
}

// WatchdogOption configures a Watchdog.
type WatchdogOption func(*Watchdog)

// WithNotifier sets the callback that shows the final status message.
func WithNotifier(fn func(status string)) WatchdogOption {
	return func(w *Watchdog) {
		w.notify = fn
	}
}

// WithGrace sets the pause between the final status and the restart.
func WithGrace(d time.Duration) WatchdogOption {
	return func(w *Watchdog) {
		w.grace = d
	}
}

// WithSleep replaces time.Sleep for the grace period, so a caller can cut
// it short on shutdown.
func WithSleep(fn func(time.Duration)) WatchdogOption {
	return func(w *Watchdog) {
		w.sleep = fn
	}
}

// WithLogger sets the watchdog logger.
func WithLogger(l logger.Logger) WatchdogOption {
	return func(w *Watchdog) {
		w.log = l
	}
}

// Watchdog checks free memory on every console tick and restarts the process
// when it is about to run out. There is no retry: a near-OOM process cannot be
// trusted to recover in place.
type Watchdog struct {
	src       Source
	th        Thresholds
	restarter Restarter
	notify    func(status string)
	grace     time.Duration
	sleep     func(time.Duration)
	log       logger.Logger

	last     Level
	lastFree uint32
}

// NewWatchdog creates a watchdog over src.
func NewWatchdog(src Source, th Thresholds, restarter Restarter, opts ...WatchdogOption) *Watchdog {
	w := &Watchdog{
		src:       src,
		th:        th,
		restarter: restarter,
		notify:    func(string) {},
		grace:     DefaultRestartGrace,
		sleep:     time.Sleep,
		log:       logger.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// LastFree is the reading taken by the most recent Tick.
func (w *Watchdog) LastFree() uint32 {
	return w.lastFree
}

// Tick reads free memory once. On a critical reading it shows the final
// status, waits out the grace period, asks the Restarter to restart, and
// returns a HEAP error.
func (w *Watchdog) Tick() (Level, error) {
	free := w.src.Free()
	w.lastFree = free
	level := w.th.Level(free)

	if level != w.last {
		switch level {
		case LevelWarning:
			w.log.Warn("free heap %d under floor %d", free, w.th.Floor)
		case LevelNominal:
			w.log.Info("free heap %d back above floor %d", free, w.th.Floor)
		}
		w.last = level
	}

	if level != LevelCritical {
		return level, nil
	}

	err := errors.NewMemoryExhaustion(free, w.th.Floor, w.th.Tolerance)
	w.notify("Out of heap..!")
	w.log.Error("Heap too low: %d", free)
	if w.grace > 0 {
		w.sleep(w.grace)
	}
	if rerr := w.restarter.Restart(err.Message); rerr != nil {
		return level, errors.WrapWithCode(rerr, errors.ErrHeap,
			"Restart after heap exhaustion failed",
			"Power-cycle the device")
	}
	return level, err
}
