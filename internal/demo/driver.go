package demo

import (
	"context"
	"time"

	"github.com/rileyhilliard/bleconsole/internal/card"
	"github.com/rileyhilliard/bleconsole/internal/logger"
	"github.com/rileyhilliard/bleconsole/internal/status"
)

// Console is the part of the console a scan driver talks to.
type Console interface {
	StartScan(ctx context.Context) <-chan struct{}
	IsOnScreen(addr string) bool
	PrintCard(e *card.Entity) int
	Update() error
	HeaderStats(msg string)
	FooterStats()
	Stats() *status.Stats
}

// DriverOptions tunes the scan loop.
type DriverOptions struct {
	// PerCycle is how many results each scan produces.
	PerCycle int
	// Cycles stops the loop after that many scans. Zero runs until ctx is done.
	Cycles int
	// Spacing is the delay between two results of one scan.
	Spacing time.Duration
	// Pause is the idle time between scans.
	Pause time.Duration
	// Trigger ends a pause early.
	Trigger <-chan struct{}
	Logger  logger.Logger
}

// Driver feeds synthetic scan results into a console the way the radio
// callback would: start the activity pulse, print every device that is not
// already on screen, keep the counters and the heap watchdog current.
type Driver struct {
	con     Console
	feed    *Feed
	opts    DriverOptions
	log     logger.Logger
	entries map[string]struct{}
}

// NewDriver creates a driver. PerCycle defaults to 8.
func NewDriver(con Console, feed *Feed, opts DriverOptions) *Driver {
	if opts.PerCycle <= 0 {
		opts.PerCycle = 8
	}
	return &Driver{
		con:     con,
		feed:    feed,
		opts:    opts,
		log:     logger.OrDefault(opts.Logger),
		entries: make(map[string]struct{}),
	}
}

// Entries is the number of distinct addresses seen so far.
func (d *Driver) Entries() int {
	return len(d.entries)
}

// Run scans until ctx is done or the configured cycles are over. A non-nil
// error comes from the heap watchdog; the running pulse then stops with ctx.
func (d *Driver) Run(ctx context.Context) error {
	for cycle := 1; d.opts.Cycles == 0 || cycle <= d.opts.Cycles; cycle++ {
		if err := d.scan(ctx, cycle); err != nil {
			return err
		}
		if ctx.Err() != nil || cycle == d.opts.Cycles {
			return nil
		}
		if !d.pause(ctx) {
			return nil
		}
	}
	return nil
}

func (d *Driver) scan(ctx context.Context, cycle int) error {
	done := d.con.StartScan(ctx)
	for i := 0; i < d.opts.PerCycle; i++ {
		if err := d.Report(d.feed.Next()); err != nil {
			return err
		}
		if !sleep(ctx, d.opts.Spacing) {
			break
		}
	}
	<-done

	snap := d.con.Stats().Snapshot()
	d.log.Info("scan %d: %d devices, %d new, %d entries", cycle, snap.Devices, snap.NewDevices, snap.Entries)
	d.con.HeaderStats("")
	d.con.FooterStats()
	return nil
}

// Report handles one scan result: print its card unless it is already on
// screen, count it, and tick the watchdog.
func (d *Driver) Report(e *card.Entity) error {
	if !d.con.IsOnScreen(e.Address) {
		d.con.PrintCard(e)
	}

	_, seen := d.entries[e.Address]
	if !seen {
		d.entries[e.Address] = struct{}{}
	}
	stats := d.con.Stats()
	stats.CountDevice(!seen)
	stats.SetEntries(uint32(len(d.entries)))

	if err := d.con.Update(); err != nil {
		return err
	}
	d.con.HeaderStats("")
	return nil
}

func (d *Driver) pause(ctx context.Context) bool {
	if d.opts.Pause <= 0 {
		return true
	}
	timer := time.NewTimer(d.opts.Pause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
	case <-d.opts.Trigger:
		d.log.Debug("scan triggered")
	}
	return true
}

// sleep waits for dur and reports whether ctx is still live.
func sleep(ctx context.Context, dur time.Duration) bool {
	if dur <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(dur)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
