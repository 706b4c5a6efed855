// Package console wires the heap telemetry, the scroll compositor and the
// card renderer into the operator console shown on the panel.
package console

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rileyhilliard/bleconsole/internal/card"
	"github.com/rileyhilliard/bleconsole/internal/config"
	"github.com/rileyhilliard/bleconsole/internal/display"
	"github.com/rileyhilliard/bleconsole/internal/heap"
	"github.com/rileyhilliard/bleconsole/internal/logger"
	"github.com/rileyhilliard/bleconsole/internal/progress"
	"github.com/rileyhilliard/bleconsole/internal/scroll"
	"github.com/rileyhilliard/bleconsole/internal/status"
)

// Header messages.
const (
	Title         = "BLE Collector"
	StatusInit    = "Init UI"
	StatusRestart = "Heap heap heap..."
	StatusOOM     = "Out of heap..!"
	timeFormat    = "2006-01-02 15:04:05"
	noTime        = "Time not set"
	progressRailY = 30
	introLogoX    = 106
)

var introBanner = []string{
	"         /---------------------\\",
	"         |    BLE Collector    |",
	"         | ------------------- |",
	"         | (c+)  tobozo  2018  |",
	"         \\---------------------/",
}

// Options supplies the collaborators of a Console.
type Options struct {
	Config    *config.Config
	Source    heap.Source
	Restarter heap.Restarter

	// Restarted is true when this process was started by a heap restart; the
	// panel is then left as it was and the intro is skipped.
	Restarted bool

	Logger logger.Logger
	Now    func() time.Time
	Sleep  func(time.Duration)
}

// Console is the UI orchestrator. Its methods are called from one goroutine;
// the heap graph and the scan pulse run on their own and only draw.
type Console struct {
	disp  display.Display
	cfg   *config.Config
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)

	out      *scroll.Compositor
	cards    *card.Renderer
	ind      *status.Indicators
	panel    *status.Panel
	stats    *status.Stats
	graph    *heap.Graph
	watchdog *heap.Watchdog

	session   uuid.UUID
	started   time.Time
	graphDone chan struct{}
}

// New builds a console on d. The config must already be validated.
func New(d display.Display, opts Options) (*Console, error) {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	log := logger.OrDefault(opts.Logger)
	cfg := opts.Config
	if opts.Source == nil {
		opts.Source = heap.NewSimulatedSource(heap.SimulatedOptions{Period: cfg.Heap.GraphIdle})
	}
	if opts.Restarter == nil {
		opts.Restarter = heap.ExecRestarter{Logger: log}
	}

	out, err := scroll.New(d, cfg.Display.Header, cfg.Display.Footer, cfg.Display.LineHeight)
	if err != nil {
		return nil, err
	}

	th := heap.Thresholds{Floor: cfg.Heap.Floor, Tolerance: cfg.Heap.Tolerance}
	c := &Console{
		disp:    d,
		cfg:     cfg,
		opts:    opts,
		log:     log,
		now:     opts.Now,
		sleep:   opts.Sleep,
		out:     out,
		ind:     status.NewIndicators(d),
		stats:   &status.Stats{},
		session: uuid.New(),
		started: opts.Now(),
	}
	c.panel = status.NewPanel(d, out, c.stats, log)
	c.cards = card.NewRenderer(d, out, card.Options{
		RowChars:   cfg.Display.RowChars,
		RecentSize: cfg.Scan.CardCache,
		Logger:     log,
	})
	c.graph = heap.NewGraph(d, opts.Source, heap.NewRing(cfg.Heap.Capacity), th, heap.GraphOptions{
		Y:          cfg.Heap.GraphY,
		LineHeight: cfg.Heap.GraphHeight,
		Idle:       cfg.Heap.GraphIdle,
		Logger:     log,
	})
	c.watchdog = heap.NewWatchdog(opts.Source, th, opts.Restarter,
		heap.WithGrace(cfg.Heap.RestartGrace),
		heap.WithSleep(opts.Sleep),
		heap.WithLogger(log),
		heap.WithNotifier(func(msg string) {
			c.stats.SetFreeHeap(c.watchdog.LastFree())
			c.HeaderStats(msg)
		}),
	)
	return c, nil
}

// Init paints the static chrome, starts the heap graph loop and plays the
// intro on a cold boot. The graph loop stops when ctx is done.
func (c *Console) Init(ctx context.Context) {
	w := c.disp.Width()
	d := c.cfg.Display

	c.log.Info("session %s starting (restarted: %v)", c.session, c.opts.Restarted)

	if !c.opts.Restarted {
		c.disp.FillScreen(display.Black)
		c.disp.FillRect(0, d.Header, w, d.Band(), display.CardBg)
		c.graph.Ring().Clear()
	}
	c.disp.FillRect(0, 0, w, d.Header, display.HeaderBg)
	c.disp.FillRect(0, d.Height-d.Footer, w, d.Footer, display.FooterBg)
	c.disp.FillRect(0, progressRailY, w, 2, display.GreenYellow)

	c.out.AlignTextAt(Title, 6, 4, display.Yellow, display.HeaderBg, scroll.AlignFree)
	if c.opts.Restarted {
		c.HeaderStats(StatusRestart)
		c.sleep(time.Second)
	} else {
		c.HeaderStats(StatusInit)
	}

	c.refreshTimes()
	c.ind.Clock(c.stats.ClockValid())
	c.FooterStats()

	c.graphDone = make(chan struct{})
	go func() {
		defer close(c.graphDone)
		c.graph.Run(ctx)
	}()

	if !c.opts.Restarted && c.cfg.Intro.Enabled {
		c.playIntro()
	}
}

func (c *Console) playIntro() {
	lh := c.out.LineHeight()
	c.out.SetColors(display.Yellow, display.CardBg)

	pos := 0
	for i := 0; i < 5; i++ {
		pos += c.out.Println("")
	}
	for _, line := range introBanner {
		pos += c.out.Println(line)
	}
	c.disp.DrawIcon(introLogoX, c.out.RowAbove(pos-lh), display.IconLogo)
	for i := 0; i < 5; i++ {
		c.out.Println("")
	}
	c.sleep(c.cfg.Intro.Hold)
}

// Update is the periodic tick: it runs the heap watchdog and refreshes the
// clock strings. A non-nil error means the watchdog fired and the restart
// did not replace the process.
func (c *Console) Update() error {
	_, err := c.watchdog.Tick()
	c.stats.SetFreeHeap(c.watchdog.LastFree())
	if err != nil {
		return err
	}
	c.refreshTimes()
	return nil
}

func (c *Console) refreshTimes() {
	now := c.now()
	clock := noTime
	if c.stats.ClockValid() {
		clock = now.Format(timeFormat)
	}
	c.stats.SetTimes(clock, status.FormatUptime(now.Sub(c.started)))
}

// PrintCard renders one device card and returns its height in pixels.
func (c *Console) PrintCard(e *card.Entity) int {
	return c.cards.Print(e)
}

// IsOnScreen reports whether addr was among the last printed cards.
func (c *Console) IsOnScreen(addr string) bool {
	return c.cards.Recent().Contains(addr)
}

// StartScan resets the cycle counters and starts one activity pulse. The
// channel is closed when the pulse has finished and the header is idle again.
func (c *Console) StartScan(ctx context.Context) <-chan struct{} {
	c.stats.BeginCycle()
	blink := progress.New(c.disp, c.ind, progress.Options{
		Duration: c.cfg.Scan.Duration,
		BlinkMin: c.cfg.Scan.BlinkMin,
		BlinkMax: c.cfg.Scan.BlinkMax,
		BarY:     progressRailY,
		Logger:   c.log,
	})
	return blink.Start(ctx)
}

// HeaderStats repaints the header counters and, when non-empty, the status line.
func (c *Console) HeaderStats(msg string) {
	c.panel.Header(msg)
}

// FooterStats repaints the footer.
func (c *Console) FooterStats() {
	c.panel.Footer()
}

// SetStorage updates the storage state and its indicator.
func (c *Console) SetStorage(state status.StorageState) {
	c.stats.SetStorage(state)
	c.ind.Storage(state)
}

// SetClockValid updates the clock state and its indicator.
func (c *Console) SetClockValid(valid bool) {
	c.stats.SetClockValid(valid)
	c.ind.Clock(valid)
	c.refreshTimes()
}

// Stats exposes the shared counters.
func (c *Console) Stats() *status.Stats { return c.stats }

// Session identifies this boot in logs.
func (c *Console) Session() uuid.UUID { return c.session }

// Wait blocks until the heap graph loop has stopped. It returns immediately
// if Init was never called.
func (c *Console) Wait() {
	if c.graphDone != nil {
		<-c.graphDone
	}
}
