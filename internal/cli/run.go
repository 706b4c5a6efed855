package cli

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/bleconsole/internal/config"
	"github.com/rileyhilliard/bleconsole/internal/console"
	"github.com/rileyhilliard/bleconsole/internal/demo"
	"github.com/rileyhilliard/bleconsole/internal/display"
	"github.com/rileyhilliard/bleconsole/internal/heap"
	"github.com/rileyhilliard/bleconsole/internal/logger"
	"github.com/rileyhilliard/bleconsole/internal/preview"
	"github.com/rileyhilliard/bleconsole/internal/status"
)

// debugLogFile receives log output while the preview owns the terminal.
const debugLogFile = "bleconsole.log"

// Command-specific flags
var (
	runSeed      uint64
	runCycles    int
	runPerCycle  int
	runSpacing   string
	runHeadless  bool
	runClockSync bool
)

// runCmd boots the console and feeds it demo scans
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Boot the console and feed it demo scans",
	Long: `Boot the operator console on the emulated panel and feed it synthetic
BLE scan results.

When stdout is a terminal the panel is mirrored live; otherwise (or with
--headless) scan summaries are logged instead. The heap watchdog runs either
way and restarts the process when free memory drops past the floor.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  s           Start the next scan now
  up/down     Scroll the mirror

Examples:
  bleconsole run
  bleconsole run --headless --cycles 3
  bleconsole run --seed 42 --spacing 250ms`,
	RunE: func(cmd *cobra.Command, args []string) error {
		spacing, err := ParseSpacing(runSpacing)
		if err != nil {
			return err
		}
		perCycle, err := ParseCount("per-cycle", runPerCycle)
		if err != nil {
			return err
		}
		return runCommand(runOptions{
			seed:      runSeed,
			cycles:    runCycles,
			perCycle:  perCycle,
			spacing:   spacing,
			headless:  runHeadless || !term.IsTerminal(int(os.Stdout.Fd())),
			clockSync: runClockSync,
		})
	},
}

func init() {
	runCmd.Flags().Uint64Var(&runSeed, "seed", 0, "seed for the demo feed (0 picks one from the clock)")
	runCmd.Flags().IntVar(&runCycles, "cycles", 0, "stop after this many scans (0 runs until interrupted)")
	runCmd.Flags().IntVar(&runPerCycle, "per-cycle", 8, "devices reported by each scan")
	runCmd.Flags().StringVar(&runSpacing, "spacing", "", "delay between results (default: spread over the scan)")
	runCmd.Flags().BoolVar(&runHeadless, "headless", false, "log instead of mirroring the panel")
	runCmd.Flags().BoolVar(&runClockSync, "clock", true, "treat the host clock as synced")

	rootCmd.AddCommand(runCmd)
}

type runOptions struct {
	seed      uint64
	cycles    int
	perCycle  int
	spacing   time.Duration
	headless  bool
	clockSync bool
}

// session holds what one run needs besides the terminal.
type session struct {
	cfg    *config.Config
	fb     *display.Framebuffer
	con    *console.Console
	driver *demo.Driver
}

func runCommand(opts runOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if opts.seed == 0 {
		opts.seed = uint64(time.Now().UnixNano())
	}
	if opts.spacing == 0 {
		opts.spacing = cfg.Scan.Duration / time.Duration(opts.perCycle+1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.headless {
		return runHeadlessSession(ctx, cfg, opts)
	}
	return runInteractive(ctx, cfg, opts)
}

func newSession(ctx context.Context, cfg *config.Config, opts runOptions, restarter heap.Restarter, trigger <-chan struct{}, log logger.Logger) (*session, error) {
	fb := newPanel(cfg)
	con, err := console.New(fb, console.Options{
		Config:    cfg,
		Source:    newSource(cfg, opts.seed),
		Restarter: restarter,
		Restarted: heap.Restarted(),
		Logger:    log,
		Sleep:     sleepUntil(ctx),
	})
	if err != nil {
		return nil, err
	}
	driver := demo.NewDriver(con, demo.NewFeed(opts.seed), demo.DriverOptions{
		PerCycle: opts.perCycle,
		Cycles:   opts.cycles,
		Spacing:  opts.spacing,
		Pause:    cfg.Scan.Pause,
		Trigger:  trigger,
		Logger:   log,
	})
	return &session{cfg: cfg, fb: fb, con: con, driver: driver}, nil
}

// boot runs the console start-up sequence and the scan loop.
func (s *session) boot(ctx context.Context, clockSync bool) error {
	s.con.Init(ctx)
	s.con.SetStorage(status.StorageOpen)
	s.con.SetClockValid(clockSync)
	s.con.FooterStats()
	return s.driver.Run(ctx)
}

func runHeadlessSession(ctx context.Context, cfg *config.Config, opts runOptions) error {
	log := logger.NewEnvLogger("[bleconsole]")
	s, err := newSession(ctx, cfg, opts, heap.ExecRestarter{Logger: log}, nil, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	err = s.boot(ctx, opts.clockSync)
	cancel()
	s.con.Wait()
	if err != nil {
		return err
	}

	snap := s.con.Stats().Snapshot()
	log.Info("session %s done: %d devices seen, %d entries, %d bytes free",
		s.con.Session(), snap.SessionDevices, snap.Entries, snap.FreeHeap)
	return nil
}

func runInteractive(ctx context.Context, cfg *config.Config, opts runOptions) error {
	if verbose {
		f, err := tea.LogToFile(debugLogFile, "bleconsole")
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", debugLogFile, err)
		}
		defer f.Close()
	} else {
		stdlog.SetOutput(io.Discard)
		defer stdlog.SetOutput(os.Stderr)
	}
	log := logger.NewEnvLogger("[bleconsole]")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	trigger := make(chan struct{}, 1)
	var program *tea.Program

	// The restart replaces the process, so the terminal has to be handed
	// back first.
	restarter := heap.RestarterFunc(func(reason string) error {
		if program != nil {
			_ = program.ReleaseTerminal()
		}
		return heap.ExecRestarter{Logger: log}.Restart(reason)
	})

	s, err := newSession(ctx, cfg, opts, restarter, trigger, log)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s  session %s", console.Title, s.con.Session().String()[:8])
	model := preview.NewModel(s.fb, title, preview.DefaultInterval, func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	})
	program = tea.NewProgram(model, tea.WithAltScreen())

	loopErr := make(chan error, 1)
	go func() {
		err := s.boot(ctx, opts.clockSync)
		loopErr <- err
		if err != nil {
			program.Quit()
		}
	}()

	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	_, err = program.Run()
	cancel()
	s.con.Wait()
	if lerr := <-loopErr; lerr != nil {
		return lerr
	}
	return err
}
