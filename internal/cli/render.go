package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/bleconsole/internal/config"
	"github.com/rileyhilliard/bleconsole/internal/console"
	"github.com/rileyhilliard/bleconsole/internal/demo"
	"github.com/rileyhilliard/bleconsole/internal/heap"
	"github.com/rileyhilliard/bleconsole/internal/logger"
	"github.com/rileyhilliard/bleconsole/internal/preview"
)

var (
	renderCards int
	renderSeed  uint64
	renderText  bool
)

// renderCmd prints demo cards once and dumps the panel
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print demo cards once and dump the panel",
	Long: `Boot the console without the intro, print a batch of demo cards, and
write the resulting panel to stdout, either as colored half blocks or, with
--text, as the characters on screen.

The same seed always produces the same panel.

Examples:
  bleconsole render
  bleconsole render --cards 20 --seed 7
  bleconsole render --text`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cards, err := ParseCount("cards", renderCards)
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return renderPanel(cmd.OutOrStdout(), cfg, cards, renderSeed, renderText)
	},
}

func init() {
	renderCmd.Flags().IntVar(&renderCards, "cards", 8, "number of demo devices to report")
	renderCmd.Flags().Uint64Var(&renderSeed, "seed", 1, "seed for the demo feed")
	renderCmd.Flags().BoolVar(&renderText, "text", false, "print the characters on screen instead of pixels")

	rootCmd.AddCommand(renderCmd)
}

// renderPanel runs one scan worth of cards through a fresh console and
// writes the panel to w.
func renderPanel(w io.Writer, cfg *config.Config, cards int, seed uint64, text bool) error {
	fb := newPanel(cfg)
	con, err := console.New(fb, console.Options{
		Config: cfg,
		Source: newSource(cfg, seed),
		Restarter: heap.RestarterFunc(func(reason string) error {
			return fmt.Errorf("restart requested during render: %s", reason)
		}),
		Logger: logger.Noop(),
		Sleep:  func(time.Duration) {},
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	con.Init(ctx)
	con.SetClockValid(false)

	feed := demo.NewFeed(seed)
	driver := demo.NewDriver(con, feed, demo.DriverOptions{
		PerCycle: cards,
		Cycles:   1,
		Logger:   logger.Noop(),
	})
	for _, e := range feed.Cycle(cards) {
		if err := driver.Report(e); err != nil {
			cancel()
			con.Wait()
			return err
		}
	}
	con.FooterStats()
	cancel()
	con.Wait()

	if text {
		_, err := fmt.Fprintln(w, strings.Join(preview.Text(fb), "\n"))
		return err
	}
	_, err = fmt.Fprintln(w, preview.Render(fb))
	return err
}
