package status

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/bleconsole/internal/display"
	"github.com/rileyhilliard/bleconsole/internal/logger"
	"github.com/rileyhilliard/bleconsole/internal/scroll"
)

// Header and footer text rows.
const (
	headerTopY    = 4
	headerStatusY = 18
	statusHeight  = 8
	logoX         = 126
	credit        = "(c+) tobozo"
)

// Panel paints the fixed header and footer text from a Stats.
type Panel struct {
	disp  display.Display
	out   *scroll.Compositor
	stats *Stats
	log   logger.Logger
}

// NewPanel creates a painter for the fixed areas around out.
func NewPanel(d display.Display, out *scroll.Compositor, stats *Stats, log logger.Logger) *Panel {
	return &Panel{disp: d, out: out, stats: stats, log: logger.OrDefault(log)}
}

// Header prints the free heap and entry counts flush right, and status on its
// own line when non-empty. The status is also logged.
func (p *Panel) Header(status string) {
	snap := p.stats.Snapshot()
	p.out.AlignTextAt(fmt.Sprintf(" Heap: %d ", snap.FreeHeap), 128, headerTopY, display.GreenYellow, display.HeaderBg, scroll.AlignRight)
	if status != "" {
		p.log.Info("%s", status)
		p.disp.FillRect(0, headerStatusY, p.disp.Width(), statusHeight, display.HeaderBg)
		p.out.AlignTextAt(" "+status, 0, headerStatusY, display.Yellow, display.HeaderBg, scroll.AlignLeft)
	}
	p.out.AlignTextAt(fmt.Sprintf(" Entries: %d ", snap.Entries), 128, headerStatusY, display.GreenYellow, display.HeaderBg, scroll.AlignRight)
	p.disp.DrawIcon(logoX, 0, display.IconLogo)
}

// Footer prints clock, uptime and credit centered, and the cycle counters on
// the left.
func (p *Panel) Footer() {
	snap := p.stats.Snapshot()
	y := p.disp.Height() - p.out.Footer() + 8
	p.out.AlignTextAt(snap.Time, 128, y, display.Yellow, display.FooterBg, scroll.AlignCenter)
	p.out.AlignTextAt(snap.Uptime, 128, y+10, display.Yellow, display.FooterBg, scroll.AlignCenter)
	p.out.AlignTextAt(credit, 128, y+20, display.Yellow, display.FooterBg, scroll.AlignCenter)

	p.out.AlignTextAt(fmt.Sprintf(" Last:  %d ", snap.Devices), 0, y, display.GreenYellow, display.FooterBg, scroll.AlignLeft)
	p.out.AlignTextAt(fmt.Sprintf(" Total: %d ", snap.SessionDevices), 0, y+10, display.GreenYellow, display.FooterBg, scroll.AlignLeft)
	p.out.AlignTextAt(fmt.Sprintf(" New:   %d ", snap.NewDevices), 0, y+20, display.GreenYellow, display.FooterBg, scroll.AlignLeft)
}

// FormatUptime renders an uptime as "Uptime: HH:MM:SS", with a day count
// prefix once it passes 24 hours.
func FormatUptime(d time.Duration) string {
	d = d.Truncate(time.Second)
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	if days > 0 {
		return fmt.Sprintf("Uptime: %dd %02d:%02d:%02d", days, h, m, s)
	}
	return fmt.Sprintf("Uptime: %02d:%02d:%02d", h, m, s)
}
