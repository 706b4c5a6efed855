package preview

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/bleconsole/internal/display"
)

// DefaultInterval is how often the mirror is refreshed.
const DefaultInterval = 100 * time.Millisecond

// Key bindings as constants for consistency.
const (
	KeyQuit    = "q"
	KeyQuitAlt = "ctrl+c"
	KeyScan    = "s"
)

// Chrome around the mirrored panel.
const (
	headerHeight = 1
	footerHeight = 1
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFF00"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7B7D7B"))
)

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// Model is the Bubble Tea model mirroring a framebuffer.
type Model struct {
	fb       *display.Framebuffer
	title    string
	interval time.Duration
	onScan   func()

	viewport      viewport.Model
	viewportReady bool
	width         int
	height        int
	scans         int
	quitting      bool
}

// NewModel creates a mirror of fb. onScan, when set, is called on the scan key.
func NewModel(fb *display.Framebuffer, title string, interval time.Duration, onScan func()) Model {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return Model{
		fb:       fb,
		title:    title,
		interval: interval,
		onScan:   onScan,
	}
}

// Init starts the refresh timer.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case KeyQuit, KeyQuitAlt:
			m.quitting = true
			return m, tea.Quit
		case KeyScan:
			m.scans++
			if m.onScan != nil {
				m.onScan()
			}
			return m, nil
		}
		if m.viewportReady {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		viewportHeight := m.height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}
		if !m.viewportReady {
			m.viewport = viewport.New(m.width, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.viewportReady = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewportHeight
		}
		m.refresh()

	case tickMsg:
		m.refresh()
		return m, m.tickCmd()
	}

	return m, nil
}

func (m *Model) refresh() {
	if !m.viewportReady {
		return
	}
	m.viewport.SetContent(Render(m.fb))
}

// View renders the mirror.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.viewportReady {
		return "Initializing..."
	}
	header := titleStyle.Render(m.title)
	footer := helpStyle.Render(fmt.Sprintf("q quit  s scan  ↑/↓ scroll  scans: %d", m.scans))
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), footer)
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
