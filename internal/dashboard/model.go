// Package dashboard renders gauge tiles in a Bubble Tea TUI. The dashboard
// is the host side of the protocol: it listens for the plugin process,
// polls it on behalf of every tile, and fans inbound responses out to all
// tiles, each of which filters by its own nonce.
package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tiledeck/tiledeck/internal/channel"
	"github.com/tiledeck/tiledeck/internal/config"
	"github.com/tiledeck/tiledeck/internal/gauge"
	"github.com/tiledeck/tiledeck/internal/logger"
	"github.com/tiledeck/tiledeck/internal/protocol"
)

// frameInterval is the animation frame rate (~30fps). Frames are only
// scheduled while at least one gauge is animating.
const frameInterval = 33 * time.Millisecond

// Tile layout bounds, in cells of inner width.
const (
	minTileWidth = 16
	maxTileWidth = 40
)

// pollMsg signals that one tile's poll tick fired.
type pollMsg struct {
	index int
	at    time.Time
}

// frameMsg signals an animation frame.
type frameMsg time.Time

// responseMsg carries one decoded response from the plugin; it is applied
// to every tile and each tile filters by nonce.
type responseMsg protocol.Response

// Model is the Bubble Tea model for the tile dashboard.
type Model struct {
	hub   *channel.Hub
	log   logger.Logger
	tiles []*Tile

	interval   time.Duration
	thresholds config.Thresholds

	width  int
	height int

	spin         spinner.Model
	frameRunning bool
	lastUpdate   time.Time
	quitting     bool
}

// NewModel builds the dashboard from config: one tile per configured
// metric, each with its own nonce, scheduler, and animation state.
func NewModel(hub *channel.Hub, cfg *config.Config, log logger.Logger) Model {
	tiles := make([]*Tile, 0, len(cfg.Tiles))
	for _, tc := range cfg.Tiles {
		tiles = append(tiles, NewTile(tc.Metric, tc.Label, cfg.AnimationDuration))
	}

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"◐", "◓", "◑", "◒"},
		FPS:    time.Second / 10,
	}
	sp.Style = lipgloss.NewStyle().Foreground(gauge.ColorTextMuted)

	return Model{
		hub:        hub,
		log:        log,
		tiles:      tiles,
		interval:   cfg.PollInterval,
		thresholds: cfg.Thresholds,
		spin:       sp,
	}
}

// Tiles exposes the tile list, primarily for tests.
func (m Model) Tiles() []*Tile {
	return m.tiles
}

// Init starts every tile's aligned poll timer and the response pump.
func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.tiles)+2)
	for i := range m.tiles {
		cmds = append(cmds, m.pollCmd(i))
	}
	cmds = append(cmds, m.waitResponseCmd(), m.spin.Tick)
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case pollMsg:
		// One request per tick, carrying the tile's fixed nonce. A
		// send failure means no plugin is attached; the request
		// silently fails and the gauge stays put until a later
		// round-trip succeeds.
		if msg.index < len(m.tiles) {
			if err := m.hub.Send(m.tiles[msg.index].Request()); err != nil {
				m.log.Debug("poll dropped: %v", err)
			}
		}
		return m, m.pollCmd(msg.index)

	case responseMsg:
		now := time.Now()
		m.lastUpdate = now
		for _, tile := range m.tiles {
			tile.Accept(protocol.Response(msg), now)
		}
		cmds := []tea.Cmd{m.waitResponseCmd()}
		if !m.frameRunning {
			m.frameRunning = true
			cmds = append(cmds, m.frameCmd())
		}
		return m, tea.Batch(cmds...)

	case frameMsg:
		animating := false
		now := time.Time(msg)
		for _, tile := range m.tiles {
			tile.Gauge.Step(now)
			if tile.Gauge.Animating() {
				animating = true
			}
		}
		m.frameRunning = animating
		if animating {
			return m, m.frameCmd()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// pollCmd schedules tile i's next poll at the upcoming wall-clock multiple
// of the interval. The delay is recomputed from absolute wall-clock phase
// on every tick rather than chained as relative sleeps.
func (m Model) pollCmd(i int) tea.Cmd {
	delay := time.Until(NextAligned(time.Now(), m.interval))
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return pollMsg{index: i, at: t}
	})
}

// frameCmd schedules the next animation frame.
func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// waitResponseCmd blocks on the hub's broadcast stream and delivers the
// next response into the update loop.
func (m Model) waitResponseCmd() tea.Cmd {
	return func() tea.Msg {
		resp, ok := <-m.hub.Responses()
		if !ok {
			return nil
		}
		return responseMsg(resp)
	}
}
