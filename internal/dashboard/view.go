package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tiledeck/tiledeck/internal/gauge"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(gauge.ColorTextPrimary).
			Bold(true).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(gauge.ColorTextMuted).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(gauge.ColorTextMuted).
			Padding(0, 1)
)

// render draws the header, the tile row, and the footer.
func (m Model) render() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("tiledeck"))
	b.WriteString(statusStyle.Render(m.connectionStatus()))
	b.WriteString("\n\n")

	cards := make([]string, 0, len(m.tiles))
	inner := m.tileInnerWidth()
	for _, tile := range m.tiles {
		cards = append(cards, m.renderTile(tile, inner))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("q quit"))
	return b.String()
}

// connectionStatus describes the plugin attachment state for the header.
func (m Model) connectionStatus() string {
	if m.hub.Connected() {
		return "● plugin connected"
	}
	return m.spin.View() + " waiting for plugin"
}

// renderTile draws one tile: metric label, gauge arc, and the numeric
// reading. The arc fill and both colors follow the currently displayed
// interpolated value, so color shifts mid-animation instead of snapping.
func (m Model) renderTile(tile *Tile, inner int) string {
	displayed := tile.Gauge.Displayed()
	band := gauge.BandFor(displayed, m.thresholds.Warning, m.thresholds.Critical)

	title := gauge.TitleStyle.Render(tile.Label)
	arc := gauge.RenderArc(displayed, inner, band)
	label := gauge.RenderLabel(displayed, tile.Gauge.HasReading(), inner, band)

	content := lipgloss.JoinVertical(lipgloss.Left, title, arc, label)
	return gauge.TileStyle.Render(content)
}

// tileInnerWidth splits the terminal width evenly across tiles, clamped so
// tiles stay legible on small terminals and don't sprawl on wide ones.
// Recomputed from the current width on every render, which is what keeps
// label sizing responsive to resize.
func (m Model) tileInnerWidth() int {
	if len(m.tiles) == 0 {
		return minTileWidth
	}

	// 4 cells per tile go to borders, padding, and margin.
	avail := m.width/len(m.tiles) - 4
	switch {
	case avail < minTileWidth:
		return minTileWidth
	case avail > maxTileWidth:
		return maxTileWidth
	default:
		return avail
	}
}
