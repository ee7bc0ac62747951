package gauge

import "github.com/charmbracelet/lipgloss"

// Gauge color palette
const (
	ColorCool     = lipgloss.Color("#39FF14") // Neon green
	ColorWarning  = lipgloss.Color("#FFAA00") // Electric amber
	ColorCritical = lipgloss.Color("#FF0055") // Hot red-pink

	ColorTextPrimary = lipgloss.Color("#FFFFFF") // Pure white
	ColorTextMuted   = lipgloss.Color("#6B6B8D") // Purple-gray
	ColorBorder      = lipgloss.Color("#2A2A4A") // Glass border (purple tint)
	ColorTrack       = lipgloss.Color("#2A2A4A") // Unfilled arc cells
)

var (
	// TileStyle frames one gauge tile.
	TileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1)

	// TitleStyle renders the metric name above the arc.
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	// PlaceholderStyle renders the neutral no-reading-yet label.
	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	// TrackStyle renders the unfilled portion of the arc.
	TrackStyle = lipgloss.NewStyle().
			Foreground(ColorTrack)
)

// StyleFor returns the foreground style for a color band. The numeric
// label and the filled arc share this style so both shift band together.
func StyleFor(band Band) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorFor(band))
}

func colorFor(band Band) lipgloss.Color {
	switch band {
	case BandCritical:
		return ColorCritical
	case BandWarning:
		return ColorWarning
	default:
		return ColorCool
	}
}
