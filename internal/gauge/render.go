package gauge

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Arc cell characters.
const (
	arcFilled = '█'
	arcEmpty  = '░'
)

// LabelWidthRatio is the fixed ratio between the tile's inner width and
// the numeric label width, so the label scales with whatever tile size the
// host assigns.
const LabelWidthRatio = 0.15

// minLabelWidth keeps the label legible on very small tiles ("100.0°" at
// the extreme still truncates gracefully above this).
const minLabelWidth = 6

// Placeholder is shown while a gauge has no accepted reading. A dash, not
// zero: a tile that never heard back must not render a misleadingly low
// reading.
const Placeholder = "--"

// ArcFraction maps a displayed value to the filled fraction of the arc.
// The gauge scale tops out at 100 degrees; values beyond it pin the arc
// full rather than overflowing.
func ArcFraction(displayed float64) float64 {
	if displayed <= 0 {
		return 0
	}
	return math.Min(displayed, 100) / 100
}

// ArcCells splits an arc of the given width into filled and empty cell
// counts for a fill fraction in [0, 1].
func ArcCells(fraction float64, width int) (filled, empty int) {
	if width <= 0 {
		return 0, 0
	}
	filled = int(math.Round(fraction * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return filled, width - filled
}

// RenderArc renders the gauge arc for a displayed value: filled cells in
// the band color, remaining track cells muted.
func RenderArc(displayed float64, width int, band Band) string {
	filled, empty := ArcCells(ArcFraction(displayed), width)

	var sb strings.Builder
	sb.Grow(width * 3)
	for i := 0; i < filled; i++ {
		sb.WriteRune(arcFilled)
	}
	arc := StyleFor(band).Render(sb.String())

	sb.Reset()
	for i := 0; i < empty; i++ {
		sb.WriteRune(arcEmpty)
	}
	return arc + TrackStyle.Render(sb.String())
}

// LabelWidth derives the numeric label width from the tile's inner width
// at the fixed ratio. Re-derived on every resize so the tile stays legible
// at any host-assigned size.
func LabelWidth(containerWidth int) int {
	w := int(math.Round(float64(containerWidth) * LabelWidthRatio))
	if w < minLabelWidth {
		w = minLabelWidth
	}
	if w > containerWidth && containerWidth > 0 {
		w = containerWidth
	}
	return w
}

// FormatLabel renders the numeric label for a displayed value, or the
// neutral placeholder when no reading was ever accepted.
func FormatLabel(displayed float64, hasReading bool) string {
	if !hasReading {
		return Placeholder
	}
	return fmt.Sprintf("%.1f°", displayed)
}

// RenderLabel centers the styled label within the width derived from the
// tile's inner width.
func RenderLabel(displayed float64, hasReading bool, containerWidth int, band Band) string {
	label := FormatLabel(displayed, hasReading)
	style := PlaceholderStyle
	if hasReading {
		style = StyleFor(band)
	}
	return lipgloss.PlaceHorizontal(LabelWidth(containerWidth), lipgloss.Center, style.Render(label))
}
