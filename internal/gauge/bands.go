package gauge

// Band is the color band a displayed value falls in. Bands are keyed to
// the metric's underlying reading scale (degrees for temperatures), and
// are derived from the currently displayed interpolated value rather than
// the final target, so the color transitions smoothly mid-animation.
type Band int

const (
	BandCool Band = iota
	BandWarning
	BandCritical
)

// Default band boundaries, in degrees.
const (
	DefaultWarningThreshold  = 50.0
	DefaultCriticalThreshold = 75.0
)

// String returns a human-readable band name.
func (b Band) String() string {
	switch b {
	case BandCool:
		return "cool"
	case BandWarning:
		return "warning"
	case BandCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// BandFor maps a displayed value to its color band. Values below warning
// are cool, values in [warning, critical) warn, and values at or above
// critical are critical.
func BandFor(value, warning, critical float64) Band {
	switch {
	case value >= critical:
		return BandCritical
	case value >= warning:
		return BandWarning
	default:
		return BandCool
	}
}
