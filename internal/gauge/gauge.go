// Package gauge implements the per-tile rendering state machine: a
// displayed value that eases toward the most recently accepted reading,
// color bands keyed to the interpolated value, and a responsive arc layout.
package gauge

import "time"

// DefaultDuration is how long one animation takes from the currently
// displayed value to a new target.
const DefaultDuration = 800 * time.Millisecond

// State of a gauge's animation machine.
type State int

const (
	// StateIdle means no reading has ever been accepted; the gauge shows
	// a neutral placeholder, never zero.
	StateIdle State = iota
	// StateAnimating means the displayed value is easing toward the
	// target.
	StateAnimating
	// StateSettled means the displayed value equals the last accepted
	// target.
	StateSettled
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnimating:
		return "animating"
	case StateSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Gauge holds one tile's mutable render state. It is owned by a single
// tile and never shared: each tile mutates only its own gauge.
type Gauge struct {
	state     State
	displayed float64
	from      float64
	target    float64
	start     time.Time
	duration  time.Duration
}

// New creates an idle gauge. A non-positive duration falls back to
// DefaultDuration.
func New(duration time.Duration) *Gauge {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Gauge{duration: duration}
}

// SetTarget starts animating toward value. The animation always begins
// from whatever is currently displayed, so a target arriving mid-animation
// supersedes the old one without a visual jump. Responses can arrive out
// of request order; the last applied target wins.
func (g *Gauge) SetTarget(value float64, now time.Time) {
	g.from = g.displayed
	g.target = value
	g.start = now
	g.state = StateAnimating
}

// Step advances the animation to the given time and returns the displayed
// value. Once the interpolation fraction reaches 1 the gauge settles on
// the target. Idle gauges stay idle.
func (g *Gauge) Step(now time.Time) float64 {
	if g.state != StateAnimating {
		return g.displayed
	}

	elapsed := now.Sub(g.start)
	g.displayed = DisplayedAt(g.from, g.target, elapsed, g.duration)
	if elapsed >= g.duration {
		g.displayed = g.target
		g.state = StateSettled
	}
	return g.displayed
}

// State returns the current animation state.
func (g *Gauge) State() State {
	return g.state
}

// Displayed returns the currently displayed value without advancing the
// animation.
func (g *Gauge) Displayed() float64 {
	return g.displayed
}

// Target returns the last accepted target value.
func (g *Gauge) Target() float64 {
	return g.target
}

// Animating reports whether an animation is in flight.
func (g *Gauge) Animating() bool {
	return g.state == StateAnimating
}

// HasReading reports whether the gauge ever accepted a reading. Idle
// gauges render a placeholder instead of a number.
func (g *Gauge) HasReading() bool {
	return g.state != StateIdle
}

// Eased applies the symmetric cubic ease-in-ease-out curve to an
// interpolation fraction in [0, 1]: slow start, fast middle, slow finish.
func Eased(p float64) float64 {
	if p < 0.5 {
		return 4 * p * p * p
	}
	q := -2*p + 2
	return 1 - q*q*q/2
}

// DisplayedAt computes the interpolated display value at a point in an
// animation. The fraction is clamped so overshooting time pins the value
// to the target.
func DisplayedAt(from, to float64, elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return to
	}
	p := float64(elapsed) / float64(duration)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return from + (to-from)*Eased(p)
}
