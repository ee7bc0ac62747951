package gauge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEased_MidpointBoundary(t *testing.T) {
	// The two halves of the curve must meet exactly at p=0.5.
	assert.InDelta(t, 0.5, Eased(0.5), 1e-12)
}

func TestEased_Endpoints(t *testing.T) {
	assert.Equal(t, 0.0, Eased(0))
	assert.Equal(t, 1.0, Eased(1))
}

func TestEased_Symmetry(t *testing.T) {
	// Ease-in and ease-out are mirror images around the midpoint.
	for _, p := range []float64{0.1, 0.25, 0.4} {
		assert.InDelta(t, 1-Eased(1-p), Eased(p), 1e-12, "p=%v", p)
	}
}

func TestDisplayedAt_ExactMidpoint(t *testing.T) {
	// from=20, to=80 at 400ms of an 800ms animation must display
	// exactly 50: eased(0.5) = 4*0.5^3 = 0.5, so 20 + 60*0.5.
	got := DisplayedAt(20, 80, 400*time.Millisecond, 800*time.Millisecond)
	assert.InDelta(t, 50.0, got, 1e-9)
}

func TestDisplayedAt_Table(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		elapsed  time.Duration
		expect   float64
	}{
		{"start", 20, 80, 0, 20},
		{"quarter", 0, 100, 200 * time.Millisecond, 100 * Eased(0.25)},
		{"end", 20, 80, 800 * time.Millisecond, 80},
		{"past end clamps", 20, 80, 5 * time.Second, 80},
		{"downward", 80, 20, 400 * time.Millisecond, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DisplayedAt(tt.from, tt.to, tt.elapsed, 800*time.Millisecond)
			assert.InDelta(t, tt.expect, got, 1e-9)
		})
	}
}

func TestGauge_IdleUntilFirstTarget(t *testing.T) {
	g := New(DefaultDuration)

	assert.Equal(t, StateIdle, g.State())
	assert.False(t, g.HasReading())

	// Stepping an idle gauge is a no-op.
	g.Step(time.Now())
	assert.Equal(t, StateIdle, g.State())
	assert.Equal(t, 0.0, g.Displayed())
}

func TestGauge_AnimatesAndSettles(t *testing.T) {
	g := New(800 * time.Millisecond)
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	g.SetTarget(63.4, start)
	assert.Equal(t, StateAnimating, g.State())
	assert.Equal(t, 63.4, g.Target())

	mid := g.Step(start.Add(400 * time.Millisecond))
	assert.InDelta(t, 31.7, mid, 1e-9) // 0 + 63.4*eased(0.5)
	assert.Equal(t, StateAnimating, g.State())

	final := g.Step(start.Add(800 * time.Millisecond))
	assert.Equal(t, 63.4, final)
	assert.Equal(t, StateSettled, g.State())
}

func TestGauge_SupersededAnimationStartsFromDisplayed(t *testing.T) {
	g := New(800 * time.Millisecond)
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	g.SetTarget(80, start)
	g.Step(start.Add(400 * time.Millisecond))
	displayed := g.Displayed()
	assert.InDelta(t, 40.0, displayed, 1e-9)

	// A new target mid-flight supersedes the old one; the new animation
	// begins at the currently displayed value, never jumping back to the
	// old from or ahead to the old target.
	g.SetTarget(20, start.Add(400*time.Millisecond))
	assert.Equal(t, StateAnimating, g.State())
	assert.Equal(t, displayed, g.Displayed())

	settled := g.Step(start.Add(400*time.Millisecond + 800*time.Millisecond))
	assert.Equal(t, 20.0, settled)
	assert.Equal(t, StateSettled, g.State())
}

func TestGauge_LastAppliedTargetWins(t *testing.T) {
	// Responses may arrive out of request order; whichever was applied
	// last is authoritative.
	g := New(800 * time.Millisecond)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	g.SetTarget(70, now)
	g.SetTarget(30, now)

	g.Step(now.Add(time.Second))
	assert.Equal(t, 30.0, g.Displayed())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "animating", StateAnimating.String())
	assert.Equal(t, "settled", StateSettled.String())
	assert.Equal(t, "unknown", State(99).String())
}
