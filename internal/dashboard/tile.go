package dashboard

import (
	"time"

	"github.com/tiledeck/tiledeck/internal/gauge"
	"github.com/tiledeck/tiledeck/internal/protocol"
)

// Tile is one independently scheduled, independently animated gauge. Each
// tile draws its nonce once at creation and keeps it for its whole
// lifetime; the nonce is the only thing separating this tile's protocol
// traffic from every other tile's, since responses are broadcast.
type Tile struct {
	Nonce  protocol.Nonce
	Metric string
	Label  string
	Gauge  *gauge.Gauge
}

// NewTile creates a tile for the given metric kind with a fresh nonce.
func NewTile(metric, label string, animation time.Duration) *Tile {
	if label == "" {
		label = metric
	}
	return &Tile{
		Nonce:  protocol.NewNonce(),
		Metric: metric,
		Label:  label,
		Gauge:  gauge.New(animation),
	}
}

// Request builds this tile's poll request, carrying its fixed nonce.
func (t *Tile) Request() protocol.Request {
	return protocol.NewRequest(t.Metric, t.Nonce)
}

// Accept applies a broadcast response to this tile if and only if the
// nonce matches the tile's own; everything else is someone else's traffic
// and leaves the displayed value untouched. A mismatch is expected
// filtering behavior, not an error. Accepted responses become the new
// authoritative animation target regardless of arrival order.
func (t *Tile) Accept(resp protocol.Response, now time.Time) bool {
	if resp.Nonce != t.Nonce {
		return false
	}
	t.Gauge.SetTarget(resp.Value, now)
	return true
}
