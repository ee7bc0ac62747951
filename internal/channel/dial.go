package channel

import (
	"context"
	"net"
	"time"

	"github.com/tiledeck/tiledeck/internal/errors"
	"github.com/tiledeck/tiledeck/internal/logger"
)

// Connection retry policy for the plugin side. The host is expected to be
// listening before the plugin starts; a short bounded retry covers startup
// races, after which the host restarts the plugin process.
const (
	dialAttempts = 3
	dialBackoff  = 5 * time.Second
	dialTimeout  = 3 * time.Second
)

// Dialer establishes the plugin side of the channel.
type Dialer struct {
	addr string
	log  logger.Logger
}

// NewDialer creates a dialer for the given channel endpoint.
func NewDialer(addr string, log logger.Logger) *Dialer {
	return &Dialer{addr: addr, log: log}
}

// Dial connects to the host, retrying a bounded number of times with a
// fixed backoff. Returns a CHANNEL error once attempts are exhausted.
func (d *Dialer) Dial(ctx context.Context) (*Conn, error) {
	network, address, err := ParseAddr(d.addr)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= dialAttempts; attempt++ {
		if attempt > 1 {
			d.log.Debug("retrying channel connection (attempt %d/%d)", attempt, dialAttempts)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(dialBackoff):
			}
		}

		dialer := net.Dialer{Timeout: dialTimeout}
		raw, err := dialer.DialContext(ctx, network, address)
		if err == nil {
			d.log.Info("channel connected to %s", d.addr)
			return NewConn(raw), nil
		}
		lastErr = err
		d.log.Warn("channel connection failed: %v", err)
	}

	return nil, errors.WrapWithCode(lastErr, errors.ErrChannel,
		"Cannot connect to host at "+d.addr,
		"Check that the dashboard is running and listening on this address")
}
