// Package channel implements the persistent duplex message channel between
// the tiledeck plugin process and the dashboard host. Messages are
// newline-delimited JSON records; bodies are opaque to this package, which
// only handles framing, delivery, and reconnection.
package channel

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"strings"
	"sync"

	"github.com/tiledeck/tiledeck/internal/errors"
)

// maxRecordSize bounds a single framed record. Metric records are tiny;
// anything larger is a framing failure.
const maxRecordSize = 256 * 1024

// ParseAddr splits a channel endpoint into a net network and address.
// Supported forms: tcp://host:port and unix:///path/to.sock.
func ParseAddr(addr string) (network, address string, err error) {
	switch {
	case strings.HasPrefix(addr, "tcp://"):
		return "tcp", strings.TrimPrefix(addr, "tcp://"), nil
	case strings.HasPrefix(addr, "unix://"):
		return "unix", strings.TrimPrefix(addr, "unix://"), nil
	default:
		return "", "", errors.New(errors.ErrChannel,
			"Unsupported channel address: "+addr,
			"Use tcp://host:port or unix:///path/to.sock")
	}
}

// Conn is one side of the duplex channel. Send may be called from multiple
// goroutines; ReadLoop must be driven by exactly one.
type Conn struct {
	raw net.Conn

	// sendMu serializes writes so concurrent responses never interleave
	// within a frame.
	sendMu sync.Mutex
}

// NewConn wraps an established network connection.
func NewConn(raw net.Conn) *Conn {
	return &Conn{raw: raw}
}

// Send serializes v as a single JSON record and writes it as one frame.
func (c *Conn) Send(v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrProtocol,
			"Cannot serialize outbound record", "")
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if _, err := c.raw.Write(append(body, '\n')); err != nil {
		return errors.Wrap(err, "Channel write failed")
	}
	return nil
}

// ReadLoop reads framed records until the connection drops or ctx is
// cancelled, invoking handler for each record. The handler receives the raw
// body; malformed bodies are its concern, not the channel's. Returns nil on
// clean EOF or cancellation, a CHANNEL error otherwise.
func (c *Conn) ReadLoop(ctx context.Context, handler func(raw []byte)) error {
	// Unblock the scanner when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			c.raw.Close()
		case <-done:
		}
	}()

	scanner := bufio.NewScanner(c.raw)
	scanner.Buffer(make([]byte, 0, 4096), maxRecordSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		// The scanner reuses its buffer across iterations.
		record := make([]byte, len(line))
		copy(record, line)
		handler(record)
	}

	if ctx.Err() != nil {
		return nil
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "Channel read failed")
	}
	return nil
}

// Close tears down the underlying connection. In-flight requests silently
// fail to produce a response; no replay occurs on reconnect.
func (c *Conn) Close() error {
	return c.raw.Close()
}
