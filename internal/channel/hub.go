package channel

import (
	"context"
	"net"
	"os"
	"sync"

	"github.com/tiledeck/tiledeck/internal/errors"
	"github.com/tiledeck/tiledeck/internal/logger"
	"github.com/tiledeck/tiledeck/internal/protocol"
)

// responseBuffer sizes the hub's fan-in channel. At one request per tile
// per second this only fills if the UI stalls for over a minute.
const responseBuffer = 64

// Hub is the host side of the channel. It accepts the plugin connection,
// forwards tile requests to it, and delivers every inbound response onto a
// single stream. Responses are broadcast, not routed: every tile sees every
// response and filters by its own nonce.
type Hub struct {
	log logger.Logger

	mu       sync.Mutex
	conn     *Conn
	listener net.Listener
	closed   bool

	responses chan protocol.Response
}

// NewHub creates an unstarted hub.
func NewHub(log logger.Logger) *Hub {
	return &Hub{
		log:       log,
		responses: make(chan protocol.Response, responseBuffer),
	}
}

// Listen binds the hub to the given channel endpoint. A stale unix socket
// from a previous run is removed first.
func (h *Hub) Listen(addr string) error {
	network, address, err := ParseAddr(addr)
	if err != nil {
		return err
	}

	if network == "unix" {
		os.Remove(address)
	}

	listener, err := net.Listen(network, address)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrChannel,
			"Cannot listen on "+addr,
			"Check that the address is free and you have permission to bind it")
	}

	h.mu.Lock()
	h.listener = listener
	h.mu.Unlock()
	h.log.Info("listening on %s", addr)
	return nil
}

// Addr returns the bound endpoint in channel address form, useful when
// listening on an ephemeral port. Empty until Listen succeeds.
func (h *Hub) Addr() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.listener == nil {
		return ""
	}
	addr := h.listener.Addr()
	if addr.Network() == "unix" {
		return "unix://" + addr.String()
	}
	return "tcp://" + addr.String()
}

// Serve accepts plugin connections until ctx is cancelled or the hub is
// closed. Only one plugin is served at a time; a plugin that disconnects
// may reconnect and starts fresh with no replay of missed requests.
func (h *Hub) Serve(ctx context.Context) error {
	listener := h.currentListener()
	if listener == nil {
		return errors.New(errors.ErrChannel, "Hub is not listening", "Call Listen first")
	}

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		raw, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || h.isClosed() {
				return nil
			}
			return errors.Wrap(err, "Channel accept failed")
		}

		conn := NewConn(raw)
		h.setConn(conn)
		h.log.Info("plugin connected from %s", raw.RemoteAddr())

		if err := conn.ReadLoop(ctx, h.handleInbound); err != nil {
			h.log.Warn("plugin connection lost: %v", err)
		} else {
			h.log.Info("plugin disconnected")
		}
		h.setConn(nil)
		conn.Close()
	}
}

// Send forwards a request to the connected plugin. With no plugin attached
// the request is dropped: the tile's gauge simply stays put until a later
// tick gets a response.
func (h *Hub) Send(req protocol.Request) error {
	h.mu.Lock()
	conn := h.conn
	h.mu.Unlock()

	if conn == nil {
		return errors.New(errors.ErrChannel,
			"No plugin connected",
			"Start the plugin with 'tiledeck plugin'")
	}
	return conn.Send(req)
}

// Responses returns the stream of decoded responses from the plugin.
// All tiles consume this stream; nonce filtering happens tile-side.
func (h *Hub) Responses() <-chan protocol.Response {
	return h.responses
}

// Connected reports whether a plugin is currently attached.
func (h *Hub) Connected() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.conn != nil
}

// Close shuts down the listener and any attached plugin connection.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	listener := h.listener
	conn := h.conn
	h.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	if listener != nil {
		listener.Close()
	}
}

// handleInbound decodes one raw record from the plugin. Malformed records
// are logged and dropped; they never crash the hub.
func (h *Hub) handleInbound(raw []byte) {
	resp, err := protocol.DecodeResponse(raw)
	if err != nil {
		h.log.Warn("dropping malformed response: %v", err)
		return
	}

	select {
	case h.responses <- resp:
	default:
		// Consumer stalled; dropping is safe because the next poll
		// tick produces a fresh reading anyway.
		h.log.Warn("response stream full, dropping %s reading", resp.Type)
	}
}

func (h *Hub) setConn(conn *Conn) {
	h.mu.Lock()
	h.conn = conn
	h.mu.Unlock()
}

func (h *Hub) currentListener() net.Listener {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.listener
}

func (h *Hub) isClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}
