// Package dispatcher answers inbound metric requests. It is the only
// plugin-side component that sees protocol records: it decodes a request,
// invokes the sampler registered for the requested metric kind, and emits
// exactly one response carrying the request's nonce verbatim.
//
// The dispatcher is stateless across requests. It never interprets or
// validates nonces, tracks no widget lifecycles, and keeps no per-widget
// queues; the nonce discipline on the widget side is the sole routing
// mechanism.
package dispatcher

import (
	"context"

	"github.com/tiledeck/tiledeck/internal/logger"
	"github.com/tiledeck/tiledeck/internal/protocol"
	"github.com/tiledeck/tiledeck/internal/sampler"
)

// Dispatcher routes requests to samplers by metric kind.
type Dispatcher struct {
	log      logger.Logger
	samplers map[string]sampler.Sampler
}

// New creates an empty dispatcher.
func New(log logger.Logger) *Dispatcher {
	return &Dispatcher{
		log:      log,
		samplers: make(map[string]sampler.Sampler),
	}
}

// Register adds a sampler, keyed by its metric kind. Registering the same
// kind twice replaces the earlier sampler.
func (d *Dispatcher) Register(s sampler.Sampler) {
	d.samplers[s.Kind()] = s
}

// Kinds returns the registered metric kinds.
func (d *Dispatcher) Kinds() []string {
	kinds := make([]string, 0, len(d.samplers))
	for kind := range d.samplers {
		kinds = append(kinds, kind)
	}
	return kinds
}

// Dispatch handles one raw inbound record. It returns the response to send,
// or nil when the record is dropped: malformed body, unknown request type,
// or a sampler failure with no cached reading to fall back on. Omitting the
// response (rather than sending zero) keeps never-updated tiles on their
// placeholder display.
func (d *Dispatcher) Dispatch(ctx context.Context, raw []byte) *protocol.Response {
	req, err := protocol.DecodeRequest(raw)
	if err != nil {
		d.log.Warn("dropping malformed request: %v", err)
		return nil
	}

	kind, ok := protocol.KindFromRequestType(req.Type)
	if !ok {
		d.log.Warn("dropping record with non-request type %q", req.Type)
		return nil
	}

	s, ok := d.samplers[kind]
	if !ok {
		d.log.Warn("no sampler registered for metric %q", kind)
		return nil
	}

	value, err := s.Sample(ctx)
	if err != nil {
		d.log.Warn("sampling %s failed: %v", kind, err)
		return nil
	}

	return protocol.NewResponse(kind, req.Nonce, value)
}
