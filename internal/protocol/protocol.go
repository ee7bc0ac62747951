// Package protocol defines the wire messages exchanged between gauge tiles
// and the telemetry plugin. Messages are plain JSON records tagged with a
// SCREAMING_SNAKE_CASE type and a client-chosen nonce; the nonce is the only
// routing mechanism in the protocol, since responses are broadcast to every
// connected tile rather than addressed.
package protocol

import (
	"encoding/json"
	"math/rand/v2"
	"strings"

	"github.com/tiledeck/tiledeck/internal/errors"
)

// Metric kinds known to the plugin. The request type for a kind is
// "GET_<kind>" and the response type is the kind itself.
const (
	MetricCPUTemp = "CPU_TEMP"
	MetricGPUTemp = "GPU_TEMP"
)

// requestPrefix distinguishes request type tags from response type tags.
const requestPrefix = "GET_"

// Nonce is an opaque identifier generated by each tile at creation time.
// It distinguishes one tile's protocol traffic from another's; it is not a
// security token and collisions are accepted as negligible for the number
// of tiles a host opens concurrently.
type Nonce uint32

// NewNonce returns a nonce drawn uniformly from the full uint32 range.
func NewNonce() Nonce {
	return Nonce(rand.Uint32())
}

// Request asks the plugin for the current reading of one metric.
// One request is sent per tile per poll tick.
type Request struct {
	Type  string `json:"type"`
	Nonce Nonce  `json:"nonce"`
}

// Response carries a metric reading back to the host. It is delivered to
// every connected tile; tiles must discard responses whose nonce is not
// their own.
type Response struct {
	Type  string  `json:"type"`
	Nonce Nonce   `json:"nonce"`
	Value float64 `json:"value"`
}

// NewRequest builds a request for the given metric kind.
func NewRequest(kind string, nonce Nonce) Request {
	return Request{Type: RequestType(kind), Nonce: nonce}
}

// NewResponse builds a response for the given metric kind. The nonce must be
// copied verbatim from the request it answers.
func NewResponse(kind string, nonce Nonce, value float64) *Response {
	return &Response{Type: kind, Nonce: nonce, Value: value}
}

// RequestType returns the request type tag for a metric kind,
// e.g. "CPU_TEMP" -> "GET_CPU_TEMP".
func RequestType(kind string) string {
	return requestPrefix + kind
}

// KindFromRequestType extracts the metric kind from a request type tag.
// Returns false if the tag is not a request tag.
func KindFromRequestType(typ string) (string, bool) {
	kind, ok := strings.CutPrefix(typ, requestPrefix)
	if !ok || kind == "" {
		return "", false
	}
	return kind, true
}

// Encode serializes a request as a JSON record.
func (r Request) Encode() ([]byte, error) {
	return json.Marshal(r)
}

// Encode serializes a response as a JSON record.
func (r *Response) Encode() ([]byte, error) {
	return json.Marshal(r)
}

// DecodeRequest parses a raw inbound record as a request. Records with
// unparseable bodies or a missing type tag yield a PROTOCOL error; callers
// drop and log these without crashing.
func DecodeRequest(raw []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return Request{}, errors.WrapWithCode(err, errors.ErrProtocol,
			"Malformed request record", "")
	}
	if req.Type == "" {
		return Request{}, errors.New(errors.ErrProtocol,
			"Request record has no type tag", "")
	}
	return req, nil
}

// DecodeResponse parses a raw inbound record as a response.
func DecodeResponse(raw []byte) (Response, error) {
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Response{}, errors.WrapWithCode(err, errors.ErrProtocol,
			"Malformed response record", "")
	}
	if resp.Type == "" {
		return Response{}, errors.New(errors.ErrProtocol,
			"Response record has no type tag", "")
	}
	return resp, nil
}
