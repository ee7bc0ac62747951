// Package plugin runs the telemetry plugin process: a single dispatch loop
// attached to the host over the duplex channel, answering metric requests
// for any number of tiles interleaved.
package plugin

import (
	"context"

	"github.com/tiledeck/tiledeck/internal/channel"
	"github.com/tiledeck/tiledeck/internal/dispatcher"
	"github.com/tiledeck/tiledeck/internal/logger"
)

// Runner owns the plugin process lifecycle.
type Runner struct {
	addr string
	disp *dispatcher.Dispatcher
	log  logger.Logger
}

// New creates a runner that dials addr and answers requests with disp.
func New(addr string, disp *dispatcher.Dispatcher, log logger.Logger) *Runner {
	return &Runner{addr: addr, disp: disp, log: log}
}

// Run connects to the host and serves requests until ctx is cancelled.
// A lost connection is not fatal: in-flight requests silently produce no
// response and the runner reconnects, starting fresh with no replay. Run
// returns an error only when (re)connection attempts are exhausted.
func (r *Runner) Run(ctx context.Context) error {
	r.log.Info("serving metrics: %v", r.disp.Kinds())

	for {
		conn, err := channel.NewDialer(r.addr, r.log).Dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		err = conn.ReadLoop(ctx, func(raw []byte) {
			resp := r.disp.Dispatch(ctx, raw)
			if resp == nil {
				return
			}
			if err := conn.Send(resp); err != nil {
				r.log.Warn("response send failed: %v", err)
			}
		})
		conn.Close()

		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			r.log.Warn("channel disconnected: %v", err)
		} else {
			r.log.Info("host closed the channel; reconnecting")
		}
	}
}
