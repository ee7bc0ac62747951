package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/tiledeck/tiledeck/internal/config"
	"github.com/tiledeck/tiledeck/internal/dispatcher"
	"github.com/tiledeck/tiledeck/internal/logger"
	"github.com/tiledeck/tiledeck/internal/plugin"
	"github.com/tiledeck/tiledeck/internal/sampler"
)

// pluginCommand runs the telemetry plugin process until interrupted.
func pluginCommand(configPath, addrOverride string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	addr := cfg.Listen
	if addrOverride != "" {
		addr = addrOverride
	}

	log := logger.New("plugin")

	// Every sampler is wrapped in the last-good cache, so a transient
	// sensor failure reuses the previous reading instead of dropping the
	// response or animating a tile to zero.
	disp := dispatcher.New(log)
	disp.Register(sampler.NewCached(sampler.NewCPUTemp()))
	disp.Register(sampler.NewCached(sampler.NewGPUTemp()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return plugin.New(addr, disp, log).Run(ctx)
}
