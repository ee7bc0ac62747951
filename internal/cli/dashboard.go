package cli

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tiledeck/tiledeck/internal/channel"
	"github.com/tiledeck/tiledeck/internal/config"
	"github.com/tiledeck/tiledeck/internal/dashboard"
	"github.com/tiledeck/tiledeck/internal/errors"
	"github.com/tiledeck/tiledeck/internal/logger"
	"golang.org/x/term"
)

// dashboardCommand runs the gauge tile TUI until the user quits.
func dashboardCommand(configPath, addrOverride, intervalOverride string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	if addrOverride != "" {
		cfg.Listen = addrOverride
	}
	if intervalOverride != "" {
		interval, err := time.ParseDuration(intervalOverride)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Invalid --interval value: "+intervalOverride,
				"Use a duration like 1s or 500ms")
		}
		cfg.PollInterval = interval
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrConfig,
			"The dashboard needs an interactive terminal",
			"Run tiledeck dashboard directly in a terminal, not through a pipe")
	}

	// The TUI owns stderr-visible output; keep the hub's logging quiet
	// unless debugging.
	log := logger.Noop()
	if os.Getenv("TILEDECK_DEBUG") != "" {
		log = logger.New("dashboard")
	}

	hub := channel.NewHub(log)
	if err := hub.Listen(cfg.Listen); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := hub.Serve(ctx); err != nil {
			log.Error("channel serve failed: %v", err)
		}
	}()

	model := dashboard.NewModel(hub, cfg, log)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()

	cancel()
	hub.Close()
	return err
}
