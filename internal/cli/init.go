package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/tiledeck/tiledeck/internal/config"
	"github.com/tiledeck/tiledeck/internal/errors"
	"gopkg.in/yaml.v3"
)

// initCmd creates a new .tiledeck.yaml configuration.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .tiledeck.yaml configuration",
	Long: `Initialize a new tiledeck configuration file.

Creates a .tiledeck.yaml file in the current directory with sensible
defaults, prompting for the channel address and poll interval.

Examples:
  tiledeck init
  tiledeck init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce)
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

// initCommand prompts for the basic settings and writes the config file.
func initCommand(force bool) error {
	if _, err := os.Stat(config.ConfigFileName); err == nil && !force {
		return errors.New(errors.ErrConfig,
			config.ConfigFileName+" already exists",
			"Use --force to overwrite it")
	}

	cfg := config.Default()
	listen := cfg.Listen
	interval := cfg.PollInterval.String()
	gpuTile := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Channel address").
				Description("The dashboard listens here; the plugin dials it").
				Value(&listen),
			huh.NewInput().
				Title("Poll interval").
				Description("How often each tile requests a fresh reading").
				Value(&interval),
			huh.NewConfirm().
				Title("Add a GPU temperature tile?").
				Description("Requires nvidia-smi on the plugin host").
				Value(&gpuTile),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Init cancelled", "")
	}

	parsedInterval, err := time.ParseDuration(interval)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid poll interval: "+interval,
			"Use a duration like 1s or 500ms")
	}

	cfg.Listen = listen
	cfg.PollInterval = parsedInterval
	if !gpuTile {
		cfg.Tiles = []config.Tile{{Metric: "CPU_TEMP", Label: "CPU"}}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot serialize config", "")
	}

	if err := os.WriteFile(config.ConfigFileName, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot write "+config.ConfigFileName,
			"Check directory permissions")
	}

	fmt.Printf("Wrote %s\n", config.ConfigFileName)
	fmt.Println("Start the dashboard with 'tiledeck dashboard', then the plugin with 'tiledeck plugin'.")
	return nil
}
