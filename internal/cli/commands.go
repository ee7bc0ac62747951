// Package cli wires the tiledeck subcommands: the plugin process, the tile
// dashboard, config bootstrap, and version info.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Global flags
var configFlag string

// Command-specific flags
var (
	pluginAddrFlag        string
	dashboardAddrFlag     string
	dashboardIntervalFlag string
	initForce             bool
)

var rootCmd = &cobra.Command{
	Use:   "tiledeck",
	Short: "Stream machine telemetry to animated gauge tiles",
	Long: `tiledeck streams machine-level metrics (CPU and GPU temperature) from a
background plugin process to animated gauge tiles over a persistent duplex
channel.

Run 'tiledeck dashboard' in one terminal and 'tiledeck plugin' in another:
the dashboard polls the plugin once per second per tile, and each tile
renders its readings as a color-coded, eased gauge.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// pluginCmd runs the telemetry plugin process.
var pluginCmd = &cobra.Command{
	Use:   "plugin",
	Short: "Run the telemetry plugin process",
	Long: `Run the plugin process that samples machine metrics and answers requests
from the dashboard over the duplex channel.

The plugin is stateless: it answers each request independently and holds no
per-tile state beyond a last-good reading cache per sampler.

Examples:
  tiledeck plugin
  tiledeck plugin --addr tcp://127.0.0.1:9321
  tiledeck plugin --addr unix:///tmp/tiledeck.sock`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return pluginCommand(configFlag, pluginAddrFlag)
	},
}

// dashboardCmd runs the gauge tile TUI.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Run the gauge tile dashboard",
	Long: `Run the host-side dashboard: listens for the plugin process and renders
one animated gauge tile per configured metric.

Examples:
  tiledeck dashboard
  tiledeck dashboard --interval 500ms
  tiledeck dashboard --addr unix:///tmp/tiledeck.sock`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(configFlag, dashboardAddrFlag, dashboardIntervalFlag)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file")

	pluginCmd.Flags().StringVar(&pluginAddrFlag, "addr", "", "Channel address to dial (overrides config)")
	dashboardCmd.Flags().StringVar(&dashboardAddrFlag, "addr", "", "Channel address to listen on (overrides config)")
	dashboardCmd.Flags().StringVar(&dashboardIntervalFlag, "interval", "", "Poll interval per tile (e.g. 1s, 500ms)")

	rootCmd.AddCommand(pluginCmd)
	rootCmd.AddCommand(dashboardCmd)
}
