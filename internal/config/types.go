package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Defaults applied when a field is absent from the config file.
const (
	DefaultListen            = "tcp://127.0.0.1:9321"
	DefaultPollInterval      = time.Second
	DefaultAnimationDuration = 800 * time.Millisecond
	DefaultWarningThreshold  = 50.0
	DefaultCriticalThreshold = 75.0
)

// Config represents the complete .tiledeck.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Listen is the channel endpoint the dashboard listens on and the
	// plugin dials. Either tcp://host:port or unix:///path/to.sock.
	Listen string `yaml:"listen" mapstructure:"listen"`

	// PollInterval is how often each tile requests a fresh reading.
	// Ticks are aligned to wall-clock multiples of the interval so tiles
	// created at different times stay in phase.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`

	// AnimationDuration is how long a gauge takes to ease from its
	// displayed value to a newly accepted target.
	AnimationDuration time.Duration `yaml:"animation_duration" mapstructure:"animation_duration"`

	// Thresholds controls the gauge color bands.
	Thresholds Thresholds `yaml:"thresholds" mapstructure:"thresholds"`

	// Tiles lists the gauge tiles the dashboard opens, in display order.
	Tiles []Tile `yaml:"tiles" mapstructure:"tiles"`
}

// Thresholds defines the boundaries between gauge color bands, in the
// metric's underlying unit (degrees for temperatures). Readings below
// Warning render cool, readings at or above Critical render critical.
type Thresholds struct {
	Warning  float64 `yaml:"warning" mapstructure:"warning"`
	Critical float64 `yaml:"critical" mapstructure:"critical"`
}

// Tile configures one gauge tile.
type Tile struct {
	// Metric is the metric kind this tile polls (CPU_TEMP or GPU_TEMP).
	Metric string `yaml:"metric" mapstructure:"metric"`

	// Label overrides the metric name shown on the tile.
	Label string `yaml:"label,omitempty" mapstructure:"label"`
}

// Default returns a config with all defaults applied: one CPU temperature
// tile and one GPU temperature tile.
func Default() *Config {
	return &Config{
		Version:           CurrentConfigVersion,
		Listen:            DefaultListen,
		PollInterval:      DefaultPollInterval,
		AnimationDuration: DefaultAnimationDuration,
		Thresholds: Thresholds{
			Warning:  DefaultWarningThreshold,
			Critical: DefaultCriticalThreshold,
		},
		Tiles: []Tile{
			{Metric: "CPU_TEMP", Label: "CPU"},
			{Metric: "GPU_TEMP", Label: "GPU"},
		},
	}
}
