package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/tiledeck/tiledeck/internal/errors"
	"github.com/tiledeck/tiledeck/internal/protocol"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".tiledeck.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/tiledeck"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'tiledeck init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v)
}

// LoadOrDefault resolves the config like Find/Load, but falls back to the
// built-in defaults when no config file exists anywhere. An explicit path
// that does not exist is still an error.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .tiledeck.yaml in current directory
// 3. ~/.config/tiledeck/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	// 1. Explicit path takes precedence
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	// 2. Current directory
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	// 3. Global config
	home, err := os.UserHomeDir()
	if err == nil {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// parseConfig unmarshals and validates the viper-loaded config, filling in
// defaults for absent fields.
func parseConfig(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config file structure",
			"Check the YAML syntax and field types")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the config for values the rest of the system cannot
// operate with, returning actionable errors.
func (c *Config) Validate() error {
	if c.PollInterval <= 0 {
		return errors.New(errors.ErrConfig,
			"poll_interval must be positive",
			"Use a duration like 1s or 500ms")
	}
	if c.AnimationDuration <= 0 {
		return errors.New(errors.ErrConfig,
			"animation_duration must be positive",
			"Use a duration like 800ms")
	}
	if c.Thresholds.Warning >= c.Thresholds.Critical {
		return errors.New(errors.ErrConfig,
			"thresholds.warning must be below thresholds.critical",
			fmt.Sprintf("Got warning=%.1f critical=%.1f", c.Thresholds.Warning, c.Thresholds.Critical))
	}
	if !strings.HasPrefix(c.Listen, "tcp://") && !strings.HasPrefix(c.Listen, "unix://") {
		return errors.New(errors.ErrConfig,
			"listen must be a tcp:// or unix:// address",
			"Example: tcp://127.0.0.1:9321 or unix:///tmp/tiledeck.sock")
	}
	if len(c.Tiles) == 0 {
		return errors.New(errors.ErrConfig,
			"at least one tile must be configured",
			"Add a tile with metric CPU_TEMP or GPU_TEMP")
	}
	for _, tile := range c.Tiles {
		switch tile.Metric {
		case protocol.MetricCPUTemp, protocol.MetricGPUTemp:
		default:
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("unknown tile metric %q", tile.Metric),
				"Supported metrics: CPU_TEMP, GPU_TEMP")
		}
	}
	return nil
}
