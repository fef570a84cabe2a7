// Package config loads the console configuration from an optional YAML
// file; every field has a default so the console runs with no file at all.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the console's startup configuration
type Config struct {
	// DataRoot is the campaign store directory (contains galaxy/)
	DataRoot string `yaml:"data_root"`

	// LogFile receives structured logs; the terminal owns stdout
	LogFile string `yaml:"log_file"`

	Server ServerConfig `yaml:"server"`
	Audio  AudioConfig  `yaml:"audio"`
	Visual VisualConfig `yaml:"visual"`
}

type ServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"`
}

type VisualConfig struct {
	// StarDensity is the 1-in-N chance a background cell holds a star
	StarDensity int `yaml:"star_density"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DataRoot: "data",
		LogFile:  "console.log",
		Server: ServerConfig{
			Enabled: true,
			Addr:    ":8874",
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.5,
		},
		Visual: VisualConfig{
			StarDensity: 28,
		},
	}
}

// Load reads the config file over the defaults. A missing file is not an
// error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DataRoot == "" {
		return fmt.Errorf("config: data_root must not be empty")
	}
	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		return fmt.Errorf("config: audio.master_volume %v out of [0,1]", c.Audio.MasterVolume)
	}
	if c.Visual.StarDensity < 0 {
		return fmt.Errorf("config: visual.star_density must be >= 0")
	}
	return nil
}
