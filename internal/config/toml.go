// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Deck    DeckConfig    `toml:"deck"`
	Export  ExportConfig  `toml:"export"`
	Service ServiceConfig `toml:"service"`
	Log     LogConfig     `toml:"log"`
}

// DeckConfig maps presentation settings.
type DeckConfig struct {
	DragDistance    *float64 `toml:"drag-distance"`
	DragVelocity    *float64 `toml:"drag-velocity"`
	CellWidth       *float64 `toml:"cell-width"`
	CounterDuration *float64 `toml:"counter-duration"`
	Transitions     *bool    `toml:"transitions"`
}

// ExportConfig maps card export settings.
type ExportConfig struct {
	Dir   *string `toml:"dir"`
	Share *bool   `toml:"share"`
}

// ServiceConfig maps the analysis service settings.
type ServiceConfig struct {
	URL *string `toml:"url"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Verbose *bool `toml:"verbose"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
