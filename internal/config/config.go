// Package config loads santa's YAML configuration.
package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Config is the application configuration.
type Config struct {
	Window   Window `yaml:"window"`
	Assets   Assets `yaml:"assets"`
	TPS      int    `yaml:"tps"`
	Seed     uint64 `yaml:"seed"`
	LogLevel string `yaml:"log_level"`
	Debug    bool   `yaml:"debug"`
}

// Window is the initial window setup.
type Window struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// Assets locates the sprite images.
type Assets struct {
	Dir string `yaml:"dir"`
}

// Smallest window in which objects can spawn outside the 200 px free zone
// around the centre with room for a 32 px sprite.
const (
	MinWidth  = 320
	MinHeight = 320
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: Window{
			Width:     1024,
			Height:    768,
			Title:     "Santa",
			Resizable: true,
		},
		Assets:   Assets{Dir: "assets"},
		TPS:      60,
		LogLevel: "info",
	}
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width < MinWidth || c.Window.Height < MinHeight {
		errs = append(errs, fmt.Errorf("window %dx%d is smaller than %dx%d", c.Window.Width, c.Window.Height, MinWidth, MinHeight))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps must be positive, got %d", c.TPS))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// TickSeconds is the simulation step length.
func (c Config) TickSeconds() float64 {
	if c.TPS <= 0 {
		return 0
	}
	return 1 / float64(c.TPS)
}
