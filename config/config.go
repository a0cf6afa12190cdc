// Package config loads the bridge configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jdginn/fltouch/logging"
	"github.com/jdginn/fltouch/surface"
)

// Driver names the MIDI backend.
type Driver string

const (
	RtMidi  Driver = "rtmidi"
	MidiCat Driver = "midicat"
)

// Unit is one physical unit. Ports are matched by substring against the names the driver
// reports, so "X-Touch-Ext" finds "X-Touch-Ext:X-Touch-Ext MIDI 1 24:0".
type Unit struct {
	In  string `yaml:"in"`
	Out string `yaml:"out"`
}

type MIDI struct {
	Driver    Driver `yaml:"driver"`
	Master    Unit   `yaml:"master"`
	Extenders []Unit `yaml:"extenders"`
	// Side is "left" or "right" of the master.
	Side string `yaml:"side"`
}

type OSC struct {
	// Listen is where DAW state arrives, Send is where mutations go (host:port).
	Listen string `yaml:"listen"`
	Send   string `yaml:"send"`
	// Logging is where runtime log level changes are accepted. Empty disables it.
	Logging string `yaml:"logging"`
}

type Surface struct {
	IdleInterval     string `yaml:"idle_interval"`
	MeterInterval    string `yaml:"meter_interval"`
	SmoothSpeed      int    `yaml:"smooth_speed"`
	BacklightMinutes uint8  `yaml:"backlight_minutes"`
}

type Config struct {
	MIDI    MIDI              `yaml:"midi"`
	OSC     OSC               `yaml:"osc"`
	Surface Surface           `yaml:"surface"`
	Logging map[string]string `yaml:"logging"`
}

// Default returns the configuration used for anything a file leaves out.
func Default() Config {
	return Config{
		MIDI: MIDI{
			Driver: RtMidi,
			Master: Unit{In: "X-Touch", Out: "X-Touch"},
			Side:   "left",
		},
		OSC: OSC{
			Listen:  "127.0.0.1:9001",
			Send:    "127.0.0.1:9000",
			Logging: "127.0.0.1:9010",
		},
		Surface: Surface{
			IdleInterval:     "20ms",
			MeterInterval:    "50ms",
			SmoothSpeed:      469,
			BacklightMinutes: 2,
		},
		Logging: map[string]string{},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every problem found, joined.
func (c Config) Validate() error {
	var errs []error
	switch c.MIDI.Driver {
	case RtMidi, MidiCat:
	default:
		errs = append(errs, fmt.Errorf("unknown midi driver %q", c.MIDI.Driver))
	}
	if c.MIDI.Master.In == "" || c.MIDI.Master.Out == "" {
		errs = append(errs, errors.New("master needs both in and out ports"))
	}
	for i, u := range c.MIDI.Extenders {
		if u.In == "" || u.Out == "" {
			errs = append(errs, fmt.Errorf("extender %d needs both in and out ports", i))
		}
	}
	if _, err := c.Side(); err != nil {
		errs = append(errs, err)
	}
	if c.OSC.Listen == "" || c.OSC.Send == "" {
		errs = append(errs, errors.New("osc needs listen and send addresses"))
	}
	if _, _, err := c.Intervals(); err != nil {
		errs = append(errs, err)
	}
	if c.Surface.SmoothSpeed < 0 {
		errs = append(errs, fmt.Errorf("negative smooth_speed %d", c.Surface.SmoothSpeed))
	}
	if c.Surface.BacklightMinutes > 0x7F {
		errs = append(errs, fmt.Errorf("backlight_minutes %d out of range", c.Surface.BacklightMinutes))
	}
	return errors.Join(errs...)
}

// Side returns where the extenders sit.
func (c Config) Side() (surface.Side, error) {
	switch c.MIDI.Side {
	case "left", "":
		return surface.Left, nil
	case "right":
		return surface.Right, nil
	}
	return surface.Left, fmt.Errorf("side must be left or right, got %q", c.MIDI.Side)
}

// Intervals parses the idle and meter tick intervals.
func (c Config) Intervals() (idle, meter time.Duration, err error) {
	if idle, err = parseInterval("idle_interval", c.Surface.IdleInterval); err != nil {
		return 0, 0, err
	}
	if meter, err = parseInterval("meter_interval", c.Surface.MeterInterval); err != nil {
		return 0, 0, err
	}
	return idle, meter, nil
}

func parseInterval(name, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", name, s)
	}
	return d, nil
}

// ApplyLogging sets the configured per-category log levels.
func (c Config) ApplyLogging() error {
	return logging.SetLevels(c.Logging)
}

// SurfaceOptions returns the controller options shared by every unit.
func (c Config) SurfaceOptions() surface.Options {
	side, _ := c.Side()
	return surface.Options{
		Side:             side,
		SmoothSpeed:      c.Surface.SmoothSpeed,
		BacklightMinutes: c.Surface.BacklightMinutes,
	}
}
