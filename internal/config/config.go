// Package config reads run parameters from TOML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/sched"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/sim"
)

var (
	// ErrNoInput means neither inline coordinates nor a file were given.
	ErrNoInput = errors.New("no coordinates given")

	// ErrUnknownScheduler means Scheduler names no known policy.
	ErrUnknownScheduler = errors.New("unknown scheduler")
)

// Scheduler names.
const (
	SchedulerRandom     = "random"
	SchedulerRoundRobin = "round-robin"
)

// Duration is a time.Duration written as a string such as "250ms".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config holds the parameters of one simulation run.
type Config struct {
	// Coordinates are given inline ("1,2;3,4") or as a path to a file in
	// the same format. Inline text wins.
	Configuration     string `toml:"configuration"`
	Pattern           string `toml:"pattern"`
	ConfigurationFile string `toml:"configuration_file"`
	PatternFile       string `toml:"pattern_file"`

	Scheduler         string   `toml:"scheduler"` // random or round-robin
	Seed              uint64   `toml:"seed"`
	Delay             Duration `toml:"delay"`
	MaxActivations    int      `toml:"max_activations"` // 0 is unbounded
	DisorientedFrames bool     `toml:"disoriented_frames"`

	LogLevel  string `toml:"log_level"` // debug, info, warn, error
	StatsFile string `toml:"stats_file"`
}

// Default returns the default parameters.
func Default() *Config {
	return &Config{
		Scheduler:      SchedulerRandom,
		Seed:           sim.DefaultSeed,
		MaxActivations: 1_000_000,
		LogLevel:       "info",
	}
}

// Load decodes the TOML file at path over the defaults.
func Load(path string) (*Config, error) {
	conf := Default()
	if _, err := toml.DecodeFile(path, conf); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return conf, nil
}

// Level parses LogLevel.
func (c *Config) Level() (log.Level, error) {
	return log.ParseLevel(c.LogLevel)
}

// Instance resolves the starting configuration and the target pattern.
func (c *Config) Instance() (*core.Instance, error) {
	configuration, err := coordinates(c.Configuration, c.ConfigurationFile)
	if err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	pattern, err := coordinates(c.Pattern, c.PatternFile)
	if err != nil {
		return nil, fmt.Errorf("pattern: %w", err)
	}
	return core.NewInstance(configuration, pattern)
}

// Logger builds the run logger at LogLevel.
func (c *Config) Logger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	}), nil
}

// Options translates the run parameters into simulation options.
func (c *Config) Options() ([]sim.Option, error) {
	opts := []sim.Option{
		sim.WithSeed(c.Seed),
		sim.WithDelay(c.Delay.Duration),
		sim.WithMaxActivations(c.MaxActivations),
		sim.WithDisorientedFrames(c.DisorientedFrames),
	}
	switch c.Scheduler {
	case SchedulerRandom, "":
	case SchedulerRoundRobin:
		opts = append(opts, sim.WithScheduler(sched.NewRoundRobin()))
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownScheduler, c.Scheduler)
	}
	return opts, nil
}

func coordinates(inline, path string) (core.Configuration, error) {
	switch {
	case inline != "":
		return core.ParseCoordinates(inline)
	case path != "":
		return core.LoadCoordinates(path)
	}
	return nil, ErrNoInput
}
