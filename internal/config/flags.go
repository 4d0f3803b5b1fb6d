package config

import (
	"flag"
	"fmt"
)

// Flags exposes the run parameters on a flag set. A -config file is read
// first and the flags given on the command line are laid over it.
type Flags struct {
	fs   *flag.FlagSet
	path string
	v    Config
}

// NewFlags registers the run parameters on fs.
func NewFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs, v: *Default()}
	fs.StringVar(&f.path, "config", "", "TOML run file")
	fs.StringVar(&f.v.Configuration, "start", "", `starting configuration, e.g. "0,0;1,0;2,0"`)
	fs.StringVar(&f.v.Pattern, "pattern", "", `target pattern, e.g. "0,0;0,1;0,2"`)
	fs.StringVar(&f.v.ConfigurationFile, "start-file", "", "starting configuration file")
	fs.StringVar(&f.v.PatternFile, "pattern-file", "", "target pattern file")
	fs.StringVar(&f.v.Scheduler, "scheduler", f.v.Scheduler, "activation order: random or round-robin")
	fs.Uint64Var(&f.v.Seed, "seed", f.v.Seed, "scheduler and frame seed")
	fs.DurationVar(&f.v.Delay.Duration, "delay", f.v.Delay.Duration, "pause between activations")
	fs.IntVar(&f.v.MaxActivations, "max-activations", f.v.MaxActivations, "activation budget, 0 for none")
	fs.BoolVar(&f.v.DisorientedFrames, "disoriented", f.v.DisorientedFrames, "give every robot a private random frame")
	fs.StringVar(&f.v.LogLevel, "log-level", f.v.LogLevel, "debug, info, warn or error")
	fs.StringVar(&f.v.StatsFile, "stats", f.v.StatsFile, "write run statistics as JSON to this file")
	return f
}

// Resolve builds the Config once the flag set was parsed.
func (f *Flags) Resolve() (*Config, error) {
	if !f.fs.Parsed() {
		return nil, fmt.Errorf("flags not parsed")
	}
	conf := Default()
	if f.path != "" {
		var err error
		if conf, err = Load(f.path); err != nil {
			return nil, err
		}
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "start":
			conf.Configuration, conf.ConfigurationFile = f.v.Configuration, ""
		case "pattern":
			conf.Pattern, conf.PatternFile = f.v.Pattern, ""
		case "start-file":
			conf.ConfigurationFile, conf.Configuration = f.v.ConfigurationFile, ""
		case "pattern-file":
			conf.PatternFile, conf.Pattern = f.v.PatternFile, ""
		case "scheduler":
			conf.Scheduler = f.v.Scheduler
		case "seed":
			conf.Seed = f.v.Seed
		case "delay":
			conf.Delay = f.v.Delay
		case "max-activations":
			conf.MaxActivations = f.v.MaxActivations
		case "disoriented":
			conf.DisorientedFrames = f.v.DisorientedFrames
		case "log-level":
			conf.LogLevel = f.v.LogLevel
		case "stats":
			conf.StatsFile = f.v.StatsFile
		}
	})
	return conf, nil
}
