// Command apfsim runs one pattern formation simulation headless and
// reports its statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/config"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/event"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/sim"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "apfsim:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("apfsim", flag.ContinueOnError)
	flags := config.NewFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	conf, err := flags.Resolve()
	if err != nil {
		return err
	}
	logger, err := conf.Logger(os.Stderr, "apfsim")
	if err != nil {
		return err
	}

	inst, err := conf.Instance()
	if err != nil {
		return err
	}
	opts, err := conf.Options()
	if err != nil {
		return err
	}
	s, err := sim.New(inst.Configuration, inst.Pattern, append(opts, sim.WithLogger(logger))...)
	if err != nil {
		return err
	}
	s.Subscribe(eventLogger(logger))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting", "run", s.RunID(), "robots", inst.RobotCount(), "seed", conf.Seed)
	if err := s.Run(ctx); err != nil {
		logger.Warn("interrupted", "err", err)
	}

	stats := s.Statistics()
	fmt.Printf("run %s: completed=%v activations=%d cycles=%d steps=%d failures=%d ser=%dx%d in %v\n",
		stats.RunID, stats.Completed, stats.TotalActivations(), stats.TotalCycles(), stats.TotalSteps(),
		stats.Failures, stats.MaxSERWidth, stats.MaxSERHeight, stats.Duration())
	fmt.Println("final:", core.FormatCoordinates(s.Configuration()))

	if conf.StatsFile != "" {
		if err := stats.ExportJSON(conf.StatsFile); err != nil {
			return err
		}
		logger.Info("statistics written", "file", conf.StatsFile)
	}
	if !stats.Completed {
		return fmt.Errorf("pattern not formed")
	}
	return nil
}

// eventLogger logs moves and run milestones. Looking and computing are
// only shown at debug level.
func eventLogger(logger *log.Logger) event.Listener {
	return event.ListenerFunc(func(e event.Event) {
		switch e.Type {
		case event.SimulationStart, event.SimulationEnd:
			logger.Info(e.Type.String(), "seq", e.Seq)
		case event.SimulationFail:
			logger.Error(e.Type.String(), "seq", e.Seq, "err", e.Err)
		case event.RobotMoving:
			logger.Debug("move", "robot", e.Robot, "cycle", e.Cycle, "from", e.From, "to", e.To)
		default:
			logger.Debug(e.Type.String(), "robot", e.Robot, "cycle", e.Cycle)
		}
	})
}
