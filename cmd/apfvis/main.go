// Command apfvis shows a pattern formation simulation in a Gio window.
package main

import (
	"flag"
	"fmt"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/config"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/sim"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/vis"
)

func main() {
	fs := flag.NewFlagSet("apfvis", flag.ExitOnError)
	flags := config.NewFlags(fs)
	autostart := fs.Bool("autostart", false, "start the simulation when the window opens")
	fs.Parse(os.Args[1:])

	conf, err := flags.Resolve()
	if err != nil {
		fail(err)
	}
	logger, err := conf.Logger(os.Stderr, "apfvis")
	if err != nil {
		fail(err)
	}
	inst, err := conf.Instance()
	if err != nil {
		fail(err)
	}

	// Each reset builds a new run from the same parameters.
	factory := func() (*sim.Simulation, error) {
		opts, err := conf.Options()
		if err != nil {
			return nil, err
		}
		return sim.New(inst.Configuration, inst.Pattern, append(opts, sim.WithLogger(logger))...)
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("Pattern Formation"),
			app.Size(unit.Dp(1200), unit.Dp(800)),
		)
		if err := vis.NewApp(factory, logger, *autostart).Run(window); err != nil {
			logger.Fatal("viewer", "err", err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "apfvis:", err)
	os.Exit(1)
}
