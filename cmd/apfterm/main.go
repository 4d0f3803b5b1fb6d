// Command apfterm shows a pattern formation simulation in the terminal.
//
// Keys: space starts or stops, + and - change the pace, r resets, q quits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/config"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/sim"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/vis/observer"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/vis/state"
)

const frameInterval = 33 * time.Millisecond

func main() {
	fs := flag.NewFlagSet("apfterm", flag.ExitOnError)
	flags := config.NewFlags(fs)
	logFile := fs.String("log", "", "log file; the terminal is taken by the view")
	fs.Parse(os.Args[1:])

	if err := run(flags, *logFile); err != nil {
		fmt.Fprintln(os.Stderr, "apfterm:", err)
		os.Exit(1)
	}
}

type terminal struct {
	screen   tcell.Screen
	logger   *log.Logger
	inst     *core.Instance
	conf     *config.Config
	playback *state.Playback

	sim   *sim.Simulation
	state *state.State
}

func run(flags *config.Flags, logFile string) error {
	conf, err := flags.Resolve()
	if err != nil {
		return err
	}
	out := os.Stderr
	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	} else {
		conf.LogLevel = "error"
	}
	logger, err := conf.Logger(out, "apfterm")
	if err != nil {
		return err
	}
	inst, err := conf.Instance()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	t := &terminal{screen: screen, logger: logger, inst: inst, conf: conf, playback: state.NewPlayback()}
	if conf.Delay.Duration > 0 {
		t.playback.SetDelay(conf.Delay.Duration)
	}
	if err := t.reset(); err != nil {
		return err
	}
	defer func() { t.sim.Stop() }()
	return t.loop()
}

func (t *terminal) reset() error {
	opts, err := t.conf.Options()
	if err != nil {
		return err
	}
	next, err := sim.New(t.inst.Configuration, t.inst.Pattern, append(opts, sim.WithLogger(t.logger))...)
	if err != nil {
		return err
	}
	if t.sim != nil {
		t.sim.Stop()
	}
	st := state.NewState(next.Configuration(), next.Pattern())
	st.Playback = t.playback
	next.SetDelay(t.playback.Delay)
	next.Subscribe(observer.NewStateObserver(st, nil))
	t.sim, t.state = next, st
	return nil
}

func (t *terminal) loop() error {
	events := make(chan tcell.Event, 64)
	go func() {
		// PollEvent returns nil once the screen is finalized.
		for ev := t.screen.PollEvent(); ev != nil; ev = t.screen.PollEvent() {
			events <- ev
		}
		close(events)
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if done, err := t.handle(ev); done || err != nil {
				return err
			}
		case <-ticker.C:
			render(t.screen, t.state.View(), t.playback)
		}
	}
}

// start runs the current simulation, replacing it with a fresh one first
// if it has already finished.
func (t *terminal) start() error {
	err := t.sim.Start()
	if !errors.Is(err, sim.ErrAlreadyFinished) {
		return err
	}
	if err := t.reset(); err != nil {
		return err
	}
	return t.sim.Start()
}

func (t *terminal) handle(ev tcell.Event) (quit bool, err error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return true, nil
		case ev.Key() != tcell.KeyRune:
		case ev.Rune() == 'q':
			return true, nil
		case ev.Rune() == ' ':
			if t.sim.IsRunning() {
				t.sim.Stop()
			} else if err := t.start(); err != nil {
				t.logger.Warn("start", "err", err)
			}
		case ev.Rune() == '+' || ev.Rune() == '=':
			t.sim.SetDelay(t.playback.Faster())
		case ev.Rune() == '-':
			t.sim.SetDelay(t.playback.Slower())
		case ev.Rune() == 'r':
			return false, t.reset()
		}
	}
	return false, nil
}
