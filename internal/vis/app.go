// Package vis implements a Gio viewer that drives a simulation and draws
// the swarm as it forms the pattern.
package vis

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget/material"
	"github.com/charmbracelet/log"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/sim"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/vis/interact"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/vis/observer"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/vis/state"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/vis/widgets"
)

// Factory builds a fresh simulation. The viewer calls it at startup and on
// every reset since a simulation runs only once.
type Factory func() (*sim.Simulation, error)

// App is the viewer.
type App struct {
	factory Factory
	logger  *log.Logger

	sim         *sim.Simulation
	state       *state.State
	unsubscribe func()
	playback    *state.Playback

	theme     *material.Theme
	camera    *interact.Camera
	workspace *widgets.Workspace
	toolbar   *widgets.Toolbar
	timeline  *widgets.Timeline

	autostart bool
}

// NewApp creates a viewer. With autostart the first simulation starts as
// soon as the window opens.
func NewApp(factory Factory, logger *log.Logger, autostart bool) *App {
	if logger == nil {
		logger = log.Default()
	}
	camera := interact.NewCamera()
	return &App{
		factory:   factory,
		logger:    logger,
		playback:  state.NewPlayback(),
		theme:     material.NewTheme(),
		camera:    camera,
		workspace: widgets.NewWorkspace(camera),
		timeline:  widgets.NewTimeline(),
		autostart: autostart,
	}
}

// Run drives the window until it is closed.
func (a *App) Run(w *app.Window) error {
	invalidate := w.Invalidate
	a.toolbar = widgets.NewToolbar(widgets.ToolbarActions{
		Reset: func() {
			if err := a.reset(invalidate); err != nil {
				a.logger.Error("reset", "err", err)
			}
		},
		Fit: a.workspace.Fit,
	})
	if err := a.reset(invalidate); err != nil {
		return err
	}
	if a.autostart {
		if err := a.start(invalidate); err != nil {
			return err
		}
	}
	defer func() { a.sim.Stop() }()

	var ops op.Ops
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModShift})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(invalidate, ke)
				}
			}
			event.Op(gtx.Ops, tag)

			a.layout(gtx, invalidate)
			e.Frame(gtx.Ops)
		}
	}
}

// reset replaces the simulation with a fresh one from the factory.
// invalidate is called whenever the new simulation changes the view.
func (a *App) reset(invalidate func()) error {
	next, err := a.factory()
	if err != nil {
		return fmt.Errorf("create simulation: %w", err)
	}
	if a.sim != nil {
		a.sim.Stop()
		a.unsubscribe()
	}

	st := state.NewState(next.Configuration(), next.Pattern())
	st.Playback = a.playback
	next.SetDelay(a.playback.Delay)
	a.unsubscribe = next.Subscribe(observer.NewStateObserver(st, invalidate))

	a.sim, a.state = next, st
	a.workspace.Fit()
	a.logger.Info("simulation ready", "run", next.RunID().String()[:8], "robots", len(next.Configuration()))
	invalidate()
	return nil
}

// start runs the current simulation. A finished simulation cannot run
// again, so it is replaced by a fresh one first.
func (a *App) start(invalidate func()) error {
	err := a.sim.Start()
	if !errors.Is(err, sim.ErrAlreadyFinished) {
		return err
	}
	if err := a.reset(invalidate); err != nil {
		return err
	}
	return a.sim.Start()
}

// controller hands the toolbar the current simulation, restarting it from
// the factory once it has finished.
type controller struct {
	a          *App
	invalidate func()
}

func (c controller) Start() error             { return c.a.start(c.invalidate) }
func (c controller) Stop()                    { c.a.sim.Stop() }
func (c controller) IsRunning() bool          { return c.a.sim.IsRunning() }
func (c controller) SetDelay(d time.Duration) { c.a.sim.SetDelay(d) }

func (a *App) handleKeyEvent(invalidate func(), e key.Event) {
	switch e.Name {
	case key.NameSpace:
		if a.sim.IsRunning() {
			a.sim.Stop()
		} else if err := a.start(invalidate); err != nil {
			a.logger.Warn("start", "err", err)
		}
	case "+", "=":
		a.sim.SetDelay(a.playback.Faster())
	case "-":
		a.sim.SetDelay(a.playback.Slower())
	case "R":
		if err := a.reset(invalidate); err != nil {
			a.logger.Error("reset", "err", err)
		}
	case "F":
		a.workspace.Fit()
	case "0":
		a.camera.Reset()
	case key.NameEscape:
		a.state.Select(-1)
	}
}

func (a *App) layout(gtx layout.Context, invalidate func()) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	v := a.state.View()
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toolbar.Layout(gtx, a.theme, controller{a: a, invalidate: invalidate}, a.playback)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return a.workspace.Layout(gtx, a.state, v)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.timeline.Layout(gtx, a.theme, v)
		}),
	)
}
