package widgets

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/vis/state"
)

// Controller is the part of a simulation the toolbar drives.
type Controller interface {
	Start() error
	Stop()
	IsRunning() bool
	SetDelay(d time.Duration)
}

// ToolbarActions are the buttons that act on the viewer rather than on a
// Controller.
type ToolbarActions struct {
	Reset func()
	Fit   func()
}

// Toolbar provides run and pacing buttons.
type Toolbar struct {
	actions ToolbarActions

	startBtn  widget.Clickable
	stopBtn   widget.Clickable
	resetBtn  widget.Clickable
	slowerBtn widget.Clickable
	fasterBtn widget.Clickable
	fitBtn    widget.Clickable

	// err is the last Start failure, shown until the next click.
	err error
}

// NewToolbar creates a toolbar.
func NewToolbar(actions ToolbarActions) *Toolbar {
	return &Toolbar{actions: actions}
}

// Layout renders the toolbar and applies clicks to ctl and pb.
func (t *Toolbar) Layout(gtx layout.Context, th *material.Theme, ctl Controller, pb *state.Playback) layout.Dimensions {
	height := gtx.Dp(unit.Dp(44))

	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 40, G: 43, B: 48, A: 255}, clip.Rect(rect).Op())

	t.handleClicks(gtx, ctl, pb)

	gtx.Constraints.Max.Y = height
	return layout.Inset{Left: unit.Dp(10), Right: unit.Dp(10), Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if ctl.IsRunning() {
					return t.button(gtx, th, &t.stopBtn, "Stop", true)
				}
				return t.button(gtx, th, &t.startBtn, "Start", false)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.button(gtx, th, &t.resetBtn, "Reset", false)
			}),
			layout.Rigid(t.separator),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.button(gtx, th, &t.slowerBtn, "-", false)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.button(gtx, th, &t.fasterBtn, "+", false)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := material.Label(th, 12, fmt.Sprintf("%v  (%.0f/s)", pb.Delay, pb.Rate()))
				label.Color = color.NRGBA{R: 150, G: 180, B: 200, A: 255}
				return label.Layout(gtx)
			}),
			layout.Rigid(t.separator),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.button(gtx, th, &t.fitBtn, "Fit", false)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				if t.err == nil {
					return layout.Dimensions{}
				}
				return layout.E.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					label := material.Label(th, 12, t.err.Error())
					label.Color = color.NRGBA{R: 255, G: 120, B: 120, A: 255}
					return label.Layout(gtx)
				})
			}),
		)
	})
}

func (t *Toolbar) handleClicks(gtx layout.Context, ctl Controller, pb *state.Playback) {
	for t.startBtn.Clicked(gtx) {
		t.err = ctl.Start()
	}
	for t.stopBtn.Clicked(gtx) {
		ctl.Stop()
	}
	for t.resetBtn.Clicked(gtx) {
		t.err = nil
		if t.actions.Reset != nil {
			t.actions.Reset()
		}
	}
	for t.slowerBtn.Clicked(gtx) {
		ctl.SetDelay(pb.Slower())
	}
	for t.fasterBtn.Clicked(gtx) {
		ctl.SetDelay(pb.Faster())
	}
	for t.fitBtn.Clicked(gtx) {
		if t.actions.Fit != nil {
			t.actions.Fit()
		}
	}
}

func (t *Toolbar) separator(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		rect := image.Rect(0, 0, 1, 24)
		paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255}, clip.Rect(rect).Op())
		return layout.Dimensions{Size: image.Point{X: 1, Y: 24}}
	})
}

func (t *Toolbar) button(gtx layout.Context, th *material.Theme, btn *widget.Clickable, text string, active bool) layout.Dimensions {
	bg := color.NRGBA{R: 55, G: 58, B: 65, A: 255}
	if active {
		bg = color.NRGBA{R: 80, G: 130, B: 180, A: 255}
	}
	if btn.Hovered() {
		bg.R = min(bg.R, 240) + 15
		bg.G = min(bg.G, 240) + 15
		bg.B = min(bg.B, 240) + 15
	}

	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				rect := image.Rect(0, 0, gtx.Constraints.Min.X, gtx.Constraints.Min.Y)
				paint.FillShape(gtx.Ops, bg, clip.Rect(rect).Op())
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min = image.Point{X: gtx.Dp(unit.Dp(40)), Y: gtx.Dp(unit.Dp(28))}
				return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					label := material.Label(th, 12, text)
					label.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
					return label.Layout(gtx)
				})
			},
		)
	})
}
