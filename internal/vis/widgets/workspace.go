// Package widgets provides Gio UI widgets for the viewer.
package widgets

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/vis/draw"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/vis/interact"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/vis/state"
)

var colorTrail = color.NRGBA{R: 100, G: 200, B: 255, A: 255}

// Workspace is the lattice view.
type Workspace struct {
	camera *interact.Camera

	// fit is set when the camera should frame the robots on the next frame.
	fit  bool
	size image.Point
}

// NewWorkspace creates a workspace that frames the robots on first layout.
func NewWorkspace(camera *interact.Camera) *Workspace {
	return &Workspace{camera: camera, fit: true}
}

// Fit asks for the camera to frame robots and pattern on the next frame.
func (w *Workspace) Fit() { w.fit = true }

// Layout draws v and handles pan, zoom and robot selection on st.
func (w *Workspace) Layout(gtx layout.Context, st *state.State, v state.View) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	paint.Fill(gtx.Ops, color.NRGBA{R: 25, G: 28, B: 32, A: 255})

	if w.fit || w.size != bounds {
		if w.fit && len(v.Positions)+len(v.Pattern) > 0 {
			w.camera.Fit(v.Bounds(), float32(bounds.X), float32(bounds.Y), 2)
		}
		w.fit = false
		w.size = bounds
	}

	w.handlePointerEvents(gtx, st, v)

	draw.DrawGrid(gtx, w.camera)
	draw.DrawPattern(gtx, v.Pattern, w.camera)
	for i, trail := range v.Trails {
		col := colorTrail
		if i == v.Selected {
			col = draw.ColorRobotSelected
		}
		draw.DrawTrail(gtx, trail, w.camera, col)
	}
	draw.DrawStacked(gtx, v.Positions, w.camera)
	draw.DrawRobots(gtx, v, w.camera)

	return layout.Dimensions{Size: bounds}
}

func (w *Workspace) handlePointerEvents(gtx layout.Context, st *state.State, v state.View) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, w)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  w,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		w.camera.HandleEvent(pe)
		if pe.Kind == pointer.Press && pe.Buttons.Contain(pointer.ButtonPrimary) {
			st.Select(draw.FindRobotAt(pe.Position, v.Positions, w.camera))
		}
	}
}
