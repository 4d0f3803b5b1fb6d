package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/vis/state"
)

var statusColors = [...]color.NRGBA{
	state.StatusReady:   {R: 150, G: 150, B: 150, A: 255},
	state.StatusRunning: {R: 100, G: 180, B: 255, A: 255},
	state.StatusFailed:  {R: 255, G: 110, B: 110, A: 255},
	state.StatusEnded:   {R: 120, G: 230, B: 140, A: 255},
}

// Timeline is the status bar under the lattice: run status, progress
// toward the pattern and the latest event.
type Timeline struct{}

// NewTimeline creates a status bar.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// Layout renders v.
func (t *Timeline) Layout(gtx layout.Context, th *material.Theme, v state.View) layout.Dimensions {
	height := gtx.Dp(unit.Dp(52))

	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 35, G: 38, B: 42, A: 255}, clip.Rect(rect).Op())

	// Share of robots standing on a target cell.
	margin := gtx.Dp(unit.Dp(20))
	track := gtx.Constraints.Max.X - 2*margin
	placed := v.Placed()
	fill := 0
	if n := len(v.Positions); n > 0 {
		fill = track * placed / n
	}
	y := gtx.Dp(unit.Dp(8))
	paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255},
		clip.Rect(image.Rect(margin, y, margin+track, y+4)).Op())
	paint.FillShape(gtx.Ops, statusColors[v.Status],
		clip.Rect(image.Rect(margin, y, margin+fill, y+4)).Op())

	status := v.Status.String()
	if v.Status == state.StatusFailed && v.Failure != nil {
		status = fmt.Sprintf("%s: %v", status, v.Failure)
	}
	if v.Formed() {
		status += " (formed)"
	}
	left := material.Label(th, 12, status)
	left.Color = statusColors[v.Status]

	mid := material.Label(th, 12, fmt.Sprintf("placed %d/%d  moves %d  events %d",
		placed, len(v.Positions), v.Moves, v.LastSeq))
	mid.Color = color.NRGBA{R: 200, G: 200, B: 200, A: 255}

	selected := v.LastEvent
	if i := v.Selected; i >= 0 && i < len(v.Positions) {
		selected = fmt.Sprintf("robot %d at %v, cycle %d", i, v.Positions[i], v.Cycles[i])
	}
	right := material.Label(th, 12, selected)
	right.Color = color.NRGBA{R: 150, G: 150, B: 150, A: 255}

	gtx.Constraints.Max.Y = height
	layout.Inset{Top: unit.Dp(20), Left: unit.Dp(20), Right: unit.Dp(20)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
			layout.Rigid(left.Layout),
			layout.Rigid(mid.Layout),
			layout.Rigid(right.Layout),
		)
	})
	return layout.Dimensions{Size: image.Point{X: gtx.Constraints.Max.X, Y: height}}
}
