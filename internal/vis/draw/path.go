package draw

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/vis/interact"
)

// DrawTrail draws the cells a robot walked through, fading toward the
// oldest.
func DrawTrail(gtx layout.Context, trail []core.Point, camera *interact.Camera, base color.NRGBA) {
	n := len(trail)
	if n < 2 {
		return
	}
	maxWidth := camera.Cell * 0.12
	for i := 0; i < n-1; i++ {
		col := base
		col.A = uint8(40 + float64(i)/float64(n)*140)
		w := maxWidth * (0.3 + 0.7*float32(i)/float32(n))
		drawSegment(gtx, camera.ToScreen(trail[i]), camera.ToScreen(trail[i+1]), w, col)
	}
}

func drawSegment(gtx layout.Context, a, b f32.Point, width float32, col color.NRGBA) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length < 0.1 {
		return
	}
	px := -dy / length * width / 2
	py := dx / length * width / 2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(a.X+px, a.Y+py))
	path.LineTo(f32.Pt(b.X+px, b.Y+py))
	path.LineTo(f32.Pt(b.X-px, b.Y-py))
	path.LineTo(f32.Pt(a.X-px, a.Y-py))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
