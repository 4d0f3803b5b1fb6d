// Package draw renders the lattice, the pattern and the robots.
package draw

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/vis/interact"
)

var (
	ColorGrid       = color.NRGBA{R: 40, G: 45, B: 50, A: 255}
	ColorAxis       = color.NRGBA{R: 70, G: 78, B: 88, A: 255}
	ColorTarget     = color.NRGBA{R: 80, G: 180, B: 100, A: 255}
	ColorTargetFill = color.NRGBA{R: 80, G: 180, B: 100, A: 50}
)

// DrawGrid draws lattice lines through every visible cell centre. Lines
// are skipped when cells get too small to tell apart.
func DrawGrid(gtx layout.Context, camera *interact.Camera) {
	bounds := gtx.Constraints.Max
	if camera.Cell < 6 {
		return
	}

	lo := camera.ToLattice(f32.Pt(0, float32(bounds.Y)))
	hi := camera.ToLattice(f32.Pt(float32(bounds.X), 0))

	for x := lo.X - 1; x <= hi.X+1; x++ {
		sx := int(camera.ToScreen(core.Point{X: x}).X)
		if sx < 0 || sx > bounds.X {
			continue
		}
		col := ColorGrid
		if x == 0 {
			col = ColorAxis
		}
		paint.FillShape(gtx.Ops, col, clip.Rect(image.Rect(sx, 0, sx+1, bounds.Y)).Op())
	}
	for y := lo.Y - 1; y <= hi.Y+1; y++ {
		sy := int(camera.ToScreen(core.Point{Y: y}).Y)
		if sy < 0 || sy > bounds.Y {
			continue
		}
		col := ColorGrid
		if y == 0 {
			col = ColorAxis
		}
		paint.FillShape(gtx.Ops, col, clip.Rect(image.Rect(0, sy, bounds.X, sy+1)).Op())
	}
}

// DrawPattern marks every target cell with a tinted square and outline.
func DrawPattern(gtx layout.Context, pattern core.Configuration, camera *interact.Camera) {
	half := camera.Cell * 0.45
	stroke := max(1, camera.Cell*0.08)
	for _, p := range pattern {
		c := camera.ToScreen(p)
		r := image.Rect(int(c.X-half), int(c.Y-half), int(c.X+half), int(c.Y+half))
		paint.FillShape(gtx.Ops, ColorTargetFill, clip.Rect(r).Op())
		DrawSquareOutline(gtx, c, half, stroke, ColorTarget)
	}
}

// DrawSquareOutline strokes a square of half-size half around c.
func DrawSquareOutline(gtx layout.Context, c f32.Point, half, stroke float32, col color.NRGBA) {
	outer := image.Rect(int(c.X-half), int(c.Y-half), int(c.X+half), int(c.Y+half))
	s := int(math.Ceil(float64(stroke)))
	for _, r := range []image.Rectangle{
		{Min: outer.Min, Max: image.Pt(outer.Max.X, outer.Min.Y+s)},
		{Min: image.Pt(outer.Min.X, outer.Max.Y-s), Max: outer.Max},
		{Min: outer.Min, Max: image.Pt(outer.Min.X+s, outer.Max.Y)},
		{Min: image.Pt(outer.Max.X-s, outer.Min.Y), Max: outer.Max},
	} {
		paint.FillShape(gtx.Ops, col, clip.Rect(r).Op())
	}
}

// DrawCircleOutline draws a ring.
func DrawCircleOutline(gtx layout.Context, c f32.Point, radius float32, col color.NRGBA, width float32) {
	paint.FillShape(gtx.Ops, col, clip.Stroke{
		Path:  circlePath(gtx, c, radius),
		Width: width,
	}.Op())
}

func drawFilledCircle(gtx layout.Context, c f32.Point, radius float32, col color.NRGBA) {
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: circlePath(gtx, c, radius)}.Op())
}

func circlePath(gtx layout.Context, c f32.Point, radius float32) clip.PathSpec {
	const segments = 20
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(c.X+radius, c.Y))
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / segments
		path.LineTo(f32.Pt(
			c.X+radius*float32(math.Cos(angle)),
			c.Y+radius*float32(math.Sin(angle)),
		))
	}
	path.Close()
	return path.End()
}

// HitTest reports whether screen point pos lies within radius cells of p.
func HitTest(pos f32.Point, p core.Point, camera *interact.Camera, radius float32) bool {
	c := camera.ToScreen(p)
	dx, dy := pos.X-c.X, pos.Y-c.Y
	r := radius * camera.Cell
	return dx*dx+dy*dy <= r*r
}
