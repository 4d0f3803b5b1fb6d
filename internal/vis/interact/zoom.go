// Package interact handles pan and zoom of the lattice view.
package interact

import (
	"gioui.org/f32"
	"gioui.org/io/pointer"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
)

const (
	minCell     = 4
	maxCell     = 200
	defaultCell = 32
	zoomStep    = 1.1
)

// Camera maps lattice cells to screen pixels. North is up on screen.
type Camera struct {
	OffsetX float32 // screen position of lattice (0,0)
	OffsetY float32
	Cell    float32 // pixels per lattice unit

	dragging bool
	lastX    float32
	lastY    float32
}

// NewCamera creates a camera with the default cell size.
func NewCamera() *Camera {
	c := &Camera{}
	c.Reset()
	return c
}

// Reset restores the default view.
func (c *Camera) Reset() {
	c.OffsetX = 100
	c.OffsetY = 400
	c.Cell = defaultCell
}

// ToScreen returns the screen position of the centre of cell p.
func (c *Camera) ToScreen(p core.Point) f32.Point {
	return f32.Pt(float32(p.X)*c.Cell+c.OffsetX, -float32(p.Y)*c.Cell+c.OffsetY)
}

// ToLattice returns the cell under a screen position.
func (c *Camera) ToLattice(pos f32.Point) core.Point {
	x := (pos.X - c.OffsetX) / c.Cell
	y := -(pos.Y - c.OffsetY) / c.Cell
	return core.Point{X: round(x), Y: round(y)}
}

func round(v float32) int {
	if v < 0 {
		return -int(-v + 0.5)
	}
	return int(v + 0.5)
}

// HandleEvent pans with the secondary or middle button and zooms with the
// wheel, keeping the point under the pointer fixed.
func (c *Camera) HandleEvent(ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		if ev.Buttons.Contain(pointer.ButtonSecondary) || ev.Buttons.Contain(pointer.ButtonTertiary) {
			c.dragging = true
		}
		c.lastX, c.lastY = ev.Position.X, ev.Position.Y

	case pointer.Drag:
		if c.dragging {
			c.Pan(ev.Position.X-c.lastX, ev.Position.Y-c.lastY)
		}
		c.lastX, c.lastY = ev.Position.X, ev.Position.Y

	case pointer.Release:
		c.dragging = false

	case pointer.Scroll:
		switch {
		case ev.Scroll.Y > 0:
			c.ZoomBy(1/zoomStep, ev.Position)
		case ev.Scroll.Y < 0:
			c.ZoomBy(zoomStep, ev.Position)
		}
	}
}

// Pan moves the view by a screen delta.
func (c *Camera) Pan(dx, dy float32) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// ZoomBy scales the cell size about a screen point.
func (c *Camera) ZoomBy(factor float32, center f32.Point) {
	wx := (center.X - c.OffsetX) / c.Cell
	wy := (center.Y - c.OffsetY) / c.Cell

	c.Cell = min(max(c.Cell*factor, minCell), maxCell)

	c.OffsetX = center.X - wx*c.Cell
	c.OffsetY = center.Y - wy*c.Cell
}

// Fit sizes and centres the view so b fits the screen with a margin of
// cells around it.
func (c *Camera) Fit(b core.Bounds, screenW, screenH float32, margin int) {
	w := float32(b.Width() + 2*margin)
	h := float32(b.Height() + 2*margin)
	c.Cell = min(max(min(screenW/w, screenH/h), minCell), maxCell)

	cx := float32(b.MinX+b.MaxX) / 2
	cy := float32(b.MinY+b.MaxY) / 2
	c.OffsetX = screenW/2 - cx*c.Cell
	c.OffsetY = screenH/2 + cy*c.Cell
}
