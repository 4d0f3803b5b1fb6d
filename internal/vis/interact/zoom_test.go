package interact

import (
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
)

func TestScreenRoundTrip(t *testing.T) {
	c := NewCamera()
	for _, p := range []core.Point{{}, {X: 3, Y: -2}, {X: -7, Y: 11}} {
		assert.Equal(t, p, c.ToLattice(c.ToScreen(p)), p)
	}
}

func TestNorthIsUp(t *testing.T) {
	c := NewCamera()
	origin := c.ToScreen(core.Point{})
	north := c.ToScreen(core.Point{Y: 1})
	east := c.ToScreen(core.Point{X: 1})
	assert.Less(t, north.Y, origin.Y)
	assert.Greater(t, east.X, origin.X)
}

func TestZoomKeepsCentreFixed(t *testing.T) {
	c := NewCamera()
	p := core.Point{X: 4, Y: 3}
	centre := c.ToScreen(p)
	c.ZoomBy(2, centre)
	assert.Equal(t, float32(2*defaultCell), c.Cell)
	got := c.ToScreen(p)
	assert.InDelta(t, centre.X, got.X, 1e-3)
	assert.InDelta(t, centre.Y, got.Y, 1e-3)

	c.ZoomBy(1000, centre)
	assert.Equal(t, float32(maxCell), c.Cell)
}

func TestFitCentresBounds(t *testing.T) {
	c := NewCamera()
	b := core.Configuration{{X: 0, Y: 0}, {X: 8, Y: 4}}.Bounds()
	c.Fit(b, 800, 600, 1)

	// 11x7 cells with the margin; width is the tighter side.
	assert.InDelta(t, 800.0/11, c.Cell, 1e-3)
	mid := c.ToScreen(core.Point{X: 4, Y: 2})
	assert.InDelta(t, 400, mid.X, 1e-3)
	assert.InDelta(t, 300, mid.Y, 1e-3)
}

func TestPan(t *testing.T) {
	c := NewCamera()
	before := c.ToScreen(core.Point{})
	c.Pan(10, -5)
	assert.Equal(t, f32.Pt(before.X+10, before.Y-5), c.ToScreen(core.Point{}))
}
