package draw

import (
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/vis/interact"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/vis/state"
)

func TestStacked(t *testing.T) {
	got := Stacked(core.Configuration{{}, {X: 1}, {}, {X: 2}, {}, {X: 2}})
	assert.Equal(t, map[core.Point]int{{}: 3, {X: 2}: 2}, got)
	assert.Empty(t, Stacked(core.Configuration{{}, {X: 1}}))
}

func TestFindRobotAt(t *testing.T) {
	cam := interact.NewCamera()
	positions := core.Configuration{{}, {X: 3, Y: 1}}

	assert.Equal(t, 1, FindRobotAt(cam.ToScreen(core.Point{X: 3, Y: 1}), positions, cam))
	at := cam.ToScreen(core.Point{})
	assert.Equal(t, 0, FindRobotAt(f32.Pt(at.X+cam.Cell*0.3, at.Y), positions, cam))
	assert.Equal(t, -1, FindRobotAt(cam.ToScreen(core.Point{X: 1}), positions, cam))
}

func TestRobotColor(t *testing.T) {
	assert.Equal(t, ColorRobotMoving, RobotColor(state.ActivityMoving, true))
	assert.Equal(t, ColorRobotPlaced, RobotColor(state.ActivityIdle, true))
	assert.Equal(t, ColorRobotIdle, RobotColor(state.ActivityIdle, false))
}
