package draw

import (
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/vis/interact"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/vis/state"
)

// Robot colours by activity.
var (
	ColorRobotIdle      = color.NRGBA{R: 100, G: 200, B: 255, A: 255}
	ColorRobotLooking   = color.NRGBA{R: 255, G: 230, B: 120, A: 255}
	ColorRobotComputing = color.NRGBA{R: 200, G: 100, B: 255, A: 255}
	ColorRobotMoving    = color.NRGBA{R: 255, G: 150, B: 100, A: 255}
	ColorRobotPlaced    = color.NRGBA{R: 120, G: 230, B: 140, A: 255}
	ColorRobotSelected  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// RobotColor returns the fill for a robot.
func RobotColor(a state.RobotActivity, onTarget bool) color.NRGBA {
	switch a {
	case state.ActivityLooking:
		return ColorRobotLooking
	case state.ActivityComputing:
		return ColorRobotComputing
	case state.ActivityMoving:
		return ColorRobotMoving
	}
	if onTarget {
		return ColorRobotPlaced
	}
	return ColorRobotIdle
}

// DrawRobot draws one robot as a disc, ringed when selected.
func DrawRobot(gtx layout.Context, p core.Point, camera *interact.Camera, col color.NRGBA, selected bool) {
	c := camera.ToScreen(p)
	r := camera.Cell * 0.32
	drawFilledCircle(gtx, c, r, col)
	if selected {
		DrawCircleOutline(gtx, c, r*1.4, ColorRobotSelected, max(1.5, camera.Cell*0.06))
	}
}

// DrawRobots draws every robot of v.
func DrawRobots(gtx layout.Context, v state.View, camera *interact.Camera) {
	for i, p := range v.Positions {
		col := RobotColor(v.Activity[i], v.Pattern.Contains(p))
		DrawRobot(gtx, p, camera, col, i == v.Selected)
	}
}

// FindRobotAt returns the index of the robot under pos, or -1.
func FindRobotAt(pos f32.Point, positions core.Configuration, camera *interact.Camera) int {
	for i, p := range positions {
		if HitTest(pos, p, camera, 0.4) {
			return i
		}
	}
	return -1
}
