package draw

import (
	"image/color"
	"math"
	"time"

	"gioui.org/layout"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/vis/interact"
)

// ColorStacked marks cells holding more than one robot.
var ColorStacked = color.NRGBA{R: 255, G: 80, B: 80, A: 200}

// Stacked returns the cells occupied by two or more robots, with their
// robot counts.
func Stacked(positions core.Configuration) map[core.Point]int {
	counts := make(map[core.Point]int, len(positions))
	for _, p := range positions {
		counts[p]++
	}
	for p, n := range counts {
		if n < 2 {
			delete(counts, p)
		}
	}
	return counts
}

// DrawStacked draws a pulsing ring around every stacked cell, thicker for
// more robots.
func DrawStacked(gtx layout.Context, positions core.Configuration, camera *interact.Camera) {
	pulse := float32(math.Sin(float64(time.Now().UnixMilli())/200.0)*0.15 + 0.85)
	for p, n := range Stacked(positions) {
		width := camera.Cell * 0.04 * float32(min(n, 5))
		DrawCircleOutline(gtx, camera.ToScreen(p), camera.Cell*0.45*pulse, ColorStacked, max(1, width))
	}
}
