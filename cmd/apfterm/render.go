package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/vis/state"
)

var (
	styleTarget = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleStatus = tcell.StyleDefault.Reverse(true)
	styleFailed = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)

	activityStyles = [...]tcell.Style{
		state.ActivityIdle:      tcell.StyleDefault.Foreground(tcell.ColorAqua),
		state.ActivityLooking:   tcell.StyleDefault.Foreground(tcell.ColorYellow),
		state.ActivityComputing: tcell.StyleDefault.Foreground(tcell.ColorPurple),
		state.ActivityMoving:    tcell.StyleDefault.Foreground(tcell.ColorOrange),
	}
)

// Runes for a lattice cell.
const (
	runeTarget = '·'
	runeRobot  = 'o'
	runePlaced = '@'
)

// render draws the lattice with north up, one cell per two columns, and a
// status line at the bottom.
func render(screen tcell.Screen, v state.View, pb *state.Playback) {
	screen.Clear()
	w, h := screen.Size()
	rows := h - 1
	if w < 2 || rows < 1 {
		screen.Show()
		return
	}

	b := v.Bounds()
	// Centre the bounding box; anything off screen is clipped.
	cols := w / 2
	left := b.MinX - (cols-b.Width())/2
	top := b.MaxY + (rows-b.Height())/2
	toScreen := func(p core.Point) (int, int, bool) {
		x, y := (p.X-left)*2, top-p.Y
		return x, y, x >= 0 && x < w && y >= 0 && y < rows
	}

	for _, p := range v.Pattern {
		if x, y, ok := toScreen(p); ok {
			screen.SetContent(x, y, runeTarget, nil, styleTarget)
		}
	}
	stacks := make(map[core.Point]int, len(v.Positions))
	for _, p := range v.Positions {
		stacks[p]++
	}
	for i, p := range v.Positions {
		x, y, ok := toScreen(p)
		if !ok {
			continue
		}
		r := runeRobot
		if v.Pattern.Contains(p) {
			r = runePlaced
		}
		if n := stacks[p]; n > 1 {
			r = rune('0' + min(n, 9))
		}
		style := activityStyles[v.Activity[i]]
		if i == v.Selected {
			style = style.Reverse(true)
		}
		screen.SetContent(x, y, r, nil, style)
	}

	status := fmt.Sprintf(" %s  placed %d/%d  moves %d  events %d  delay %v ",
		v.Status, v.Placed(), len(v.Positions), v.Moves, v.LastSeq, pb.Delay)
	style := styleStatus
	if v.Status == state.StatusFailed {
		style = styleFailed
		if v.Failure != nil {
			status += v.Failure.Error() + " "
		}
	}
	drawText(screen, 0, rows, w, status, style)
	screen.Show()
}

func drawText(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= maxX {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
