package algo

import "github.com/TPeterdi/async-apf-swarm-sub000/internal/core"

// weave is the axis a traversal sweeps along before stepping to the next
// row or column.
type weave int

const (
	horizontalWeave weave = iota // row by row
	verticalWeave                // column by column
)

// traversal is a snake (boustrophedon) walk over an occupancy grid. Every
// other row (or column) is walked backwards so consecutive cells of the
// flattened string stay adjacent in the grid.
//
// Walking the grid with the traversal built for frame f yields the same
// bits as reading f's image of the grid top row first, left to right.
type traversal struct {
	frame       core.Frame
	weave       weave
	leftToRight bool
	bottomToTop bool
	inner       core.Point // step within a row/column
	outer       core.Point // step to the next row/column
}

func traversalFor(f core.Frame) traversal {
	inner := f.Invert(core.Point{X: 1})
	outer := f.Invert(core.Point{Y: -1})
	t := traversal{frame: f, inner: inner, outer: outer}
	if inner.Y == 0 {
		t.weave = horizontalWeave
		t.leftToRight = inner.X > 0
		t.bottomToTop = outer.Y > 0
	} else {
		t.weave = verticalWeave
		t.leftToRight = outer.X > 0
		t.bottomToTop = inner.Y > 0
	}
	return t
}

// walk flattens grid (indexed [y][x], w columns by h rows).
func (t traversal) walk(grid [][]bool, w, h int) []bool {
	innerLen, outerLen := w, h
	if t.weave == verticalWeave {
		innerLen, outerLen = h, w
	}

	var start core.Point
	if !t.leftToRight {
		start.X = w - 1
	}
	if !t.bottomToTop {
		start.Y = h - 1
	}

	bits := make([]bool, 0, w*h)
	for k := 0; k < outerLen; k++ {
		line := start.Add(t.outer.Scale(k))
		for j := 0; j < innerLen; j++ {
			step := j
			if k%2 == 1 {
				step = innerLen - 1 - j
			}
			c := line.Add(t.inner.Scale(step))
			bits = append(bits, grid[c.Y][c.X])
		}
	}
	return bits
}

// candidateFrames returns the orientations compared for a w x h grid with
// w <= h, in tie-break order.
//
//   - single column: NORTH and SOUTH
//   - tall rectangle: NORTH, NORTH mirrored, SOUTH, SOUTH mirrored
//   - square: the tall set followed by EAST and WEST, each plain and mirrored
func candidateFrames(w, h int) []core.Frame {
	if w == 1 {
		return []core.Frame{
			{Rotation: core.North},
			{Rotation: core.South},
		}
	}
	frames := []core.Frame{
		{Rotation: core.North},
		{Rotation: core.North, Mirrored: true},
		{Rotation: core.South},
		{Rotation: core.South, Mirrored: true},
	}
	if w == h {
		frames = append(frames,
			core.Frame{Rotation: core.East},
			core.Frame{Rotation: core.East, Mirrored: true},
			core.Frame{Rotation: core.West},
			core.Frame{Rotation: core.West, Mirrored: true},
		)
	}
	return frames
}

// rasterize builds the occupancy grid of points already anchored at the
// origin.
func rasterize(points core.Configuration, w, h int) [][]bool {
	grid := make([][]bool, h)
	for y := range grid {
		grid[y] = make([]bool, w)
	}
	for _, p := range points {
		grid[p.Y][p.X] = true
	}
	return grid
}
