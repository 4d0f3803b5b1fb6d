package algo

import "github.com/TPeterdi/async-apf-swarm-sub000/internal/core"

// SymmetryAxis names a symmetry of a point set about the centre of its
// bounding box.
type SymmetryAxis int

const (
	AxisNone         SymmetryAxis = iota
	AxisVertical                  // mirror across the vertical centre line
	AxisHorizontal                // mirror across the horizontal centre line
	AxisDiagonal                  // mirror across the rising diagonal
	AxisAntiDiagonal              // mirror across the falling diagonal
	AxisRotation180               // half turn about the centre
)

func (a SymmetryAxis) String() string {
	return [...]string{"none", "vertical", "horizontal", "diagonal", "anti-diagonal", "rotation-180"}[a]
}

// Symmetry holds the result of each of the five checks.
type Symmetry struct {
	Vertical     bool
	Horizontal   bool
	Diagonal     bool
	AntiDiagonal bool
	Rotation180  bool
}

// Symmetric reports whether any check passed.
func (s Symmetry) Symmetric() bool {
	return s.Axis() != AxisNone
}

// Axis returns the first passing check in declaration order.
func (s Symmetry) Axis() SymmetryAxis {
	switch {
	case s.Vertical:
		return AxisVertical
	case s.Horizontal:
		return AxisHorizontal
	case s.Diagonal:
		return AxisDiagonal
	case s.AntiDiagonal:
		return AxisAntiDiagonal
	case s.Rotation180:
		return AxisRotation180
	}
	return AxisNone
}

// ClassifySymmetry checks the point set against the five symmetries. A set
// has a symmetry iff every point's image is also in the set. Only occupancy
// counts, as in the canonical bit string, so stacked robots weigh as one.
// Coordinates are doubled so the centre stays on the lattice.
func ClassifySymmetry(points core.Configuration) Symmetry {
	if len(points) == 0 {
		return Symmetry{}
	}

	b := points.Bounds()
	cx2, cy2 := b.MinX+b.MaxX, b.MinY+b.MaxY

	occupied := make(map[core.Point]bool, len(points))
	for _, p := range points {
		occupied[p] = true
	}

	check := func(image func(p core.Point) (core.Point, bool)) bool {
		for p := range occupied {
			q, ok := image(p)
			if !ok || !occupied[q] {
				return false
			}
		}
		return true
	}

	return Symmetry{
		Vertical: check(func(p core.Point) (core.Point, bool) {
			return core.Point{X: cx2 - p.X, Y: p.Y}, true
		}),
		Horizontal: check(func(p core.Point) (core.Point, bool) {
			return core.Point{X: p.X, Y: cy2 - p.Y}, true
		}),
		Diagonal: check(func(p core.Point) (core.Point, bool) {
			// (x, y) -> (cx + (y - cy), cy + (x - cx))
			d := cx2 - cy2
			if d%2 != 0 {
				return core.Point{}, false
			}
			return core.Point{X: p.Y + d/2, Y: p.X - d/2}, true
		}),
		AntiDiagonal: check(func(p core.Point) (core.Point, bool) {
			// (x, y) -> (cx - (y - cy), cy - (x - cx))
			s := cx2 + cy2
			if s%2 != 0 {
				return core.Point{}, false
			}
			return core.Point{X: s/2 - p.Y, Y: s/2 - p.X}, true
		}),
		Rotation180: check(func(p core.Point) (core.Point, bool) {
			return core.Point{X: cx2 - p.X, Y: cy2 - p.Y}, true
		}),
	}
}

// IsSymmetric is the boolean/axis form of ClassifySymmetry.
func IsSymmetric(points core.Configuration) (bool, SymmetryAxis) {
	s := ClassifySymmetry(points)
	return s.Symmetric(), s.Axis()
}
