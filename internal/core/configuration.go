package core

import "sort"

// Configuration is an ordered list of robot positions. Index i is robot i;
// robots cannot tell each other apart, the engine uses the index for
// bookkeeping only.
type Configuration []Point

// Copy returns an independent copy. Algorithms that transform points
// destructively work on a copy and leave the original untouched.
func (c Configuration) Copy() Configuration {
	if c == nil {
		return nil
	}
	out := make(Configuration, len(c))
	copy(out, c)
	return out
}

// Translate returns a copy with origin moved to (0,0).
func (c Configuration) Translate(origin Point) Configuration {
	out := c.Copy()
	out.TranslateInPlace(origin)
	return out
}

// TranslateInPlace moves every point so origin becomes (0,0).
func (c Configuration) TranslateInPlace(origin Point) {
	for i := range c {
		c[i].TranslateInPlace(origin)
	}
}

// RotateInPlace applies RotateByCardinal(d) to every point.
func (c Configuration) RotateInPlace(d Direction) {
	for i := range c {
		c[i] = c[i].RotateByCardinal(d)
	}
}

// Normalize returns a copy anchored so its bounding-box minimum is (0,0).
func (c Configuration) Normalize() Configuration {
	if len(c) == 0 {
		return c.Copy()
	}
	return c.Translate(c.Bounds().Min())
}

// Contains reports whether p occupies a cell of c.
func (c Configuration) Contains(p Point) bool {
	return c.IndexOf(p) >= 0
}

// IndexOf returns the first index holding p, or -1.
func (c Configuration) IndexOf(p Point) int {
	for i, q := range c {
		if q == p {
			return i
		}
	}
	return -1
}

// Sorted returns a copy ordered by Point.Less.
func (c Configuration) Sorted() Configuration {
	out := c.Copy()
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// EqualMultiset reports whether c and o hold the same points with the same
// multiplicities, ignoring order.
func (c Configuration) EqualMultiset(o Configuration) bool {
	if len(c) != len(o) {
		return false
	}
	counts := make(map[Point]int, len(c))
	for _, p := range c {
		counts[p]++
	}
	for _, p := range o {
		counts[p]--
		if counts[p] < 0 {
			return false
		}
	}
	return true
}

// Bounds returns the smallest enclosing rectangle of c. The zero Bounds is
// returned for an empty configuration.
func (c Configuration) Bounds() Bounds {
	if len(c) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: c[0].X, MinY: c[0].Y, MaxX: c[0].X, MaxY: c[0].Y}
	for _, p := range c[1:] {
		b.MinX = min(b.MinX, p.X)
		b.MinY = min(b.MinY, p.Y)
		b.MaxX = max(b.MaxX, p.X)
		b.MaxY = max(b.MaxY, p.Y)
	}
	return b
}

// Bounds is the smallest enclosing rectangle (SER) of a point set, with
// inclusive corners.
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// Min returns the lower-left corner.
func (b Bounds) Min() Point { return Point{X: b.MinX, Y: b.MinY} }

// Max returns the upper-right corner.
func (b Bounds) Max() Point { return Point{X: b.MaxX, Y: b.MaxY} }

// Width is the number of lattice columns spanned along X.
func (b Bounds) Width() int { return b.MaxX - b.MinX + 1 }

// Height is the number of lattice rows spanned along Y.
func (b Bounds) Height() int { return b.MaxY - b.MinY + 1 }

// SERWidth is the shorter side, independent of axis. Statistics only.
func (b Bounds) SERWidth() int { return min(b.Width(), b.Height()) }

// SERHeight is the longer side, independent of axis. Statistics only.
func (b Bounds) SERHeight() int { return max(b.Width(), b.Height()) }
