package core

import "fmt"

// Point is an integer lattice position. It is a plain value; every
// operation returns a new Point unless its name says InPlace.
type Point struct {
	X, Y int
}

// Add returns p shifted by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale multiplies both coordinates by k.
func (p Point) Scale(k int) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Neg returns the point mirrored through the origin.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Translate returns p expressed relative to origin, so origin becomes (0,0).
func (p Point) Translate(origin Point) Point {
	return p.Sub(origin)
}

// TranslateInPlace moves p so that origin becomes (0,0).
func (p *Point) TranslateInPlace(origin Point) {
	p.X -= origin.X
	p.Y -= origin.Y
}

// RotateByCardinal turns p about the origin by the quarter turns that
// carry North onto d: North is the identity, East a clockwise quarter
// turn, South a half turn and West a counter-clockwise quarter turn.
func (p Point) RotateByCardinal(d Direction) Point {
	switch d.normalize() {
	case East:
		return Point{X: p.Y, Y: -p.X}
	case South:
		return Point{X: -p.X, Y: -p.Y}
	case West:
		return Point{X: -p.Y, Y: p.X}
	default:
		return p
	}
}

// CounterRotateByCardinal undoes RotateByCardinal(d).
func (p Point) CounterRotateByCardinal(d Direction) Point {
	return p.RotateByCardinal(d.Inverse())
}

// MirrorY reflects p across the Y axis (negates X).
func (p Point) MirrorY() Point {
	return Point{X: -p.X, Y: p.Y}
}

// Manhattan returns the L1 distance between p and q.
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Less orders points bottom row first, then left to right.
func (p Point) Less(q Point) bool {
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.X < q.X
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Direction is one of the four cardinal directions. It doubles as a
// rotation amount (a number of clockwise quarter turns).
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists the cardinal directions in rotation order.
var Directions = [...]Direction{North, East, South, West}

func (d Direction) String() string {
	return [...]string{"NORTH", "EAST", "SOUTH", "WEST"}[d.normalize()]
}

func (d Direction) normalize() Direction {
	return ((d % 4) + 4) % 4
}

// Vector returns the unit step for d. North is +Y, East is +X.
func (d Direction) Vector() Point {
	switch d.normalize() {
	case East:
		return Point{X: 1}
	case South:
		return Point{Y: -1}
	case West:
		return Point{X: -1}
	default:
		return Point{Y: 1}
	}
}

// Compose returns the rotation d followed by o.
func (d Direction) Compose(o Direction) Direction {
	return (d + o).normalize()
}

// Inverse returns the rotation that undoes d.
func (d Direction) Inverse() Direction {
	return (4 - d.normalize()).normalize()
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return d.Compose(South)
}

// DirectionOf maps a unit cardinal vector back to its Direction.
func DirectionOf(v Point) (Direction, bool) {
	switch v {
	case Point{Y: 1}:
		return North, true
	case Point{X: 1}:
		return East, true
	case Point{Y: -1}:
		return South, true
	case Point{X: -1}:
		return West, true
	}
	return North, false
}
